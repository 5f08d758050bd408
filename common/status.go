package common

//go:generate go run github.com/dmarkham/enumer -json -text -type OrderStatus -trimprefix Order

// OrderStatus is the status of an order, as returned by the remote API
type OrderStatus int

const (
	OrderUNKNOWN OrderStatus = iota
	OrderCREATED
	OrderBEING_PLACED
	OrderPLACED
	OrderPLACEMENT_FAILED
	OrderDELIVERY_INITIALIZATION_FAILED
	OrderBEING_FULFILLED
	OrderDOWNLOAD_FAILED
	OrderDOWNLOADED
	OrderFULFILLED
	OrderFAILED_PERMANENTLY
)

// Final returns true if the status will not change anymore
func (s OrderStatus) Final() bool {
	switch s {
	case OrderFULFILLED, OrderFAILED_PERMANENTLY, OrderPLACEMENT_FAILED:
		return true
	}
	return false
}

// Failed returns true if the order will not be delivered (without an action of the user)
func (s OrderStatus) Failed() bool {
	switch s {
	case OrderFAILED_PERMANENTLY, OrderPLACEMENT_FAILED, OrderDELIVERY_INITIALIZATION_FAILED, OrderDOWNLOAD_FAILED:
		return true
	}
	return false
}

// Color returns the name of the color used to display the status
func (s OrderStatus) Color() string {
	switch s {
	case OrderCREATED, OrderUNKNOWN:
		return "gray"
	case OrderBEING_PLACED, OrderPLACED, OrderBEING_FULFILLED, OrderDOWNLOADED:
		return "blue"
	case OrderDELIVERY_INITIALIZATION_FAILED, OrderDOWNLOAD_FAILED:
		return "orange"
	case OrderFULFILLED:
		return "green"
	case OrderFAILED_PERMANENTLY, OrderPLACEMENT_FAILED:
		return "red"
	}
	return "white"
}

//go:generate go run github.com/dmarkham/enumer -json -text -type Decision -trimprefix Decision

// Decision is the answer of the user to a tasking quotation
type Decision int

const (
	DecisionNOT_DECIDED Decision = iota
	DecisionACCEPTED
	DecisionREJECTED
)
