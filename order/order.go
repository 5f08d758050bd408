// Package order places, estimates and tracks orders, and downloads their assets.
package order

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-spatial/geom/encoding/geojson"

	"github.com/airbusgeo/up42-go/common"
	"github.com/airbusgeo/up42-go/service"
	"github.com/airbusgeo/up42-go/session"
)

// Order is the feature module managing the orders of the workspace
type Order struct {
	session session.Authenticator
}

// New binds an Order module to the session. It never fails and sends no request.
func New(s session.Authenticator) *Order {
	return &Order{session: s}
}

func (o *Order) String() string {
	return fmt.Sprintf("Order(session=%s)", o.session)
}

// Session returns the session the module is bound to
func (o *Order) Session() session.Authenticator {
	return o.session
}

// Parameters of an order (archive or tasking)
type Parameters struct {
	DataProduct       string                     `json:"dataProduct"`
	DisplayName       string                     `json:"displayName,omitempty"`
	Params            map[string]interface{}     `json:"params"`
	FeatureCollection *geojson.FeatureCollection `json:"featureCollection,omitempty"`
	Tags              []string                   `json:"tags,omitempty"`
}

// Validate checks the parameters before sending them
func (p Parameters) Validate() error {
	if p.DataProduct == "" {
		return fmt.Errorf("missing dataProduct")
	}
	if p.Params == nil {
		return fmt.Errorf("missing params")
	}
	return nil
}

// Info describes an order
type Info struct {
	ID            string             `json:"id"`
	DisplayName   string             `json:"displayName"`
	Status        common.OrderStatus `json:"status"`
	WorkspaceID   string             `json:"workspaceId"`
	DataProductID string             `json:"dataProductId"`
	Type          string             `json:"type"`
	Tags          []string           `json:"tags,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// APIError is an error reported by the API in the body of a successful response
type APIError struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func apiErrors(errs []APIError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return service.ErrRemoteRequest{Status: http.StatusBadRequest, Message: strings.Join(msgs, "; ")}
}

// Estimate is the price of an order
type Estimate struct {
	Summary struct {
		TotalCredits float64 `json:"totalCredits"`
		TotalSize    float64 `json:"totalSize"`
		Unit         string  `json:"unit"`
	} `json:"summary"`
	Results []struct {
		Index   int     `json:"index"`
		Credits float64 `json:"credits"`
		Size    float64 `json:"size"`
		Unit    string  `json:"unit"`
	} `json:"results"`
	Errors []APIError `json:"errors"`
}

// Estimate returns the price of the order in credits
func (o *Order) Estimate(ctx context.Context, params Parameters) (Estimate, error) {
	if err := params.Validate(); err != nil {
		return Estimate{}, fmt.Errorf("Estimate: %w", err)
	}
	var estimate Estimate
	if err := o.session.Do(ctx, http.MethodPost, "/v2/orders/estimate", params, &estimate); err != nil {
		return Estimate{}, fmt.Errorf("Estimate: %w", err)
	}
	if err := apiErrors(estimate.Errors); err != nil {
		return Estimate{}, fmt.Errorf("Estimate: %w", err)
	}
	return estimate, nil
}

// Place places the order in the workspace of the session and returns its information
func (o *Order) Place(ctx context.Context, params Parameters) (Info, error) {
	if err := params.Validate(); err != nil {
		return Info{}, fmt.Errorf("Place: %w", err)
	}
	var response struct {
		Results []struct {
			Index int    `json:"index"`
			ID    string `json:"id"`
		} `json:"results"`
		Errors []APIError `json:"errors"`
	}
	path := "/v2/orders?" + url.Values{"workspaceId": {o.session.WorkspaceID()}}.Encode()
	if err := o.session.Do(ctx, http.MethodPost, path, params, &response); err != nil {
		return Info{}, fmt.Errorf("Place: %w", err)
	}
	if err := apiErrors(response.Errors); err != nil {
		return Info{}, fmt.Errorf("Place: %w", err)
	}
	if len(response.Results) == 0 {
		return Info{}, fmt.Errorf("Place: no order in response")
	}
	info, err := o.Get(ctx, response.Results[0].ID)
	if err != nil {
		return Info{}, fmt.Errorf("Place: %w", err)
	}
	return info, nil
}

// Get returns the information of the order
func (o *Order) Get(ctx context.Context, orderID string) (Info, error) {
	if orderID == "" {
		return Info{}, fmt.Errorf("Get: empty order id")
	}
	var info Info
	if err := o.session.Do(ctx, http.MethodGet, "/v2/orders/"+url.PathEscape(orderID), nil, &info); err != nil {
		return Info{}, fmt.Errorf("Get[%s]: %w", orderID, err)
	}
	return info, nil
}

// ListFilter filters the orders returned by List. Zero values are ignored.
type ListFilter struct {
	// WorkspaceID defaults to the workspace of the session
	WorkspaceID string
	Status      common.OrderStatus
	Type        string
	// Limit is the maximum number of orders (0: no limit)
	Limit int
}

func (f ListFilter) query(defaultWorkspace string) url.Values {
	q := url.Values{"workspaceId": {defaultWorkspace}, "sort": {"createdAt,desc"}}
	if f.WorkspaceID != "" {
		q.Set("workspaceId", f.WorkspaceID)
	}
	if f.Status != common.OrderUNKNOWN {
		q.Set("status", f.Status.String())
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	return q
}

// List returns the orders matching the filter
func (o *Order) List(ctx context.Context, filter ListFilter) ([]Info, error) {
	var orders []Info
	err := session.Paginate(ctx, o.session, "/v2/orders", filter.query(o.session.WorkspaceID()), filter.Limit, func(p common.Page) (int, error) {
		var infos []Info
		if err := p.Decode(&infos); err != nil {
			return 0, err
		}
		orders = append(orders, infos...)
		return len(infos), nil
	})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	if filter.Limit > 0 && len(orders) > filter.Limit {
		orders = orders[:filter.Limit]
	}
	return orders, nil
}
