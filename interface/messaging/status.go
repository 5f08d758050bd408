// Package messaging publishes the status transitions of the orders on a message queue
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/airbusgeo/geocube/interface/messaging"

	"github.com/airbusgeo/up42-go/common"
	"github.com/airbusgeo/up42-go/order"
)

// StatusEvent is the message published on each status transition of an order
type StatusEvent struct {
	OrderID     string             `json:"orderId"`
	DisplayName string             `json:"displayName,omitempty"`
	WorkspaceID string             `json:"workspaceId"`
	Previous    common.OrderStatus `json:"previous"`
	Status      common.OrderStatus `json:"status"`
	Time        time.Time          `json:"time"`
}

// NewStatusListener returns an order.StatusListener publishing a StatusEvent on each transition
func NewStatusListener(publisher messaging.Publisher) order.StatusListener {
	return func(ctx context.Context, info order.Info, previous common.OrderStatus) error {
		b, err := json.Marshal(StatusEvent{
			OrderID:     info.ID,
			DisplayName: info.DisplayName,
			WorkspaceID: info.WorkspaceID,
			Previous:    previous,
			Status:      info.Status,
			Time:        time.Now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("StatusListener.Marshal: %w", err)
		}
		if err := publisher.Publish(ctx, b); err != nil {
			return fmt.Errorf("StatusListener.Publish: %w", err)
		}
		return nil
	}
}

// UnmarshalStatusEvent decodes a message published by a StatusListener
func UnmarshalStatusEvent(data []byte) (StatusEvent, error) {
	var evt StatusEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return StatusEvent{}, fmt.Errorf("UnmarshalStatusEvent: %w", err)
	}
	if evt.OrderID == "" {
		return StatusEvent{}, fmt.Errorf("UnmarshalStatusEvent: missing orderId")
	}
	return evt, nil
}
