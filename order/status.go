package order

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/airbusgeo/up42-go/common"
	"github.com/airbusgeo/up42-go/service/log"
)

const (
	// ErrOrderFailed is returned by TrackStatus when the order ends in a failed status
	ErrOrderFailed = orderErr("order failed")
)

type orderErr string

func (o orderErr) Error() string {
	return string(o)
}

// DefaultTrackingInterval is the polling interval used by TrackStatus when none is given
const DefaultTrackingInterval = 2 * time.Minute

// StatusListener is notified of every status transition of an order
type StatusListener func(ctx context.Context, info Info, previous common.OrderStatus) error

// TrackStatus polls the order every interval until its status is final.
// listener (optional) is called on each transition; an error returned by the listener is only logged.
// Raise ErrOrderFailed if the final status is a failure.
func (o *Order) TrackStatus(ctx context.Context, orderID string, interval time.Duration, listener StatusListener) (common.OrderStatus, error) {
	if interval <= 0 {
		interval = DefaultTrackingInterval
	}
	ctx = log.With(ctx, zap.String("order", orderID))
	previous := common.OrderUNKNOWN
	for {
		info, err := o.Get(ctx, orderID)
		if err != nil {
			return previous, fmt.Errorf("TrackStatus: %w", err)
		}
		if info.Status != previous {
			log.Logger(ctx).Sugar().Infof("order status: %s -> %s", previous, info.Status)
			if listener != nil {
				if err := listener(ctx, info, previous); err != nil {
					log.Logger(ctx).Warn("status listener", zap.Error(err))
				}
			}
			previous = info.Status
		}

		switch {
		case info.Status.Final() && info.Status.Failed():
			return info.Status, fmt.Errorf("TrackStatus[%s]: %w (%s)", orderID, ErrOrderFailed, info.Status)
		case info.Status.Final():
			return info.Status, nil
		case info.Status.Failed():
			log.Logger(ctx).Sugar().Warnf("order is in a failed status (%s), waiting for the delivery to be retried", info.Status)
		}

		select {
		case <-time.After(interval):
		case <-ctx.Done():
			return info.Status, fmt.Errorf("TrackStatus: %w", ctx.Err())
		}
	}
}
