package service

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/engine"
)

// updateSlippages runs the adaptive controller over every Active order whose
// rate-limit window has elapsed.
func (s *service) updateSlippages(ctx context.Context) error {
	active, err := s.storage.Orders().SelectByStatus(data.StatusActive)
	if err != nil {
		return errors.Wrap(err, "failed to select active orders")
	}

	now := s.clock.Now().UnixNano()
	interval := s.params.SlippageUpdateInterval.Nanoseconds()

	for _, o := range active {
		if now < o.LastSlippageUpdate+interval {
			continue
		}

		err = s.engine.UpdateOrderSlippage(ctx, o.OrderID)
		switch errors.Cause(err) {
		case nil:
		case engine.ErrTooSoon, engine.ErrBadState:
			// the order was touched between select and update, skip it
		default:
			return errors.Wrap(err, "failed to update order slippage")
		}
	}

	return nil
}
