package engine

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

// Expire moves an Active or Locked order past its timelock to Expired and
// refunds the maker. Anyone may call it.
func (e *Engine) Expire(ctx context.Context, orderID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get current block height")
	}

	var out outbox
	err = e.storage.Transaction(func() error {
		order, err := e.storage.Orders().Get(orderID)
		if err != nil {
			return errors.Wrap(err, "failed to get order")
		}
		if order == nil {
			return ErrUnknownOrder
		}
		if order.Status != data.StatusActive && order.Status != data.StatusLocked {
			return ErrBadState
		}
		if height < order.Timelock {
			return ErrBadState
		}

		order.Status = data.StatusExpired
		if err = e.storage.Orders().Update(*order); err != nil {
			return err
		}

		out.transfers = append(out.transfers, transfer{to: order.Maker, amount: order.AmountIn})
		return nil
	})
	if err != nil {
		return err
	}

	e.dispatch(ctx, out)
	e.log.WithField("order_id", orderID).Info("order expired, maker refunded")
	return nil
}
