package engine

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

// HandleCounterpartyLock transitions an Active order to Locked when the
// bridge reports that the counterpart locked the foreign side. Each
// notification counts as a fill attempt.
func (e *Engine) HandleCounterpartyLock(ctx context.Context, orderID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get current block height")
	}

	err = e.storage.Transaction(func() error {
		order, err := e.storage.Orders().Get(orderID)
		if err != nil {
			return errors.Wrap(err, "failed to get order")
		}
		if order == nil {
			return ErrUnknownOrder
		}
		if order.Status != data.StatusActive {
			return ErrBadState
		}
		if height >= order.Timelock {
			return ErrExpired
		}

		order.Status = data.StatusLocked
		order.FillAttempts++
		return e.storage.Orders().Update(*order)
	})
	if err != nil {
		return err
	}

	e.log.WithField("order_id", orderID).Info("order locked by counterparty")
	return nil
}
