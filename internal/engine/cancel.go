package engine

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/bridge"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

// Cancel lets the maker withdraw an order that is still Active and before its
// timelock. The escrowed value is refunded to the maker and the counterpart
// is notified.
func (e *Engine) Cancel(ctx context.Context, caller string, orderID uint64) error {
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
		if order.Maker != caller {
			return ErrNotMaker
		}
		if order.Status != data.StatusActive || height >= order.Timelock {
			return ErrBadState
		}

		order.Status = data.StatusCancelled
		if err = e.storage.Orders().Update(*order); err != nil {
			return err
		}

		out.transfers = append(out.transfers, transfer{to: order.Maker, amount: order.AmountIn})
		out.messages = append(out.messages, bridge.NewCancel(e.params.EthereumContract, order.OrderID))
		return nil
	})
	if err != nil {
		return err
	}

	e.dispatch(ctx, out)
	e.log.WithFields(logan.F{"order_id": orderID, "maker": caller}).Info("order cancelled")
	return nil
}
