package engine

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/bridge"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/hashlock"
)

// ClaimWithSecret completes a locked order by revealing the hashlock
// preimage. The escrowed value is transferred to claimer and the revealed
// secret is relayed to the counterpart so it can unlock the foreign side.
func (e *Engine) ClaimWithSecret(ctx context.Context, claimer, hl, secret string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !hashlock.Matches(hl, secret) {
		return ErrInvalidSecret
	}

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get current block height")
	}

	var out outbox
	err = e.storage.Transaction(func() error {
		order, err := e.storage.Orders().GetByHashlock(hl)
		if err != nil {
			return errors.Wrap(err, "failed to look up order by hashlock")
		}
		if order == nil {
			return ErrUnknownOrder
		}
		if order.Status != data.StatusLocked {
			return ErrBadState
		}
		if height >= order.Timelock {
			return ErrExpired
		}
		if order.FillAttempts >= e.params.FillAttemptLimit {
			return ErrAttemptLimit
		}

		order.Status = data.StatusCompleted
		order.FillAttempts++
		if err = e.storage.Orders().Update(*order); err != nil {
			return err
		}

		out.transfers = append(out.transfers, transfer{to: claimer, amount: order.AmountIn})
		out.messages = append(out.messages, bridge.NewClaim(e.params.EthereumContract, order.OrderID, secret))
		return nil
	})
	if err != nil {
		return err
	}

	e.dispatch(ctx, out)
	e.log.WithFields(logan.F{"hashlock": hl, "claimer": claimer}).Info("order claimed")
	return nil
}
