package engine

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/bridge"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

// UpdateOrderSlippage recomputes an Active order's slippage from the risk
// model, clamped so that one update never moves it by more than the order's
// max_slippage_deviation, saturating at zero. The update is rate limited by
// the configured interval; the rate limit bounds how fast any oracle input
// can drag the price guardrail.
func (e *Engine) UpdateOrderSlippage(ctx context.Context, orderID uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now().UnixNano()

	var (
		oldSlippage uint64
		newSlippage uint64
		out         outbox
	)
	err := e.storage.Transaction(func() error {
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
		if now < order.LastSlippageUpdate+e.params.SlippageUpdateInterval.Nanoseconds() {
			return ErrTooSoon
		}

		proposed := e.risk.InitialSlippage(order.TokenIn, order.TokenOut, order.AmountIn, order.TargetChainID)
		oldSlippage = order.CurrentSlippage
		newSlippage = clampSlippage(order.CurrentSlippage, proposed, order.MaxSlippageDeviation)

		order.CurrentSlippage = newSlippage
		order.LastSlippageUpdate = now
		if err = e.storage.Orders().Update(*order); err != nil {
			return err
		}

		err = e.storage.History().Append(orderID, data.SlippageEntry{
			Timestamp:       now,
			Slippage:        newSlippage,
			VolatilityScore: e.risk.VolatilityScore(order.TokenOut),
			CrossChainDelay: e.risk.BridgeDelaySeconds(order.TargetChainID),
		})
		if err != nil {
			return err
		}

		out.messages = append(out.messages,
			bridge.NewUpdateSlippage(e.params.EthereumContract, orderID, newSlippage))
		return nil
	})
	if err != nil {
		return err
	}

	e.dispatch(ctx, out)
	e.log.WithFields(logan.F{
		"order_id":     orderID,
		"old_slippage": oldSlippage,
		"new_slippage": newSlippage,
	}).Info("order slippage updated")
	return nil
}

// clampSlippage moves current towards proposed by at most maxDeviation basis
// points, saturating at zero.
func clampSlippage(current, proposed, maxDeviation uint64) uint64 {
	var delta uint64
	if proposed > current {
		delta = proposed - current
	} else {
		delta = current - proposed
	}
	if delta <= maxDeviation {
		return proposed
	}
	if proposed > current {
		return current + maxDeviation
	}
	if current > maxDeviation {
		return current - maxDeviation
	}
	return 0
}
