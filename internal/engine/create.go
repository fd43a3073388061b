package engine

import (
	"context"
	"math/big"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/bridge"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/hashlock"
)

const maxBasisPoints = 10000

// initialBridgeDelay seeds the first history entry before the risk model has
// been consulted for this order.
const initialBridgeDelay = 900

// CreateOrderRequest carries the caller-supplied creation inputs. The secret
// is consumed to derive the hashlock and is never persisted.
type CreateOrderRequest struct {
	TokenOut             string
	BasePrice            *big.Int
	MaxSlippageDeviation uint64
	TargetChainID        uint64
	Secret               string
}

// CreateCrossChainOrder opens an escrowed order for the value-bearing call of
// maker with the attached deposit and returns the assigned order id.
func (e *Engine) CreateCrossChainOrder(ctx context.Context, maker string, deposit *big.Int, req CreateOrderRequest) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if deposit == nil || deposit.Sign() <= 0 {
		return 0, ErrZeroDeposit
	}
	if req.MaxSlippageDeviation > maxBasisPoints {
		return 0, ErrInvalidDeviation
	}

	height, err := e.clock.BlockHeight(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get current block height")
	}
	now := e.clock.Now().UnixNano()

	hl := hashlock.Digest(req.Secret)
	slippage := e.risk.InitialSlippage(e.params.NativeToken, req.TokenOut, deposit, req.TargetChainID)

	// base_price is opaque to the engine and only echoed to the bridge
	basePrice := new(big.Int)
	if req.BasePrice != nil {
		basePrice.Set(req.BasePrice)
	}

	var (
		order data.Order
		out   outbox
	)
	err = e.storage.Transaction(func() error {
		existing, err := e.storage.Orders().GetByHashlock(hl)
		if err != nil {
			return errors.Wrap(err, "failed to look up hashlock")
		}
		if existing != nil {
			return ErrDuplicateHashlock
		}

		orderID, err := e.storage.Orders().NextID()
		if err != nil {
			return err
		}

		order = data.Order{
			OrderID:              orderID,
			Maker:                maker,
			TokenIn:              e.params.NativeToken,
			TokenOut:             req.TokenOut,
			AmountIn:             new(big.Int).Set(deposit),
			BasePrice:            basePrice,
			CurrentSlippage:      slippage,
			MaxSlippageDeviation: req.MaxSlippageDeviation,
			TargetChainID:        req.TargetChainID,
			Hashlock:             hl,
			Timelock:             height + e.params.DefaultTimelockDuration,
			Status:               data.StatusActive,
			CreatedAt:            now,
			LastSlippageUpdate:   now,
			FillAttempts:         0,
		}
		if err = e.storage.Orders().Insert(order); err != nil {
			return err
		}

		err = e.storage.History().Append(orderID, data.SlippageEntry{
			Timestamp:       now,
			Slippage:        slippage,
			VolatilityScore: 0,
			CrossChainDelay: initialBridgeDelay,
		})
		if err != nil {
			return err
		}

		msg, err := bridge.NewCreateOrder(e.params.EthereumContract, order)
		if err != nil {
			return err
		}
		out.messages = append(out.messages, msg)
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.dispatch(ctx, out)
	e.log.WithFields(logan.F{
		"order_id":  order.OrderID,
		"amount_in": order.AmountIn.String(),
		"token_out": order.TokenOut,
	}).Info("cross-chain order created")

	return order.OrderID, nil
}
