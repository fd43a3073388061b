// Package engine holds the order state machine and the adaptive slippage
// controller. All state changes go through a single mutex and a single
// storage transaction per operation; bridge messages and vault transfers are
// dispatched only after the transaction commits and are never rolled back.
package engine

import (
	"context"
	"math/big"
	"sync"
	"time"

	"gitlab.com/distributed_lab/logan/v3"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/bridge"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/risk"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/vault"
)

// Params is the immutable protocol configuration captured at init.
type Params struct {
	// EthereumContract is the counterpart contract bridge messages target.
	EthereumContract string
	// BridgeContract is the bridge messenger account on the source domain.
	BridgeContract string
	// NativeToken denominates every order's token_in.
	NativeToken string

	SlippageUpdateInterval time.Duration
	// MaxSlippageChange is the global policy cap in basis points; it does not
	// override per-order max_slippage_deviation.
	MaxSlippageChange       uint64
	FillAttemptLimit        uint64
	DefaultTimelockDuration uint64
}

// DefaultParams returns the protocol constants: 5 minute update interval,
// 100 bp policy cap, 10 fill attempts, ~24h timelock at 5s blocks.
func DefaultParams(ethereumContract, bridgeContract string) Params {
	return Params{
		EthereumContract:        ethereumContract,
		BridgeContract:          bridgeContract,
		NativeToken:             "near",
		SlippageUpdateInterval:  300 * time.Second,
		MaxSlippageChange:       100,
		FillAttemptLimit:        10,
		DefaultTimelockDuration: 17280,
	}
}

type Engine struct {
	mu sync.Mutex

	log       *logan.Entry
	storage   data.Storage
	messenger bridge.Messenger
	vault     vault.Vault
	risk      risk.Model
	clock     Clock
	params    Params
}

func New(
	log *logan.Entry,
	storage data.Storage,
	messenger bridge.Messenger,
	v vault.Vault,
	model risk.Model,
	clock Clock,
	params Params,
) *Engine {
	return &Engine{
		log:       log.WithField("service", "engine"),
		storage:   storage,
		messenger: messenger,
		vault:     v,
		risk:      model,
		clock:     clock,
		params:    params,
	}
}

// outbox accumulates post-commit effects of one operation.
type outbox struct {
	messages  []bridge.Message
	transfers []transfer
}

type transfer struct {
	to     string
	amount *big.Int
}

// dispatch sends committed notifications. Failures are logged and never
// revert the committed state change.
func (e *Engine) dispatch(ctx context.Context, out outbox) {
	for _, t := range out.transfers {
		if err := e.vault.Transfer(ctx, t.to, t.amount); err != nil {
			e.log.WithError(err).WithField("to", t.to).Error("failed to issue vault transfer")
		}
	}
	for _, m := range out.messages {
		if err := e.messenger.Send(ctx, m); err != nil {
			e.log.WithError(err).WithFields(logan.F{
				"order_id": m.OrderID,
				"action":   m.Action,
			}).Error("failed to send bridge message")
		}
	}
}
