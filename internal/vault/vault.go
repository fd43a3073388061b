// Package vault commands the external custodian of attached value. The
// engine only issues transfers; custody itself lives outside the service.
package vault

import (
	"context"
	"math/big"

	"gitlab.com/distributed_lab/logan/v3"
)

// Vault releases escrowed value to an account. Commands are dispatched after
// the owning state change is committed and are never rolled back.
type Vault interface {
	Transfer(ctx context.Context, to string, amount *big.Int) error
}

// LogVault records transfer commands without moving value. It stands in for
// the host custody integration in development and tests.
type LogVault struct {
	log *logan.Entry
}

func NewLogVault(log *logan.Entry) *LogVault {
	return &LogVault{log: log}
}

func (v *LogVault) Transfer(_ context.Context, to string, amount *big.Int) error {
	v.log.WithFields(logan.F{"to": to, "amount": amount.String()}).Info("vault transfer issued")
	return nil
}
