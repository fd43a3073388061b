package engine

import (
	"context"
	"time"
)

// Clock provides the block height and block time the guards compare against.
// The service backs it with the source-chain RPC; tests use a fake.
type Clock interface {
	Now() time.Time
	BlockHeight(ctx context.Context) (uint64, error)
}
