package service

import (
	"context"
	"time"

	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/config"
)

// chainClock reads the block height from the home chain and the block time
// from the wall clock.
type chainClock struct {
	home config.Home
}

func newChainClock(home config.Home) chainClock {
	return chainClock{home: home}
}

func (c chainClock) Now() time.Time { return time.Now().UTC() }

func (c chainClock) BlockHeight(ctx context.Context) (uint64, error) {
	child, cancel := context.WithTimeout(ctx, c.home.RequestTimeout)
	defer cancel()

	n, err := c.home.EthClient.BlockNumber(child)
	return n, errors.Wrap(err, "failed to get eth_blockNumber")
}
