package service

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/engine"
)

// sweepExpired expires every Active or Locked order whose timelock has
// passed, refunding the makers.
func (s *service) sweepExpired(ctx context.Context) error {
	height, err := s.clock.BlockHeight(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get current block height")
	}

	for _, st := range []data.Status{data.StatusActive, data.StatusLocked} {
		orders, err := s.storage.Orders().SelectByStatus(st)
		if err != nil {
			return errors.Wrap(err, "failed to select orders")
		}

		for _, o := range orders {
			if height < o.Timelock {
				continue
			}

			err = s.engine.Expire(ctx, o.OrderID)
			switch errors.Cause(err) {
			case nil, engine.ErrBadState:
			default:
				return errors.Wrap(err, "failed to expire order")
			}
		}
	}

	return nil
}
