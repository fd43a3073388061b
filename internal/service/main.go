package service

import (
	"context"
	"time"

	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/running"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/bridge"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/config"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data/postgres"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/engine"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/risk"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/vault"
)

type service struct {
	log     *logan.Entry
	engine  *engine.Engine
	storage data.Storage
	network config.Network
	params  engine.Params
	clock   engine.Clock
	watcher *watcher
}

func newService(cfg config.Config) *service {
	log := cfg.Log()
	network := cfg.Network()
	params := cfg.EngineParams()
	storage := postgres.NewStorage(cfg.DB(), network.ChainName)
	clock := newChainClock(cfg.Home())

	eng := engine.New(
		log,
		storage,
		bridge.NewRelayerMessenger(cfg.Relayer()),
		vault.NewLogVault(log),
		risk.NewStatic(),
		clock,
		params,
	)

	return &service{
		log:     log,
		engine:  eng,
		storage: storage,
		network: network,
		params:  params,
		clock:   clock,
		watcher: newWatcher(log, eng, storage.LastBlock(), network),
	}
}

func (s *service) run(ctx context.Context) error {
	s.log.Info("service started")

	go running.WithBackOff(ctx, s.log, "slippage-updater",
		s.updateSlippages, s.network.IndexPeriod, time.Second, time.Minute)
	go running.WithBackOff(ctx, s.log, "expiry-sweeper",
		s.sweepExpired, s.network.IndexPeriod, time.Second, time.Minute)
	running.WithBackOff(ctx, s.log, "lock-watcher",
		s.watcher.tick, s.network.IndexPeriod, time.Second, time.Minute)

	return nil
}

func Run(cfg config.Config) {
	if err := newService(cfg).run(context.Background()); err != nil {
		panic(err)
	}
}
