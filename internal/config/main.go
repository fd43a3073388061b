package config

import (
	jsonapi "gitlab.com/distributed_lab/json-api-connector"
	"gitlab.com/distributed_lab/kit/comfig"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/kit/pgdb"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/engine"
)

type Config interface {
	comfig.Logger
	pgdb.Databaser

	EngineParams() engine.Params
	Network() Network
	Home() Home
	Relayer() *jsonapi.Connector
}

type config struct {
	comfig.Logger
	pgdb.Databaser
	getter kv.Getter

	engineOnce  comfig.Once
	networkOnce comfig.Once
	homeOnce    comfig.Once
	relayerOnce comfig.Once
}

func New(getter kv.Getter) Config {
	return &config{
		getter:    getter,
		Databaser: pgdb.NewDatabaser(getter),
		Logger:    comfig.NewLogger(getter, comfig.LoggerOpts{}),
	}
}
