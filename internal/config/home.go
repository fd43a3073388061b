package config

import (
	"time"

	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Home is the source domain whose block height drives every timelock
// comparison.
type Home struct {
	EthClient      *ethclient.Client
	RequestTimeout time.Duration
}

func (c *config) Home() Home {
	return c.homeOnce.Do(func() interface{} {
		var cfg struct {
			RPC            string        `fig:"rpc,required"`
			RequestTimeout time.Duration `fig:"request_timeout"`
		}
		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "home")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out home"))
		}

		cli, err := ethclient.Dial(cfg.RPC)
		if err != nil {
			panic(errors.Wrap(err, "failed to connect to home RPC provider"))
		}

		if cfg.RequestTimeout == 0 {
			cfg.RequestTimeout = defaultRequestTimeout
		}

		return Home{EthClient: cli, RequestTimeout: cfg.RequestTimeout}
	}).(Home)
}
