package config

import (
	"time"

	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/engine"
)

func (c *config) EngineParams() engine.Params {
	return c.engineOnce.Do(func() interface{} {
		var cfg struct {
			EthereumContract        string        `fig:"ethereum_contract,required"`
			BridgeContract          string        `fig:"bridge_contract,required"`
			NativeToken             string        `fig:"native_token"`
			SlippageUpdateInterval  time.Duration `fig:"slippage_update_interval"`
			MaxSlippageChange       uint64        `fig:"max_slippage_change"`
			FillAttemptLimit        uint64        `fig:"fill_attempt_limit"`
			DefaultTimelockDuration uint64        `fig:"default_timelock_duration"`
		}
		err := figure.Out(&cfg).
			From(kv.MustGetStringMap(c.getter, "engine")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out engine"))
		}

		params := engine.DefaultParams(cfg.EthereumContract, cfg.BridgeContract)
		if cfg.NativeToken != "" {
			params.NativeToken = cfg.NativeToken
		}
		if cfg.SlippageUpdateInterval != 0 {
			params.SlippageUpdateInterval = cfg.SlippageUpdateInterval
		}
		if cfg.MaxSlippageChange != 0 {
			params.MaxSlippageChange = cfg.MaxSlippageChange
		}
		if cfg.FillAttemptLimit != 0 {
			params.FillAttemptLimit = cfg.FillAttemptLimit
		}
		if cfg.DefaultTimelockDuration != 0 {
			params.DefaultTimelockDuration = cfg.DefaultTimelockDuration
		}

		return params
	}).(engine.Params)
}
