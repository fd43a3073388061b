package service

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/config"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/engine"
)

// counterpartABI covers the counterpart contract events the watcher reacts
// to. OrderLocked fires when the foreign side escrows its leg of the swap.
const counterpartABI = `[{"anonymous":false,"inputs":[{"indexed":true,"internalType":"uint256","name":"orderId","type":"uint256"}],"name":"OrderLocked","type":"event"}]`

type handler func(ctx context.Context, log *types.Log) error

// watcher polls the foreign chain for counterpart events and drives the
// corresponding engine transitions, persisting the last processed block so a
// restart resumes where it left off.
type watcher struct {
	log       *logan.Entry
	engine    *engine.Engine
	lastBlock data.LastBlock
	ethClient *ethclient.Client

	contractAddress common.Address
	blockRange      uint64
	requestTimeout  time.Duration

	contractAbi abi.ABI
	handlers    map[string]handler
}

func newWatcher(log *logan.Entry, eng *engine.Engine, lastBlock data.LastBlock, network config.Network) *watcher {
	contractAbi, err := abi.JSON(strings.NewReader(counterpartABI))
	if err != nil {
		panic(errors.Wrap(err, "failed to parse counterpart ABI"))
	}

	w := &watcher{
		log:             log.WithField("worker", "lock-watcher"),
		engine:          eng,
		lastBlock:       lastBlock,
		ethClient:       network.EthClient,
		contractAddress: network.ContractAddress,
		blockRange:      network.BlockRange,
		requestTimeout:  network.RequestTimeout,
		contractAbi:     contractAbi,
	}

	w.handlers = map[string]handler{
		"OrderLocked": w.handleOrderLocked,
	}

	return w
}

func (w *watcher) tick(ctx context.Context) error {
	var from uint64
	last, err := w.lastBlock.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get last processed block")
	}
	if last != nil {
		from = *last + 1
	}

	child, cancel := context.WithTimeout(ctx, w.requestTimeout)
	currBlock, err := w.ethClient.BlockNumber(child)
	cancel()
	if err != nil {
		return errors.Wrap(err, "failed to get the latest block from the network")
	}
	if currBlock < from {
		return nil
	}

	step := w.blockRange
	if step == 0 {
		step = currBlock - from
	}
	for start := from; start <= currBlock; start += step + 1 {
		end := start + step
		if end > currBlock {
			end = currBlock
		}
		if err = w.handleRange(ctx, start, end); err != nil {
			return errors.Wrap(err, "failed to handle block range")
		}
	}

	err = w.lastBlock.Set(currBlock)
	return errors.Wrap(err, "failed to save last processed block")
}

func (w *watcher) handleRange(ctx context.Context, from, to uint64) error {
	filters := w.filters()
	filters.FromBlock = new(big.Int).SetUint64(from)
	filters.ToBlock = new(big.Int).SetUint64(to)

	child, cancel := context.WithTimeout(ctx, w.requestTimeout)
	defer cancel()

	logs, err := w.ethClient.FilterLogs(child, filters)
	if err != nil {
		return errors.Wrap(err, "failed to get filter logs")
	}

	for _, l := range logs {
		if err = w.handleEvent(ctx, l); err != nil {
			return errors.Wrap(err, "failed to handle event")
		}
	}

	return nil
}

func (w *watcher) filters() ethereum.FilterQuery {
	topics := make([]common.Hash, 0, len(w.handlers))
	for eventName := range w.handlers {
		topics = append(topics, w.contractAbi.Events[eventName].ID)
	}

	return ethereum.FilterQuery{
		Addresses: []common.Address{w.contractAddress},
		Topics:    [][]common.Hash{topics},
	}
}

func (w *watcher) handleEvent(ctx context.Context, l types.Log) error {
	// first topic must be a hashed signature of the event
	topic := l.Topics[0]

	event, err := w.contractAbi.EventByID(topic)
	if err != nil {
		return errors.Wrap(err, "failed to get event by topic", logan.F{"topic": topic.Hex()})
	}

	h, ok := w.handlers[event.Name]
	if !ok {
		return errors.From(errors.New("no handler for such event name"),
			logan.F{"event_name": event.Name})
	}

	err = h(ctx, &l)
	return errors.Wrap(err, "handling of event failed", logan.F{
		"topic":      topic.Hex(),
		"event_name": event.Name,
	})
}

func (w *watcher) handleOrderLocked(ctx context.Context, l *types.Log) error {
	if len(l.Topics) < 2 {
		return errors.New("OrderLocked log misses the orderId topic")
	}
	orderID := new(big.Int).SetBytes(l.Topics[1].Bytes()).Uint64()
	log := w.log.WithField("order_id", orderID)

	err := w.engine.HandleCounterpartyLock(ctx, orderID)
	switch errors.Cause(err) {
	case nil:
		log.Info("locked order on counterparty notification")
		return nil
	case engine.ErrUnknownOrder:
		log.Warn("counterpart locked an order this instance does not track, skipping it")
		return nil
	case engine.ErrBadState, engine.ErrExpired:
		// duplicate delivery or a lock racing cancel/expiry; state is committed
		// already and must not change
		log.WithField("reason", err.Error()).Warn("ignoring lock notification")
		return nil
	default:
		return errors.Wrap(err, "failed to handle counterparty lock")
	}
}
