package engine

import (
	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

// GetOrder returns the stored order or nil when the id is unknown.
func (e *Engine) GetOrder(orderID uint64) (*data.Order, error) {
	o, err := e.storage.Orders().Get(orderID)
	return o, errors.Wrap(err, "failed to get order")
}

// GetUserOrders returns the ids of all orders the maker ever created, in
// creation sequence.
func (e *Engine) GetUserOrders(maker string) ([]uint64, error) {
	ids, err := e.storage.Orders().SelectByMaker(maker)
	return ids, errors.Wrap(err, "failed to select maker orders")
}

// GetOrderCount returns the number of orders ever created.
func (e *Engine) GetOrderCount() (uint64, error) {
	n, err := e.storage.Orders().Count()
	return n, errors.Wrap(err, "failed to count orders")
}

// GetSlippageHistory returns the order's slippage trail, oldest first.
func (e *Engine) GetSlippageHistory(orderID uint64) ([]data.SlippageEntry, error) {
	h, err := e.storage.History().Select(orderID)
	return h, errors.Wrap(err, "failed to select slippage history")
}
