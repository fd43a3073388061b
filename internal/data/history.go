package data

// SlippageEntry is one point of an order's slippage trail. The first entry is
// written at creation, then one per successful controller update.
type SlippageEntry struct {
	Timestamp       int64  `json:"timestamp"`
	Slippage        uint64 `json:"slippage"`
	VolatilityScore uint64 `json:"volatility_score"`
	CrossChainDelay uint64 `json:"cross_chain_delay"`
}

// History is the append-only per-order slippage trail.
type History interface {
	Append(orderID uint64, entry SlippageEntry) error
	Select(orderID uint64) ([]SlippageEntry, error)
}
