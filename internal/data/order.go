package data

import "math/big"

// Status is the lifecycle state of an order.
type Status uint8

const (
	StatusActive Status = iota + 1
	StatusLocked
	StatusCompleted
	StatusExpired
	StatusCancelled
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusExpired || s == StatusCancelled
}

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusLocked:
		return "locked"
	case StatusCompleted:
		return "completed"
	case StatusExpired:
		return "expired"
	case StatusCancelled:
		return "cancelled"
	}
	return "unknown"
}

// Order is the single durable entity of the escrow. The swap secret is never
// part of it: only the hashlock is stored, and claim supplies the preimage
// externally.
type Order struct {
	OrderID              uint64   `json:"order_id"`
	Maker                string   `json:"maker"`
	TokenIn              string   `json:"token_in"`
	TokenOut             string   `json:"token_out"`
	AmountIn             *big.Int `json:"amount_in"`
	BasePrice            *big.Int `json:"base_price"`
	CurrentSlippage      uint64   `json:"current_slippage"`
	MaxSlippageDeviation uint64   `json:"max_slippage_deviation"`
	TargetChainID        uint64   `json:"target_chain_id"`
	Hashlock             string   `json:"hashlock"`
	Timelock             uint64   `json:"timelock"`
	Status               Status   `json:"status"`
	CreatedAt            int64    `json:"created_at"`
	LastSlippageUpdate   int64    `json:"last_slippage_update"`
	FillAttempts         uint64   `json:"fill_attempts"`
}

// Orders is the primary keyspace plus its maker and hashlock indexes. Order
// ids come from NextID so the counter survives restarts and ids stay
// contiguous starting at 1.
type Orders interface {
	NextID() (uint64, error)
	Insert(Order) error
	Update(Order) error
	Get(orderID uint64) (*Order, error)
	GetByHashlock(hashlock string) (*Order, error)
	SelectByMaker(maker string) ([]uint64, error)
	SelectByStatus(Status) ([]Order, error)
	Count() (uint64, error)
}
