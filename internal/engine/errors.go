package engine

import "gitlab.com/distributed_lab/logan/v3/errors"

// Operation failures, distinguishable by kind via errors.Cause. Every failed
// operation leaves the store untouched.
var (
	ErrZeroDeposit       = errors.New("deposit must be positive")
	ErrInvalidDeviation  = errors.New("max slippage deviation exceeds 10000 basis points")
	ErrDuplicateHashlock = errors.New("hashlock is already bound to an order")
	ErrUnknownOrder      = errors.New("order not found")
	ErrInvalidSecret     = errors.New("secret does not match the hashlock")
	ErrBadState          = errors.New("order state does not allow this transition")
	ErrExpired           = errors.New("order timelock has expired")
	ErrNotMaker          = errors.New("caller is not the order maker")
	ErrAttemptLimit      = errors.New("fill attempt limit reached")
	ErrTooSoon           = errors.New("slippage was updated too recently")
)
