// Package risk prices the cross-chain risk of a pending swap in basis points.
package risk

import "math/big"

// Model estimates slippage and bridge timing for a target chain. All methods
// must be pure and deterministic within a single engine call; an oracle-fed
// implementation may replace Static as long as it keeps that contract.
type Model interface {
	// InitialSlippage returns the acceptable slippage in basis points for a
	// swap of amount (smallest units) towards targetChainID.
	InitialSlippage(tokenIn, tokenOut string, amount *big.Int, targetChainID uint64) uint64
	// VolatilityScore scores the foreign token's volatility.
	VolatilityScore(tokenOut string) uint64
	// BridgeDelaySeconds estimates the bridge delivery delay.
	BridgeDelaySeconds(targetChainID uint64) uint64
}

const (
	baseSlippageBP       = 50
	bridgeDelayPremiumBP = 25
	largeOrderPremiumBP  = 50
)

// largeOrderThreshold is 1000 units of the source-domain base unit (10^24).
var largeOrderThreshold = new(big.Int).Exp(big.NewInt(10), big.NewInt(24), nil)

// Static reproduces the protocol's fixed risk schedule.
type Static struct{}

func NewStatic() Static { return Static{} }

func (Static) InitialSlippage(_, _ string, amount *big.Int, targetChainID uint64) uint64 {
	return baseSlippageBP + chainPremium(targetChainID) + bridgeDelayPremiumBP + sizePremium(amount)
}

// VolatilityScore is a placeholder until a price oracle is plugged in.
func (Static) VolatilityScore(_ string) uint64 { return 100 }

func (Static) BridgeDelaySeconds(targetChainID uint64) uint64 {
	switch targetChainID {
	case 1:
		return 900
	case 137:
		return 300
	default:
		return 1800
	}
}

func chainPremium(chainID uint64) uint64 {
	switch chainID {
	case 1:
		return 25
	case 137:
		return 50
	default:
		return 100
	}
}

func sizePremium(amount *big.Int) uint64 {
	if amount != nil && amount.Cmp(largeOrderThreshold) > 0 {
		return largeOrderPremiumBP
	}
	return 0
}
