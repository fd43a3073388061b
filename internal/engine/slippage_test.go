package engine

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/bridge"
	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

// stubModel lets a test steer what the risk model proposes between updates.
type stubModel struct {
	slippage   uint64
	volatility uint64
	delay      uint64
}

func (m *stubModel) InitialSlippage(_, _ string, _ *big.Int, _ uint64) uint64 { return m.slippage }
func (m *stubModel) VolatilityScore(string) uint64                            { return m.volatility }
func (m *stubModel) BridgeDelaySeconds(uint64) uint64                         { return m.delay }

func (env *testEnv) advanceOneInterval() {
	env.clock.now = env.clock.now.Add(env.engine.params.SlippageUpdateInterval)
}

func createWithDeviation(t *testing.T, env *testEnv, secret string, deviation uint64) uint64 {
	req := createReq(secret)
	req.MaxSlippageDeviation = deviation
	id, err := env.engine.CreateCrossChainOrder(context.Background(), "alice.near", big.NewInt(1), req)
	require.NoError(t, err)
	return id
}

func TestUpdateRateLimit(t *testing.T) {
	env := newTestEnv(&stubModel{slippage: 100, volatility: 100, delay: 900})
	ctx := context.Background()
	id := createWithDeviation(t, env, "s1", 50)

	// within the window the second update must fail and change nothing
	assert.ErrorIs(t, env.engine.UpdateOrderSlippage(ctx, id), ErrTooSoon)

	before, _ := env.engine.GetOrder(id)
	h, err := env.engine.GetSlippageHistory(id)
	require.NoError(t, err)
	require.Len(t, h, 1, "creation writes the first history entry")

	// at exactly last_update + interval the update succeeds
	env.advanceOneInterval()
	require.NoError(t, env.engine.UpdateOrderSlippage(ctx, id))

	after, _ := env.engine.GetOrder(id)
	assert.Greater(t, after.LastSlippageUpdate, before.LastSlippageUpdate)

	h, err = env.engine.GetSlippageHistory(id)
	require.NoError(t, err)
	assert.Len(t, h, 2)
}

func TestAdaptiveStepCap(t *testing.T) {
	model := &stubModel{slippage: 100, volatility: 100, delay: 900}
	env := newTestEnv(model)
	ctx := context.Background()
	id := createWithDeviation(t, env, "s1", 30)

	o, _ := env.engine.GetOrder(id)
	require.Equal(t, uint64(100), o.CurrentSlippage)

	// the model now proposes 200; each update may move at most 30 bp
	model.slippage = 200

	env.advanceOneInterval()
	require.NoError(t, env.engine.UpdateOrderSlippage(ctx, id))
	o, _ = env.engine.GetOrder(id)
	assert.Equal(t, uint64(130), o.CurrentSlippage)

	env.advanceOneInterval()
	require.NoError(t, env.engine.UpdateOrderSlippage(ctx, id))
	o, _ = env.engine.GetOrder(id)
	assert.Equal(t, uint64(160), o.CurrentSlippage)
}

func TestSaturationAtZero(t *testing.T) {
	cases := []struct {
		name     string
		current  uint64
		dev      uint64
		proposed uint64
		want     uint64
	}{
		{"within deviation drops straight to zero", 20, 50, 0, 0},
		{"boundary values from a tiny current", 10, 50, 0, 0},
		{"capped step down", 100, 30, 0, 70},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			model := &stubModel{slippage: tc.current, volatility: 100, delay: 900}
			env := newTestEnv(model)
			id := createWithDeviation(t, env, "s1", tc.dev)

			model.slippage = tc.proposed
			env.advanceOneInterval()
			require.NoError(t, env.engine.UpdateOrderSlippage(context.Background(), id))

			o, _ := env.engine.GetOrder(id)
			assert.Equal(t, tc.want, o.CurrentSlippage)
		})
	}
}

func TestClampSlippage(t *testing.T) {
	assert.Equal(t, uint64(200), clampSlippage(180, 200, 30))
	assert.Equal(t, uint64(130), clampSlippage(100, 200, 30))
	assert.Equal(t, uint64(70), clampSlippage(100, 0, 30))
	assert.Equal(t, uint64(0), clampSlippage(20, 0, 50))
	assert.Equal(t, uint64(100), clampSlippage(100, 100, 0))
	assert.Equal(t, uint64(100), clampSlippage(100, 300, 0))
}

func TestUpdateGuards(t *testing.T) {
	env := newTestEnv(&stubModel{slippage: 100, volatility: 100, delay: 900})
	ctx := context.Background()

	assert.ErrorIs(t, env.engine.UpdateOrderSlippage(ctx, 7), ErrUnknownOrder)

	id := createWithDeviation(t, env, "s1", 50)
	require.NoError(t, env.engine.HandleCounterpartyLock(ctx, id))
	env.advanceOneInterval()
	assert.ErrorIs(t, env.engine.UpdateOrderSlippage(ctx, id), ErrBadState)
}

func TestUpdateHistoryAndNotify(t *testing.T) {
	model := &stubModel{slippage: 100, volatility: 73, delay: 300}
	env := newTestEnv(model)
	ctx := context.Background()
	id := createWithDeviation(t, env, "s1", 50)

	model.slippage = 120
	env.advanceOneInterval()
	require.NoError(t, env.engine.UpdateOrderSlippage(ctx, id))

	h, err := env.engine.GetSlippageHistory(id)
	require.NoError(t, err)
	require.Len(t, h, 2)

	// first entry is the creation seed
	assert.Equal(t, uint64(100), h[0].Slippage)
	assert.Equal(t, uint64(0), h[0].VolatilityScore)
	assert.Equal(t, uint64(900), h[0].CrossChainDelay)

	assert.Equal(t, uint64(120), h[1].Slippage)
	assert.Equal(t, uint64(73), h[1].VolatilityScore)
	assert.Equal(t, uint64(300), h[1].CrossChainDelay)
	assert.Greater(t, h[1].Timestamp, h[0].Timestamp)

	msg := env.messenger.last(t)
	assert.Equal(t, bridge.ActionUpdateSlippage, msg.Action)
	assert.Equal(t, id, msg.OrderID)
	assert.JSONEq(t, `{"slippage":120}`, msg.Data)

	o, _ := env.engine.GetOrder(id)
	assert.Equal(t, data.StatusActive, o.Status, "updates never change the lifecycle state")
}
