package bridge

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

func TestCreateOrderRoundTrip(t *testing.T) {
	amount, _ := new(big.Int).SetString("2000000000000000000000000", 10)
	o := data.Order{
		OrderID:              7,
		Maker:                "alice.near",
		TokenIn:              "near",
		TokenOut:             "0x6b175474e89094c44da98b954eedeac495271d0f",
		AmountIn:             amount,
		BasePrice:            big.NewInt(1850),
		CurrentSlippage:      175,
		MaxSlippageDeviation: 50,
		TargetChainID:        137,
		Hashlock:             "512a80158f790e78955013c6c2801451cec99a952ab97662f33ac4a39dd78ec0",
		Timelock:             117280,
		Status:               data.StatusActive,
		CreatedAt:            1700000000000000000,
		LastSlippageUpdate:   1700000000000000000,
		FillAttempts:         0,
	}

	msg, err := NewCreateOrder("0xcounterpart", o)
	require.NoError(t, err)
	assert.Equal(t, ActionCreateOrder, msg.Action)
	assert.Equal(t, uint64(7), msg.OrderID)

	decoded, err := DecodeOrder(msg)
	require.NoError(t, err)
	assert.Equal(t, o, decoded)
}

func TestUpdateSlippagePayload(t *testing.T) {
	msg := NewUpdateSlippage("0xcounterpart", 3, 130)
	assert.Equal(t, ActionUpdateSlippage, msg.Action)
	assert.JSONEq(t, `{"slippage":130}`, msg.Data)
}

func TestMessageWireFormat(t *testing.T) {
	msg := NewCancel("0xcounterpart", 9)
	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"order_id":9,"target_contract":"0xcounterpart","action":"cancel","data":""}`, string(raw))
}

func TestDecodeOrderRejectsOtherActions(t *testing.T) {
	_, err := DecodeOrder(NewCancel("0xcounterpart", 1))
	assert.Error(t, err)
}
