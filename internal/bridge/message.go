// Package bridge carries serialized order events to the foreign-chain
// counterpart contract through an opaque messenger.
package bridge

import (
	"encoding/json"

	"gitlab.com/distributed_lab/logan/v3/errors"

	"github.com/AdaptiveFi/crosschain-engine-svc/internal/data"
)

const (
	ActionCreateOrder    = "create_order"
	ActionUpdateSlippage = "update_slippage"
	ActionClaim          = "claim"
	ActionCancel         = "cancel"
)

// Message is the bridge wire object. Data is an opaque payload: the
// JSON-serialized order for create_order, {"slippage":<bp>} for
// update_slippage.
type Message struct {
	OrderID        uint64 `json:"order_id"`
	TargetContract string `json:"target_contract"`
	Action         string `json:"action"`
	Data           string `json:"data"`
}

func NewCreateOrder(targetContract string, o data.Order) (Message, error) {
	payload, err := json.Marshal(o)
	if err != nil {
		return Message{}, errors.Wrap(err, "failed to marshal order snapshot")
	}
	return Message{
		OrderID:        o.OrderID,
		TargetContract: targetContract,
		Action:         ActionCreateOrder,
		Data:           string(payload),
	}, nil
}

func NewUpdateSlippage(targetContract string, orderID, slippage uint64) Message {
	payload, _ := json.Marshal(struct {
		Slippage uint64 `json:"slippage"`
	}{slippage})
	return Message{
		OrderID:        orderID,
		TargetContract: targetContract,
		Action:         ActionUpdateSlippage,
		Data:           string(payload),
	}
}

// NewClaim relays the revealed preimage so the counterpart can unlock the
// foreign side of the swap.
func NewClaim(targetContract string, orderID uint64, secret string) Message {
	payload, _ := json.Marshal(struct {
		Secret string `json:"secret"`
	}{secret})
	return Message{
		OrderID:        orderID,
		TargetContract: targetContract,
		Action:         ActionClaim,
		Data:           string(payload),
	}
}

func NewCancel(targetContract string, orderID uint64) Message {
	return Message{
		OrderID:        orderID,
		TargetContract: targetContract,
		Action:         ActionCancel,
	}
}

// DecodeOrder restores the order snapshot from a create_order payload.
func DecodeOrder(m Message) (data.Order, error) {
	if m.Action != ActionCreateOrder {
		return data.Order{}, errors.Errorf("message action %q carries no order snapshot", m.Action)
	}
	var o data.Order
	if err := json.Unmarshal([]byte(m.Data), &o); err != nil {
		return data.Order{}, errors.Wrap(err, "failed to unmarshal order snapshot")
	}
	return o, nil
}
