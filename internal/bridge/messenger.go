package bridge

import (
	"context"

	"gitlab.com/distributed_lab/logan/v3"
)

// Messenger dispatches committed bridge messages. Delivery is best-effort:
// the engine never reverts state when dispatch fails, and duplicate delivery
// must be tolerated by the counterpart.
type Messenger interface {
	Send(ctx context.Context, m Message) error
}

// LogMessenger only records outbound messages. It stands in for a real
// transport in development and tests.
type LogMessenger struct {
	log *logan.Entry
}

func NewLogMessenger(log *logan.Entry) *LogMessenger {
	return &LogMessenger{log: log}
}

func (m *LogMessenger) Send(_ context.Context, msg Message) error {
	m.log.WithFields(logan.F{
		"order_id": msg.OrderID,
		"action":   msg.Action,
		"target":   msg.TargetContract,
	}).Info("bridge message sent")
	return nil
}
