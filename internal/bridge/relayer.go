package bridge

import (
	"context"
	"net/url"

	jsonapi "gitlab.com/distributed_lab/json-api-connector"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// RelayerMessenger posts bridge messages to the relayer service that forwards
// them to the foreign chain.
type RelayerMessenger struct {
	relayer *jsonapi.Connector
}

func NewRelayerMessenger(relayer *jsonapi.Connector) *RelayerMessenger {
	return &RelayerMessenger{relayer: relayer}
}

func (m *RelayerMessenger) Send(ctx context.Context, msg Message) error {
	u, _ := url.Parse("/bridge_messages")
	err := m.relayer.PostJSON(u, msg, ctx, nil)
	return errors.Wrap(err, "failed to post bridge message to relayer")
}
