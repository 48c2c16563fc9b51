package we

import (
	"github.com/goccy/go-json"
)

type ActionName string

func (n ActionName) String() string {
	return string(n)
}

func ActionNameOf(action any) ActionName {
	if remote, ok := action.(RemoteAction); ok {
		return remote.Action
	}

	return ActionName(NameOf(action))
}

// RemoteAction is the wire form of an action: its name and a JSON payload.
type RemoteAction struct {
	Action  ActionName      `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ActionDecoder maps a remote action onto a store's action type.
type ActionDecoder[A any] func(remote RemoteAction) (A, error)

// DecodePayload unmarshals the payload of remote into a new E. An empty payload
// yields the zero value.
func DecodePayload[E any](remote RemoteAction) (E, error) {
	var action E
	if len(remote.Payload) == 0 || string(remote.Payload) == "null" {
		return action, nil
	}

	if err := json.Unmarshal(remote.Payload, &action); err != nil {
		return action, InvalidPayload(remote.Action, err)
	}

	return action, nil
}
