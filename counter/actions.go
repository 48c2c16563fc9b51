package counter

import "github.com/weegigs/wee-counter-go/we"

// Action is the closed set of actions understood by the counter store.
type Action interface {
	counterAction()
}

const (
	IncrementAction         we.ActionName = "counter:increment"
	DecrementAction         we.ActionName = "counter:decrement"
	IncrementByAmountAction we.ActionName = "counter:increment-by-amount"
	IncrementAsyncAction    we.ActionName = "counter:increment-async"
)

type Increment struct{}

func (Increment) TypeName() string {
	return IncrementAction.String()
}

type Decrement struct{}

func (Decrement) TypeName() string {
	return DecrementAction.String()
}

type IncrementByAmount struct {
	Amount int `json:"amount"`
}

func (IncrementByAmount) TypeName() string {
	return IncrementByAmountAction.String()
}

// IncrementAsync increments by Amount once the store's delay has elapsed.
type IncrementAsync struct {
	Amount int `json:"amount"`
}

func (IncrementAsync) TypeName() string {
	return IncrementAsyncAction.String()
}

func (Increment) counterAction()         {}
func (Decrement) counterAction()         {}
func (IncrementByAmount) counterAction() {}
func (IncrementAsync) counterAction()    {}

// DecodeAction maps a remote action onto the counter actions.
func DecodeAction(remote we.RemoteAction) (Action, error) {
	switch remote.Action {
	case IncrementAction:
		return Increment{}, nil
	case DecrementAction:
		return Decrement{}, nil
	case IncrementByAmountAction:
		action, err := we.DecodePayload[IncrementByAmount](remote)
		if err != nil {
			return nil, err
		}
		return action, nil
	case IncrementAsyncAction:
		action, err := we.DecodePayload[IncrementAsync](remote)
		if err != nil {
			return nil, err
		}
		return action, nil
	}

	return nil, we.ActionNotFound(remote.Action)
}
