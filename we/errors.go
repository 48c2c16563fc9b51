package we

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrStoreClosed = errors.New("store closed")

var InvalidAction = errors.New("invalid action")

type ActionNotFoundError struct {
	Action ActionName
}

func (e ActionNotFoundError) Error() string {
	return fmt.Sprintf("unknown action: %s", e.Action)
}

func ActionNotFound(action ActionName) ActionNotFoundError {
	return ActionNotFoundError{Action: action}
}

type UnexpectedActionError struct {
	Action ActionName
}

func (e UnexpectedActionError) Error() string {
	return fmt.Sprintf("unexpected action: %s", e.Action)
}

func UnexpectedAction(action any) UnexpectedActionError {
	return UnexpectedActionError{Action: ActionNameOf(action)}
}

type InvalidPayloadError struct {
	Action ActionName
	Err    error
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload for %s: %v", e.Action, e.Err)
}

func (e *InvalidPayloadError) Unwrap() error {
	return e.Err
}

func InvalidPayload(action ActionName, err error) error {
	return &InvalidPayloadError{Action: action, Err: err}
}
