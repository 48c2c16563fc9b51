package we

import (
	"context"
	"errors"
	"testing"
	"time"
)

type tally struct {
	Total int `json:"total"`
}

type tallyAction interface {
	tallyAction()
}

type add struct {
	Amount int `json:"amount"`
}

type reset struct{}

type delayedAdd struct {
	Amount int           `json:"amount"`
	Delay  time.Duration `json:"delay"`
}

type failingAdd struct{}

type nestedAdd struct{}

func (add) tallyAction()        {}
func (reset) tallyAction()      {}
func (delayedAdd) tallyAction() {}
func (failingAdd) tallyAction() {}
func (nestedAdd) tallyAction()  {}

var errUpstream = errors.New("upstream unavailable")

func reduceTally(state tally, action tallyAction) tally {
	switch a := action.(type) {
	case add:
		state.Total += a.Amount
	case reset:
		state.Total = 0
	case delayedAdd, failingAdd, nestedAdd:
	}

	return state
}

func tallyDescriptor(clock Clock) StoreDescriptor[tally, tallyAction] {
	var delayed EffectFunction[tallyAction, delayedAdd] = func(ctx context.Context, action delayedAdd, dispatch Dispatch[tallyAction]) error {
		<-clock.After(action.Delay)
		return dispatch(ctx, add{Amount: action.Amount})
	}

	var failing EffectFunction[tallyAction, failingAdd] = func(ctx context.Context, action failingAdd, dispatch Dispatch[tallyAction]) error {
		return errUpstream
	}

	var nested EffectFunction[tallyAction, nestedAdd] = func(ctx context.Context, action nestedAdd, dispatch Dispatch[tallyAction]) error {
		return dispatch(ctx, delayedAdd{Amount: 1})
	}

	return StoreDescriptor[tally, tallyAction]{
		Reducer: reduceTally,
		Effects: map[ActionName]func() Effect[tallyAction]{
			ActionNameOf(delayedAdd{}): func() Effect[tallyAction] { return delayed },
			ActionNameOf(failingAdd{}): func() Effect[tallyAction] { return failing },
			ActionNameOf(nestedAdd{}):  func() Effect[tallyAction] { return nested },
		},
	}
}

func newTallyStore(options ...StoreOption) (*Store[tally, tallyAction], *ManualClock) {
	clock := NewManualClock(time.Date(2022, 2, 22, 10, 0, 0, 0, time.UTC))
	options = append([]StoreOption{WithClock(clock)}, options...)

	return NewStore(tallyDescriptor(clock), options...), clock
}

func closeStore(t *testing.T, store interface{ Close(context.Context) error }) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := store.Close(ctx); err != nil {
		t.Logf("store did not close cleanly: %+v", err)
	}
}

func waitFor[S any](t *testing.T, task *Task[S]) (Snapshot[S], error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	snapshot, err := task.Wait(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("task %s did not complete", task.ID)
	}

	return snapshot, err
}
