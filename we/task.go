package we

import (
	"context"
)

// Task tracks a dispatched action until its effect on the state is applied.
// Tasks for synchronous actions are complete when Dispatch returns.
type Task[S any] struct {
	ID     TaskID
	Action ActionName

	done     chan struct{}
	snapshot Snapshot[S]
	err      error
}

func newTask[S any](id TaskID, action ActionName) *Task[S] {
	return &Task[S]{
		ID:     id,
		Action: action,
		done:   make(chan struct{}),
	}
}

func (t *Task[S]) complete(snapshot Snapshot[S], err error) {
	t.snapshot = snapshot
	t.err = err
	close(t.done)
}

func (t *Task[S]) Pending() bool {
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Wait blocks until the task completes or ctx ends. It returns the snapshot
// produced by the task's last transition.
func (t *Task[S]) Wait(ctx context.Context) (Snapshot[S], error) {
	select {
	case <-t.done:
		return t.snapshot, t.err
	case <-ctx.Done():
		return Snapshot[S]{}, ctx.Err()
	}
}
