package we

import (
	"context"
)

// Dispatch applies a synchronous action on behalf of an effect and returns once
// it has been applied.
type Dispatch[A any] func(ctx context.Context, action A) error

// Effect handles an action asynchronously. It runs on its own goroutine and
// reaches the state only through dispatch.
type Effect[A any] interface {
	Run(ctx context.Context, action A, dispatch Dispatch[A]) error
}

type Effects[A any] map[ActionName]Effect[A]

// EffectFunction adapts a function over one concrete action type E to an
// Effect over the store's action type A.
type EffectFunction[A any, E any] func(ctx context.Context, action E, dispatch Dispatch[A]) error

func (f EffectFunction[A, E]) Run(ctx context.Context, action A, dispatch Dispatch[A]) error {
	typed, ok := any(action).(E)
	if !ok {
		return UnexpectedAction(action)
	}

	return f(ctx, typed, dispatch)
}
