package counter

import (
	"time"

	"github.com/weegigs/wee-counter-go/we"
)

type Store = we.Store[Counter, Action]

type Dependencies struct {
	Clock we.Clock
	Delay time.Duration
}

// AsyncDelay is the delay the asynchronous increment waits for. An unset
// delay means DefaultDelay.
func (dependencies Dependencies) AsyncDelay() time.Duration {
	if dependencies.Delay <= 0 {
		return DefaultDelay
	}

	return dependencies.Delay
}

func CreateCounterDescriptor(dependencies Dependencies) we.StoreDescriptor[Counter, Action] {
	clock := dependencies.Clock
	if clock == nil {
		clock = we.SystemClock{}
	}

	delay := dependencies.AsyncDelay()

	effects := map[we.ActionName]func() we.Effect[Action]{
		IncrementAsyncAction: func() we.Effect[Action] { return incrementAsync(clock, delay) },
	}

	return we.StoreDescriptor[Counter, Action]{
		Initial: Counter{},
		Reducer: Reduce,
		Effects: effects,
	}
}

// NewStore creates a counter store starting at zero. The store's clock is the
// one the asynchronous increment waits on.
func NewStore(dependencies Dependencies, options ...we.StoreOption) *Store {
	descriptor := CreateCounterDescriptor(dependencies)
	if dependencies.Clock != nil {
		options = append([]we.StoreOption{we.WithClock(dependencies.Clock)}, options...)
	}

	return we.NewStore(descriptor, options...)
}
