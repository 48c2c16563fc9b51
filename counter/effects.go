package counter

import (
	"context"
	"time"

	"github.com/weegigs/wee-counter-go/we"
)

const DefaultDelay = time.Second

func incrementAsync(clock we.Clock, delay time.Duration) we.Effect[Action] {
	var effect we.EffectFunction[Action, IncrementAsync] = func(ctx context.Context, action IncrementAsync, dispatch we.Dispatch[Action]) error {
		<-clock.After(delay)
		return dispatch(ctx, IncrementByAmount{Amount: action.Amount})
	}

	return effect
}
