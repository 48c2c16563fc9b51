package counter

// Reduce applies a synchronous action. IncrementAsync has no synchronous
// effect; the store resolves it through its effect.
func Reduce(state Counter, action Action) Counter {
	switch a := action.(type) {
	case Increment:
		state.Current = state.Current + 1
	case Decrement:
		state.Current = state.Current - 1
	case IncrementByAmount:
		state.Current = state.Current + a.Amount
	case IncrementAsync:
	}

	return state
}
