package we

// Reducer maps the current state and an action to the next state. Reducers are
// pure and total: they never fail and never retain the action.
type Reducer[S any, A any] func(state S, action A) S
