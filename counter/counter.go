package counter

// Counter is the state held by the counter store.
type Counter struct {
	Current int `json:"value"`
}

func (state Counter) Value() int {
	return state.Current
}

func (Counter) TypeName() string {
	return "counter:counter"
}
