package we

// Snapshot is a read-only view of the store state at one revision.
type Snapshot[S any] struct {
	Revision  Revision  `json:"revision"`
	Timestamp Timestamp `json:"timestamp"`
	State     S         `json:"state"`
}

// Initialized reports whether any transition has been applied.
func (s Snapshot[S]) Initialized() bool {
	return s.Revision != InitialRevision
}
