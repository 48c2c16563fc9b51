package we

import "context"

type TaskID string

func (id TaskID) String() string {
	return string(id)
}

type CorrelationID string

func (id CorrelationID) String() string {
	return string(id)
}

type RecordedActionMetadata struct {
	CausationId   TaskID        `json:"causationId,omitempty"`
	CorrelationId CorrelationID `json:"correlationId,omitempty"`
}

type correlationKey struct{}

// WithCorrelationId attaches a correlation id that is recorded with every action
// dispatched using the returned context.
func WithCorrelationId(ctx context.Context, id CorrelationID) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationIdFrom(ctx context.Context) CorrelationID {
	id, _ := ctx.Value(correlationKey{}).(CorrelationID)
	return id
}
