package we

import (
	"net/http"

	"github.com/goccy/go-json"
)

type SnapshotEncoder[S any] interface {
	Encode(w http.ResponseWriter, r *http.Request, status int, snapshot Snapshot[S]) error
}

type StateSerializer[S any] func(state S) (map[string]any, error)

func JsonStateSerializer[S any](state S) (map[string]any, error) {
	serialized, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	resource := make(map[string]any)
	if err = json.Unmarshal(serialized, &resource); err != nil {
		return nil, err
	}

	return resource, nil
}

// StateTypeOf names the state held by a store, e.g. "counter:counter".
func StateTypeOf(state any) string {
	return NameOf(state)
}

// ResourceEncoder writes a snapshot as a JSON object holding the state's fields
// plus $type, $revision and $timestamp.
type ResourceEncoder[S any] struct {
	Serializer StateSerializer[S]
}

func NewResourceEncoder[S any]() ResourceEncoder[S] {
	return ResourceEncoder[S]{Serializer: JsonStateSerializer[S]}
}

func (encoder ResourceEncoder[S]) Encode(w http.ResponseWriter, r *http.Request, status int, snapshot Snapshot[S]) error {
	serialize := encoder.Serializer
	if serialize == nil {
		serialize = JsonStateSerializer[S]
	}

	resource, err := serialize(snapshot.State)
	if err != nil {
		http.Error(w, "failed to encode resource", http.StatusInternalServerError)
		return err
	}

	resource["$type"] = StateTypeOf(snapshot.State)
	resource["$revision"] = snapshot.Revision
	resource["$timestamp"] = snapshot.Timestamp

	body, err := json.Marshal(resource)
	if err != nil {
		http.Error(w, "failed to encode resource", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)

	return err
}
