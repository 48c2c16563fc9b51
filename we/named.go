package we

import (
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
)

// Named values supply their own name instead of the one derived from their Go type.
type Named interface {
	TypeName() string
}

// NameOf returns the explicit name of value when it implements Named, otherwise
// "<package>:<kebab-case type>", e.g. counter.IncrementByAmount becomes
// "counter:increment-by-amount".
func NameOf(value any) string {
	if typed, ok := value.(Named); ok {
		return typed.TypeName()
	}

	t := reflect.TypeOf(value)
	if t == nil {
		return "nil"
	}

	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	// generic instantiations carry their type arguments in brackets
	name := t.String()
	if i := strings.Index(name, "["); i >= 0 {
		name = name[:i]
	}

	split := strings.Split(name, ".")
	segments := make([]string, len(split))
	for i, segment := range split {
		segments[i] = strcase.ToKebab(segment)
	}

	if len(segments) == 1 {
		return segments[0]
	}

	namespace := segments[0]
	rest := strings.Join(segments[1:], "-")

	return namespace + ":" + rest
}
