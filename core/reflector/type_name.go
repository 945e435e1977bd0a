// Package reflector provides cached type-name lookups. Names are used
// for handler dispatch diagnostics and metrics labels, so repeated
// lookups for the same type must be cheap.
package reflector

import (
	"reflect"
	"sync"
)

var names sync.Map // reflect.Type -> string

// NameOf returns the fully qualified name ("pkg/path.TypeName") of the
// dynamic type of x. Unnamed types (tuples, funcs, slices) fall back to
// reflect's own notation. Thread-safe.
func NameOf(x any) string {
	if x == nil {
		return "<nil>"
	}
	return NameForType(reflect.TypeOf(x))
}

// NameFor returns the fully qualified name of type parameter T.
func NameFor[T any]() string {
	return NameForType(reflect.TypeFor[T]())
}

// NameForType returns the fully qualified name for t, caching the result.
func NameForType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if n, ok := names.Load(t); ok {
		return n.(string)
	}

	name := t.String()
	if t.Name() != "" && t.PkgPath() != "" {
		name = t.PkgPath() + "." + t.Name()
	}
	names.Store(t, name)
	return name
}
