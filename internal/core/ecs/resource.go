package ecs

import (
	"fmt"
	"reflect"
)

// resourceSet holds world-global singletons keyed by concrete type.
type resourceSet struct {
	values map[reflect.Type]any
}

func newResourceSet() *resourceSet {
	return &resourceSet{values: make(map[reflect.Type]any, 8)}
}

// SetResource registers v as the singleton of its type, replacing any
// previous registration.
func SetResource[T any](w *World, v *T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	w.resources.values[t] = v
}

// Resource fetches the singleton of type T.
func Resource[T any](w *World) (*T, bool) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, ok := w.resources.values[t]
	if !ok {
		return nil, false
	}
	return v.(*T), true
}

// MustResource fetches the singleton of type T and panics when it was
// never registered. Reserved for code paths that are configuration
// errors without it.
func MustResource[T any](w *World) *T {
	v, ok := Resource[T](w)
	if !ok {
		panic(fmt.Sprintf("ecs: resource %v not registered", reflect.TypeOf((*T)(nil)).Elem()))
	}
	return v
}

// RemoveResource drops the singleton of type T, if present.
func RemoveResource[T any](w *World) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	delete(w.resources.values, t)
}
