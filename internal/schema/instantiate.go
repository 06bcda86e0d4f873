package schema

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrNotInstantiable is returned for types the binder cannot construct.
var ErrNotInstantiable = errors.New("schema: type cannot be instantiated")

// Defaulter is implemented by records that need non-zero initial values.
// SetDefaults runs on every freshly instantiated record before binding.
type Defaulter interface {
	SetDefaults()
}

// Instantiate returns a new value of type t. Pointer types are allocated
// through every layer, sequences start empty, and records are default
// initialized. The result is assignable to a field of type t.
func Instantiate(t reflect.Type) (reflect.Value, error) {
	if t == nil {
		return reflect.Value{}, ErrNotInstantiable
	}
	if t.Kind() == reflect.Pointer {
		inner, err := Instantiate(t.Elem())
		if err != nil {
			return reflect.Value{}, err
		}
		if inner.CanAddr() {
			return inner.Addr(), nil
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(inner)
		return p, nil
	}
	switch t.Kind() {
	case reflect.Struct:
		v := reflect.New(t)
		if d, ok := v.Interface().(Defaulter); ok {
			d.SetDefaults()
		}
		return v.Elem(), nil
	case reflect.Slice:
		return reflect.MakeSlice(t, 0, 0), nil
	case reflect.Map, reflect.Func, reflect.Chan, reflect.UnsafePointer, reflect.Invalid:
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrNotInstantiable, t)
	default:
		// scalars, arrays and interfaces start at their zero value
		return reflect.New(t).Elem(), nil
	}
}

// New allocates a *T-shaped record for the struct type t and returns the
// pointer. It is the root-level counterpart of Instantiate.
func New(t reflect.Type) (reflect.Value, error) {
	if t == nil || t.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("%w: %v is not a struct", ErrNotInstantiable, t)
	}
	return Instantiate(reflect.PointerTo(t))
}
