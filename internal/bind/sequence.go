package bind

import (
	"reflect"
	"strconv"

	"github.com/reoring/lightjson/jsontree"
)

// sequence binds a JSON array into a slice or array type t. Each element is
// decoded against the element type, which may itself be a sequence; every
// nesting layer of t consumes one layer of JSON arrays. One bad element
// fails the whole sequence.
func (s *state) sequence(t reflect.Type, v jsontree.Value, path string) (reflect.Value, bool) {
	elems, ok := v.Elems()
	if !ok {
		s.fail(path, CodeInvalidType, nil, map[string]string{"expected": "array", "got": v.Kind().String()})
		return reflect.Value{}, false
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	et := base.Elem()

	var out reflect.Value
	if base.Kind() == reflect.Array {
		if len(elems) > base.Len() {
			s.fail(path, CodeTooLong, nil, map[string]string{"max": strconv.Itoa(base.Len()), "got": strconv.Itoa(len(elems))})
			return reflect.Value{}, false
		}
		out = reflect.New(base).Elem()
	} else {
		out = reflect.MakeSlice(base, len(elems), len(elems))
	}

	failed := false
	for i, e := range elems {
		ev, ok := s.decode(et, e, index(path, i))
		if !ok {
			failed = true
			continue
		}
		out.Index(i).Set(ev)
	}
	if failed {
		return reflect.Value{}, false
	}
	return box(t, out), true
}
