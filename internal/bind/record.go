package bind

import (
	"reflect"

	"github.com/reoring/lightjson/internal/schema"
	"github.com/reoring/lightjson/jsontree"
)

// record binds every resolved field of rec from obj. Field order follows the
// descriptor; a failing field is reported and left untouched.
func (s *state) record(obj jsontree.Value, rec reflect.Value, path string) {
	d, err := schema.Resolve(rec.Type())
	if err != nil {
		s.fail(path, CodeNotInstantiable, err, map[string]string{"type": rec.Type().String()})
		return
	}
	for _, f := range d.Fields {
		fpath := join(path, f.Key)
		member, ok := obj.Lookup(f.Key)
		if !ok {
			s.fail(fpath, CodeRequired, nil, map[string]string{"key": f.Key})
			continue
		}
		v, ok := s.decode(f.Type, member, fpath)
		if !ok {
			continue
		}
		schema.FieldOf(rec, f).Set(v)
	}
}

// nested instantiates a record of type t (pointer layers included) and binds
// it from the JSON object v.
func (s *state) nested(t reflect.Type, v jsontree.Value, path string) (reflect.Value, bool) {
	if v.Kind() != jsontree.KindObject {
		s.fail(path, CodeInvalidType, nil, map[string]string{"expected": "object", "got": v.Kind().String()})
		return reflect.Value{}, false
	}
	if schema.Deref(t).Kind() != reflect.Struct {
		s.fail(path, CodeNotInstantiable, schema.ErrNotInstantiable, map[string]string{"type": t.String()})
		return reflect.Value{}, false
	}
	inst, err := schema.Instantiate(t)
	if err != nil {
		s.fail(path, CodeNotInstantiable, err, map[string]string{"type": t.String()})
		return reflect.Value{}, false
	}
	target := inst
	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	s.record(v, target, path)
	return inst, true
}
