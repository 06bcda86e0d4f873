// Package bind populates Go records from a jsontree.Value.
//
// Binding is best effort: a field that cannot be bound keeps its initial
// value, an Issue is recorded and binding continues with the next field.
package bind

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reoring/lightjson/i18n"
	"github.com/reoring/lightjson/internal/schema"
	"github.com/reoring/lightjson/jsontree"
)

// Issue codes reported for fields.
const (
	CodeRequired        = "required"
	CodeInvalidType     = "invalid_type"
	CodeOverflow        = "overflow"
	CodeTooLong         = "too_long"
	CodeNotInstantiable = "not_instantiable"
)

// Issue records one field that could not be bound.
type Issue struct {
	Path    string // JSON Pointer of the offending member.
	Code    string
	Message string
	Cause   error
}

type state struct {
	log    zerolog.Logger
	issues []Issue
}

// Record binds obj into rec, which must be an addressable struct value, and
// returns the issues met on the way in field order.
func Record(obj jsontree.Value, rec reflect.Value, log zerolog.Logger) []Issue {
	s := &state{log: log}
	s.record(obj, rec, "")
	return s.issues
}

// Value decodes v into a fresh value of type t. ok is false when v cannot
// be represented as t; the issues explain why.
func Value(t reflect.Type, v jsontree.Value, log zerolog.Logger) (reflect.Value, []Issue, bool) {
	s := &state{log: log}
	out, ok := s.decode(t, v, "")
	return out, s.issues, ok
}

func (s *state) fail(path, code string, cause error, data map[string]string) {
	if path == "" {
		path = "/"
	}
	msg := i18n.T(code, data)
	s.issues = append(s.issues, Issue{Path: path, Code: code, Message: msg, Cause: cause})
	ev := s.log.Debug().Str("path", path).Str("code", code)
	if cause != nil {
		ev = ev.Err(cause)
	}
	ev.Msg("field skipped")
}

// decode dispatches on the classified tag of t.
func (s *state) decode(t reflect.Type, v jsontree.Value, path string) (reflect.Value, bool) {
	tag := schema.Classify(t)
	if tag == schema.TagAny {
		return s.raw(t, v, path)
	}
	if v.IsNull() {
		if nillable(t) {
			return reflect.Zero(t), true
		}
		s.fail(path, CodeInvalidType, nil, map[string]string{"expected": tag.String(), "got": "null"})
		return reflect.Value{}, false
	}
	switch tag {
	case schema.TagList:
		return s.sequence(t, v, path)
	case schema.TagBean:
		return s.nested(t, v, path)
	default:
		return s.primitive(t, tag, v, path)
	}
}

func nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}

// box wraps v (of the pointer-free base of t) into the pointer layers of t.
func box(t reflect.Type, v reflect.Value) reflect.Value {
	if t.Kind() != reflect.Pointer {
		return v
	}
	inner := box(t.Elem(), v)
	p := reflect.New(t.Elem())
	p.Elem().Set(inner)
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func join(base, key string) string { return base + "/" + pointerEscaper.Replace(key) }

func index(base string, i int) string { return base + "/" + strconv.Itoa(i) }
