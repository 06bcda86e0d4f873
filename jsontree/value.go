// Package jsontree holds the generic JSON value tree consumed by the binder.
//
// Parsers (see source/json, source/gojson and source/yaml) produce a Value;
// the binder only ever reads it.
package jsontree

import (
	"encoding/json"
	"strings"
)

// Kind enumerates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// Value is a tagged union over the JSON data model. The zero Value is null.
// Numbers keep their literal text so that integer widths are decided by the
// consumer, not by the parser.
type Value struct {
	kind Kind
	obj  map[string]Value
	keys []string // object keys in input order
	arr  []Value
	str  string
	num  json.Number
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// String wraps s.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps the literal text of a JSON number.
func Number(n json.Number) Value { return Value{kind: KindNumber, num: n} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Array wraps elems. The slice is retained.
func Array(elems []Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

// ObjectBuilder accumulates members in input order. A repeated key keeps the
// last value, matching encoding/json.
type ObjectBuilder struct {
	m    map[string]Value
	keys []string
}

// Set adds or replaces a member.
func (b *ObjectBuilder) Set(key string, v Value) {
	if b.m == nil {
		b.m = make(map[string]Value)
	}
	if _, ok := b.m[key]; !ok {
		b.keys = append(b.keys, key)
	}
	b.m[key] = v
}

// Build returns the object value.
func (b *ObjectBuilder) Build() Value {
	if b.m == nil {
		b.m = map[string]Value{}
	}
	return Value{kind: KindObject, obj: b.m, keys: b.keys}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload and whether v is a string.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the number literal and whether v is a number.
func (v Value) Num() (json.Number, bool) { return v.num, v.kind == KindNumber }

// Boolean returns the bool payload and whether v is a bool.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBool }

// Elems returns the array elements and whether v is an array.
func (v Value) Elems() ([]Value, bool) { return v.arr, v.kind == KindArray }

// Keys returns object keys in input order.
func (v Value) Keys() []string { return v.keys }

// Len returns the number of members or elements; 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.obj)
	case KindArray:
		return len(v.arr)
	}
	return 0
}

// Get returns the member stored under exactly key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	m, ok := v.obj[key]
	return m, ok
}

// Lookup returns the member under key, falling back to a case-insensitive
// match when no exact member exists. The fallback follows encoding/json.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	if m, ok := v.obj[key]; ok {
		return m, true
	}
	for _, k := range v.keys {
		if strings.EqualFold(k, key) {
			return v.obj[k], true
		}
	}
	return Value{}, false
}

// Interface converts v into the plain Go form used by encoding/json with
// UseNumber: map[string]any, []any, string, json.Number, bool or nil.
func (v Value) Interface() any {
	switch v.kind {
	case KindObject:
		m := make(map[string]any, len(v.obj))
		for k, e := range v.obj {
			m[k] = e.Interface()
		}
		return m
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// Text renders scalars as their JSON literal text (strings unquoted).
// Containers render as "".
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	}
	return ""
}
