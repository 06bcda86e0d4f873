package schema

import (
	"reflect"
	"strconv"

	"github.com/reoring/lightjson/jsontree"
)

// Tag classifies a declared field type and drives binder dispatch.
type Tag int

const (
	TagInt Tag = iota
	TagLong
	TagBoolean
	TagFloat
	TagDouble
	TagString
	TagList
	TagBean
	// TagAny marks fields that receive the raw JSON value (interface types
	// and jsontree.Value).
	TagAny
)

var tagNames = [...]string{
	TagInt:     "INT",
	TagLong:    "LONG",
	TagBoolean: "BOOLEAN",
	TagFloat:   "FLOAT",
	TagDouble:  "DOUBLE",
	TagString:  "STRING",
	TagList:    "LIST",
	TagBean:    "BEAN",
	TagAny:     "ANY",
}

func (t Tag) String() string {
	if t >= 0 && int(t) < len(tagNames) {
		return tagNames[t]
	}
	return "Tag(" + strconv.Itoa(int(t)) + ")"
}

// IsPrimitive reports whether values of this tag are scalar leaves.
func (t Tag) IsPrimitive() bool { return t <= TagString }

var valueType = reflect.TypeOf(jsontree.Value{})

// Classify maps a declared type onto its Tag. Pointer layers are looked
// through, so *int and int share a tag. It never panics; unknown shapes
// fall through to TagBean.
func Classify(t reflect.Type) Tag {
	if t == nil {
		return TagBean
	}
	t = Deref(t)
	if t == valueType {
		return TagAny
	}
	switch t.Kind() {
	case reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return TagInt
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint64, reflect.Uintptr:
		return TagLong
	case reflect.Bool:
		return TagBoolean
	case reflect.Float32:
		return TagFloat
	case reflect.Float64:
		return TagDouble
	case reflect.String:
		return TagString
	case reflect.Slice, reflect.Array:
		return TagList
	case reflect.Interface:
		return TagAny
	default:
		return TagBean
	}
}

// Deref strips every pointer layer from t.
func Deref(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// Layers counts nested sequence layers of t: []int is 1, [][]int is 2.
func Layers(t reflect.Type) int {
	n := 0
	for t = Deref(t); t.Kind() == reflect.Slice || t.Kind() == reflect.Array; t = Deref(t.Elem()) {
		n++
	}
	return n
}
