package cache

import (
	"reflect"

	"github.com/reoring/lightjson/internal/schema"
)

// EstimateEntry is the default CostFunc: the estimated size of the bound value.
func EstimateEntry(e Entry) int64 {
	if e.Value == nil {
		return 0
	}
	return Estimate(reflect.ValueOf(e.Value))
}

// Estimate walks v and sums an approximate retained size: booleans count one
// byte, numbers their native width, strings their length, sequences the sum
// of their elements and records the sum of their bindable fields, so
// excluded and unexported fields are ignored. Pointers are followed; shared
// or cyclic pointers are counted once.
func Estimate(v reflect.Value) int64 {
	return estimate(v, map[uintptr]bool{})
}

func estimate(v reflect.Value, seen map[uintptr]bool) int64 {
	if !v.IsValid() {
		return 0
	}
	switch v.Kind() {
	case reflect.Pointer:
		if v.IsNil() {
			return 0
		}
		p := v.Pointer()
		if seen[p] {
			return 0
		}
		seen[p] = true
		return estimate(v.Elem(), seen)
	case reflect.Interface:
		if v.IsNil() {
			return 0
		}
		return estimate(v.Elem(), seen)
	case reflect.Bool:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return int64(v.Type().Size())
	case reflect.String:
		return int64(v.Len())
	case reflect.Slice, reflect.Array:
		et := v.Type().Elem()
		if fixedWidth(et) {
			return int64(v.Len()) * int64(et.Size())
		}
		var n int64
		for i := 0; i < v.Len(); i++ {
			n += estimate(v.Index(i), seen)
		}
		return n
	case reflect.Map:
		var n int64
		it := v.MapRange()
		for it.Next() {
			n += estimate(it.Key(), seen) + estimate(it.Value(), seen)
		}
		return n
	case reflect.Struct:
		d, err := schema.Resolve(v.Type())
		if err != nil {
			return 0
		}
		var n int64
		for _, f := range d.Fields {
			if fv, ok := schema.PeekField(v, f); ok {
				n += estimate(fv, seen)
			}
		}
		return n
	}
	return 0
}

func fixedWidth(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool:
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
