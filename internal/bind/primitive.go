package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/reoring/lightjson/internal/schema"
	"github.com/reoring/lightjson/jsontree"
)

var (
	errNotNumber = errors.New("not a number")
	errRange     = errors.New("value out of range")
)

var valueType = reflect.TypeOf(jsontree.Value{})

// primitive coerces a scalar JSON value into the declared primitive type t.
//
// Integers accept numbers and numeric strings; fractions are truncated
// toward zero and values outside the declared width are rejected. Floats
// accept the same inputs, FLOAT narrows the double. Booleans accept JSON
// booleans and boolean strings. Strings accept any scalar in its literal form.
func (s *state) primitive(t reflect.Type, tag schema.Tag, v jsontree.Value, path string) (reflect.Value, bool) {
	base := schema.Deref(t)
	out := reflect.New(base).Elem()

	mismatch := func() (reflect.Value, bool) {
		s.fail(path, CodeInvalidType, nil, map[string]string{"expected": tag.String(), "got": v.Kind().String()})
		return reflect.Value{}, false
	}
	overflow := func(err error) (reflect.Value, bool) {
		s.fail(path, CodeOverflow, err, map[string]string{"type": base.String(), "got": v.Text()})
		return reflect.Value{}, false
	}

	switch tag {
	case schema.TagInt, schema.TagLong:
		lit, ok := numericText(v)
		if !ok {
			return mismatch()
		}
		if err := setInteger(out, lit); err != nil {
			if errors.Is(err, errNotNumber) {
				s.fail(path, CodeInvalidType, err, map[string]string{"expected": tag.String(), "got": v.Text()})
				return reflect.Value{}, false
			}
			return overflow(err)
		}
	case schema.TagFloat, schema.TagDouble:
		lit, ok := numericText(v)
		if !ok {
			return mismatch()
		}
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return overflow(err)
			}
			s.fail(path, CodeInvalidType, err, map[string]string{"expected": tag.String(), "got": v.Text()})
			return reflect.Value{}, false
		}
		if out.OverflowFloat(f) {
			return overflow(errRange)
		}
		out.SetFloat(f)
	case schema.TagBoolean:
		var b bool
		switch v.Kind() {
		case jsontree.KindBool:
			b, _ = v.Boolean()
		case jsontree.KindString:
			str, _ := v.Str()
			lit := strings.ToLower(strings.TrimSpace(str))
			parsed, err := cast.ToBoolE(lit)
			if err == nil && lit != "true" && lit != "false" {
				err = fmt.Errorf("not a boolean: %q", str)
			}
			if err != nil {
				s.fail(path, CodeInvalidType, err, map[string]string{"expected": tag.String(), "got": str})
				return reflect.Value{}, false
			}
			b = parsed
		default:
			return mismatch()
		}
		out.SetBool(b)
	case schema.TagString:
		switch v.Kind() {
		case jsontree.KindString, jsontree.KindNumber, jsontree.KindBool:
		default:
			return mismatch()
		}
		out.SetString(v.Text())
	default:
		return mismatch()
	}
	return box(t, out), true
}

// numericText returns the literal of a number, or of a string holding one.
func numericText(v jsontree.Value) (string, bool) {
	switch v.Kind() {
	case jsontree.KindNumber:
		n, _ := v.Num()
		return n.String(), true
	case jsontree.KindString:
		str, _ := v.Str()
		return strings.TrimSpace(str), true
	}
	return "", false
}

// setInteger stores the decimal literal lit into the integer value out,
// truncating fractions and rejecting values out of out's range.
func setInteger(out reflect.Value, lit string) error {
	signed := false
	switch out.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		signed = true
	}

	n := json.Number(lit)
	if i, err := n.Int64(); err == nil {
		if signed {
			if out.OverflowInt(i) {
				return fmt.Errorf("%w: %d", errRange, i)
			}
			out.SetInt(i)
			return nil
		}
		if i < 0 || out.OverflowUint(uint64(i)) {
			return fmt.Errorf("%w: %d", errRange, i)
		}
		out.SetUint(uint64(i))
		return nil
	}
	if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
		if signed || out.OverflowUint(u) {
			return fmt.Errorf("%w: %d", errRange, u)
		}
		out.SetUint(u)
		return nil
	}
	f, err := n.Float64()
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return fmt.Errorf("%w: %s", errRange, lit)
		}
		return fmt.Errorf("%w: %q", errNotNumber, lit)
	}
	f = math.Trunc(f)
	if signed {
		if f < math.MinInt64 || f >= math.MaxInt64 || out.OverflowInt(int64(f)) {
			return fmt.Errorf("%w: %s", errRange, lit)
		}
		out.SetInt(int64(f))
		return nil
	}
	if f < 0 || f >= math.MaxUint64 || out.OverflowUint(uint64(f)) {
		return fmt.Errorf("%w: %s", errRange, lit)
	}
	out.SetUint(uint64(f))
	return nil
}

// raw assigns the JSON value as-is: jsontree.Value fields receive the tree,
// interface fields its plain Go form.
func (s *state) raw(t reflect.Type, v jsontree.Value, path string) (reflect.Value, bool) {
	base := schema.Deref(t)
	if base == valueType {
		return box(t, reflect.ValueOf(v)), true
	}
	out := reflect.New(base).Elem()
	x := v.Interface()
	if x == nil {
		return box(t, out), true
	}
	xv := reflect.ValueOf(x)
	if !xv.Type().AssignableTo(base) {
		s.fail(path, CodeInvalidType, nil, map[string]string{"expected": base.String(), "got": v.Kind().String()})
		return reflect.Value{}, false
	}
	out.Set(xv)
	return box(t, out), true
}
