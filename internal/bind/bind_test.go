package bind

import (
	"encoding/json"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/lightjson/jsontree"
)

type scalars struct {
	I   int32
	L   int64
	U8  uint8
	B   bool
	F   float32
	D   float64
	S   string
	PI  *int
	PPS **string
}

type point struct {
	X, Y int
}

type shapes struct {
	Name    string
	Origin  point
	Corners []*point
	Grid    [][][]int
	Pair    [2]string
}

type loose struct {
	Any  interface{}
	Tree jsontree.Value
}

func obj(t *testing.T, kv ...any) jsontree.Value {
	t.Helper()
	var b jsontree.ObjectBuilder
	for i := 0; i < len(kv); i += 2 {
		b.Set(kv[i].(string), kv[i+1].(jsontree.Value))
	}
	return b.Build()
}

func num(s string) jsontree.Value { return jsontree.Number(json.Number(s)) }

func arr(elems ...jsontree.Value) jsontree.Value { return jsontree.Array(elems) }

func bindRecord[T any](in jsontree.Value) (*T, []Issue) {
	out := new(T)
	issues := Record(in, reflect.ValueOf(out).Elem(), zerolog.Nop())
	return out, issues
}

func codes(issues []Issue) map[string]string {
	m := make(map[string]string, len(issues))
	for _, is := range issues {
		m[is.Path] = is.Code
	}
	return m
}

func TestRecord_Scalars(t *testing.T) {
	in := obj(t,
		"I", num("42"),
		"L", num("9007199254740993"),
		"U8", jsontree.String("200"),
		"B", jsontree.String("true"),
		"F", num("1.5"),
		"D", jsontree.String("2.25"),
		"S", num("17"),
		"PI", num("-3"),
		"PPS", jsontree.String("deep"),
	)
	got, issues := bindRecord[scalars](in)
	require.Empty(t, issues)

	assert.Equal(t, int32(42), got.I)
	assert.Equal(t, int64(9007199254740993), got.L)
	assert.Equal(t, uint8(200), got.U8)
	assert.True(t, got.B)
	assert.Equal(t, float32(1.5), got.F)
	assert.Equal(t, 2.25, got.D)
	assert.Equal(t, "17", got.S)
	require.NotNil(t, got.PI)
	assert.Equal(t, -3, *got.PI)
	require.NotNil(t, got.PPS)
	require.NotNil(t, *got.PPS)
	assert.Equal(t, "deep", **got.PPS)
}

func TestRecord_FractionTruncates(t *testing.T) {
	in := obj(t, "I", num("7.9"), "L", num("-7.9"))
	got, issues := bindRecord[scalars](in)
	assert.Equal(t, int32(7), got.I)
	assert.Equal(t, int64(-7), got.L)
	assert.Equal(t, CodeRequired, codes(issues)["/B"])
}

func TestRecord_Overflow(t *testing.T) {
	in := obj(t,
		"I", num("2147483648"),
		"U8", num("-1"),
		"L", num("1e30"),
		"F", num("1e300"),
	)
	got, issues := bindRecord[scalars](in)
	c := codes(issues)
	assert.Equal(t, CodeOverflow, c["/I"])
	assert.Equal(t, CodeOverflow, c["/U8"])
	assert.Equal(t, CodeOverflow, c["/L"])
	assert.Equal(t, CodeOverflow, c["/F"])
	assert.Zero(t, got.I)
	assert.Zero(t, got.F)
}

func TestRecord_InvalidTypeKeepsBindingOthers(t *testing.T) {
	in := obj(t,
		"I", jsontree.String("abc"),
		"B", num("1"),
		"S", arr(),
		"D", jsontree.Bool(true),
		"L", num("5"),
	)
	got, issues := bindRecord[scalars](in)
	c := codes(issues)
	assert.Equal(t, CodeInvalidType, c["/I"])
	assert.Equal(t, CodeInvalidType, c["/B"])
	assert.Equal(t, CodeInvalidType, c["/S"])
	assert.Equal(t, CodeInvalidType, c["/D"])
	assert.Equal(t, int64(5), got.L)
	for _, is := range issues {
		assert.NotEmpty(t, is.Message)
	}
}

func TestRecord_BooleanStrings(t *testing.T) {
	for in, want := range map[string]bool{"true": true, "tRuE": true, " FALSE ": false, "False": false} {
		got, issues := bindRecord[scalars](obj(t, "B", jsontree.String(in)))
		assert.NotContains(t, codes(issues), "/B", in)
		assert.Equal(t, want, got.B, in)
	}
	for _, in := range []string{"1", "t", "yes", ""} {
		_, issues := bindRecord[scalars](obj(t, "B", jsontree.String(in)))
		assert.Equal(t, CodeInvalidType, codes(issues)["/B"], in)
	}
}

func TestRecord_Null(t *testing.T) {
	seven := 7
	in := obj(t, "PI", jsontree.Null(), "I", jsontree.Null())
	out := &scalars{PI: &seven, I: 9}
	issues := Record(in, reflect.ValueOf(out).Elem(), zerolog.Nop())
	assert.Nil(t, out.PI)
	assert.Equal(t, int32(9), out.I)
	assert.Equal(t, CodeInvalidType, codes(issues)["/I"])
}

func TestRecord_NestedAndSequences(t *testing.T) {
	in := obj(t,
		"Name", jsontree.String("box"),
		"Origin", obj(t, "X", num("1"), "Y", num("2")),
		"Corners", arr(
			obj(t, "X", num("0"), "Y", num("0")),
			jsontree.Null(),
			obj(t, "X", num("3"), "Y", num("4")),
		),
		"Grid", arr(
			arr(arr(num("1"), num("2")), arr()),
			arr(arr(num("3"))),
		),
		"Pair", arr(jsontree.String("a")),
	)
	got, issues := bindRecord[shapes](in)
	require.Empty(t, issues)

	assert.Equal(t, "box", got.Name)
	assert.Equal(t, point{1, 2}, got.Origin)
	require.Len(t, got.Corners, 3)
	assert.Equal(t, &point{0, 0}, got.Corners[0])
	assert.Nil(t, got.Corners[1])
	assert.Equal(t, &point{3, 4}, got.Corners[2])
	assert.Equal(t, [][][]int{{{1, 2}, {}}, {{3}}}, got.Grid)
	assert.Equal(t, [2]string{"a", ""}, got.Pair)
}

func TestRecord_SequenceFailures(t *testing.T) {
	in := obj(t,
		"Name", jsontree.String("x"),
		"Origin", arr(),
		"Corners", obj(t),
		"Grid", arr(arr(arr(num("1"), jsontree.String("no")))),
		"Pair", arr(jsontree.String("a"), jsontree.String("b"), jsontree.String("c")),
	)
	got, issues := bindRecord[shapes](in)
	c := codes(issues)
	assert.Equal(t, CodeInvalidType, c["/Origin"])
	assert.Equal(t, CodeInvalidType, c["/Corners"])
	assert.Equal(t, CodeInvalidType, c["/Grid/0/0/1"])
	assert.Equal(t, CodeTooLong, c["/Pair"])
	assert.Nil(t, got.Grid)
	assert.Equal(t, "x", got.Name)
}

func TestRecord_NestedIssuePath(t *testing.T) {
	in := obj(t, "Origin", obj(t, "X", jsontree.String("?"), "Y", num("1")))
	got, issues := bindRecord[shapes](in)
	c := codes(issues)
	assert.Equal(t, CodeInvalidType, c["/Origin/X"])
	assert.Equal(t, CodeRequired, c["/Name"])
	assert.Equal(t, 1, got.Origin.Y)
}

func TestRecord_Raw(t *testing.T) {
	in := obj(t,
		"Any", arr(num("1"), jsontree.String("two")),
		"Tree", jsontree.Null(),
	)
	got, issues := bindRecord[loose](in)
	require.Empty(t, issues)
	assert.Len(t, got.Any, 2)
	assert.True(t, got.Tree.IsNull())
}

func TestValue(t *testing.T) {
	v, issues, ok := Value(reflect.TypeOf([]float64{}), arr(num("1.5"), jsontree.String("2")), zerolog.Nop())
	require.True(t, ok)
	assert.Empty(t, issues)
	assert.Equal(t, []float64{1.5, 2}, v.Interface())

	_, issues, ok = Value(reflect.TypeOf(0), jsontree.String("x"), zerolog.Nop())
	assert.False(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, "/", issues[0].Path)
}

func TestValue_NotInstantiable(t *testing.T) {
	_, issues, ok := Value(reflect.TypeOf(map[string]int{}), obj(t), zerolog.Nop())
	assert.False(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeNotInstantiable, issues[0].Code)
}

func TestSetIntegerBounds(t *testing.T) {
	var u uint64
	require.NoError(t, setInteger(reflect.ValueOf(&u).Elem(), "18446744073709551615"))
	assert.Equal(t, uint64(math.MaxUint64), u)

	var i int64
	assert.Error(t, setInteger(reflect.ValueOf(&i).Elem(), "18446744073709551615"))
	assert.Error(t, setInteger(reflect.ValueOf(&i).Elem(), "nope"))
}
