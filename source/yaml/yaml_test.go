package yaml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/lightjson/jsontree"
)

func TestDecode_Scalars(t *testing.T) {
	v, err := Decode([]byte(`
name: demo
port: 8080
big: 18446744073709551615
ratio: 0.5
on: true
nothing: ~
quoted: "123"
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "port", "big", "ratio", "on", "nothing", "quoted"}, v.Keys())

	get := func(k string) jsontree.Value {
		e, ok := v.Get(k)
		require.True(t, ok, k)
		return e
	}
	s, _ := get("name").Str()
	assert.Equal(t, "demo", s)
	assert.Equal(t, "8080", get("port").Text())
	assert.Equal(t, "18446744073709551615", get("big").Text())
	assert.Equal(t, "0.5", get("ratio").Text())
	assert.Equal(t, jsontree.KindBool, get("on").Kind())
	assert.True(t, get("nothing").IsNull())
	assert.Equal(t, jsontree.KindString, get("quoted").Kind())
}

func TestDecode_Containers(t *testing.T) {
	v, err := Decode([]byte(`
base: &b
  x: 1
items:
  - *b
  - [1, 2]
`))
	require.NoError(t, err)
	items, _ := v.Get("items")
	elems, ok := items.Elems()
	require.True(t, ok)
	require.Len(t, elems, 2)
	x, ok := elems[0].Get("x")
	require.True(t, ok)
	assert.Equal(t, "1", x.Text())
	assert.Equal(t, 2, elems[1].Len())
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, ErrEmptyDocument)

	_, err = Decode([]byte("? [a, b]\n: c\n"))
	assert.Error(t, err)

	_, err = Decode([]byte("x: .inf\n"))
	assert.Error(t, err)

	_, err = Decode([]byte("x: [1, 2\n"))
	assert.Error(t, err)
}
