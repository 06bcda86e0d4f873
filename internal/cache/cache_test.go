package cache

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bean struct {
	A string
	B int32
	C bool
	D []int64
	E *bean
	F []string
	X int `lightjson:"-"`
	y int
}

func key(d string) Key { return Key{Type: reflect.TypeOf(bean{}), Digest: d} }

func TestEstimate(t *testing.T) {
	b := &bean{A: "abc", B: 1, C: true, D: []int64{1, 2}, F: []string{"xy", "z"}, X: 9, y: 9}
	// 3 + 4 + 1 + 2*8 + 0 + 3
	assert.Equal(t, int64(27), Estimate(reflect.ValueOf(b)))

	b.E = &bean{A: "q"}
	assert.Equal(t, int64(27+1+4+1), Estimate(reflect.ValueOf(b)))
}

func TestEstimate_CycleCountedOnce(t *testing.T) {
	b := &bean{A: "ab"}
	b.E = b
	assert.Equal(t, int64(2+4+1), Estimate(reflect.ValueOf(b)))
}

func TestEstimateEntry_Nil(t *testing.T) {
	assert.Equal(t, int64(0), EstimateEntry(Entry{}))
	assert.Equal(t, int64(0), EstimateEntry(Entry{Value: (*bean)(nil)}))
}

func TestLRU_GetPut(t *testing.T) {
	c := New(100)
	_, ok := c.Get(key("a"))
	assert.False(t, ok)

	v := &bean{A: "a"}
	c.Put(key("a"), Entry{Value: v})
	e, ok := c.Get(key("a"))
	require.True(t, ok)
	assert.Same(t, v, e.Value)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(1+4+1), c.Size())
}

func TestLRU_KeyIncludesType(t *testing.T) {
	c := New(100)
	c.Put(key("d"), Entry{Value: &bean{}})
	_, ok := c.Get(Key{Type: reflect.TypeOf(struct{}{}), Digest: "d"})
	assert.False(t, ok)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	var evicted []string
	c := New(30, WithFixedCost(10), WithEvict(func(k Key, _ Entry) { evicted = append(evicted, k.Digest) }))
	c.Put(key("a"), Entry{})
	c.Put(key("b"), Entry{})
	c.Put(key("c"), Entry{})
	_, _ = c.Get(key("a")) // a is now most recent; b is oldest

	c.Put(key("d"), Entry{})
	assert.Equal(t, []string{"b"}, evicted)
	_, ok := c.Get(key("b"))
	assert.False(t, ok)
	for _, d := range []string{"a", "c", "d"} {
		_, ok := c.Get(key(d))
		assert.True(t, ok, d)
	}
	assert.Equal(t, int64(30), c.Size())
}

func TestLRU_OversizedEntryIsDropped(t *testing.T) {
	c := New(10, WithCost(func(Entry) int64 { return 11 }))
	c.Put(key("big"), Entry{})
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Size())
}

func TestLRU_ReplaceAdjustsSize(t *testing.T) {
	c := New(100)
	c.Put(key("a"), Entry{Value: &bean{A: "aaaa"}})
	c.Put(key("a"), Entry{Value: &bean{A: "a"}})
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, int64(1+4+1), c.Size())
}

func TestLRU_ZeroCostCountsAsOne(t *testing.T) {
	c := New(2, WithCost(func(Entry) int64 { return 0 }))
	c.Put(key("a"), Entry{})
	c.Put(key("b"), Entry{})
	c.Put(key("c"), Entry{})
	assert.Equal(t, 2, c.Len())
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := New(0)
	assert.Equal(t, DefaultCapacity, c.Capacity())
	c.Put(key("a"), Entry{})
	c.Put(key("b"), Entry{})
	assert.True(t, c.Remove(key("a")))
	assert.False(t, c.Remove(key("a")))
	c.Clear()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(0), c.Size())
}

func TestLRU_Concurrent(t *testing.T) {
	c := New(50, WithFixedCost(5))
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				k := key(string(rune('a' + (g+i)%26)))
				c.Put(k, Entry{})
				c.Get(k)
				if i%50 == 0 {
					c.Clear()
				}
			}
		}(g)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Size(), int64(50))
	assert.Equal(t, int64(c.Len())*5, c.Size())
}
