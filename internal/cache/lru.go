// Package cache memoizes bound records under a byte budget.
package cache

import (
	"container/list"
	"reflect"
	"sync"
)

// DefaultCapacity is the default budget in estimated bytes of retained values.
const DefaultCapacity int64 = 512 << 10

// Key identifies a bound result: the target record type plus the digest of
// the input text. Keying on the type keeps two schemas bound from identical
// text apart.
type Key struct {
	Type   reflect.Type
	Digest string
}

// Entry is what the binder stores per key. Value is the *T returned to the
// caller; Issues carries whatever the binding reported.
type Entry struct {
	Value  any
	Issues any
}

// CostFunc estimates the retained size of an entry in bytes.
type CostFunc func(Entry) int64

// EvictFunc observes entries leaving the cache through eviction.
type EvictFunc func(Key, Entry)

type item struct {
	key   Key
	entry Entry
	cost  int64
}

// LRU is a least-recently-used cache bounded by the summed cost of its
// entries. All operations are serialized by one mutex.
type LRU struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	ll       *list.List
	items    map[Key]*list.Element
	cost     CostFunc
	onEvict  EvictFunc
}

// Option configures an LRU.
type Option func(*LRU)

// WithCost replaces the default cost estimator (EstimateEntry).
func WithCost(fn CostFunc) Option {
	return func(c *LRU) {
		if fn != nil {
			c.cost = fn
		}
	}
}

// WithFixedCost charges every entry the same cost.
func WithFixedCost(n int64) Option {
	return func(c *LRU) {
		if n > 0 {
			c.cost = func(Entry) int64 { return n }
		}
	}
}

// WithEvict registers an eviction observer. It runs with the cache lock held
// and must not call back into the cache.
func WithEvict(fn EvictFunc) Option {
	return func(c *LRU) { c.onEvict = fn }
}

// New returns an LRU with the given capacity in estimated bytes. A
// non-positive capacity selects DefaultCapacity.
func New(capacity int64, opts ...Option) *LRU {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &LRU{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[Key]*list.Element),
		cost:     EstimateEntry,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the entry for key and marks it most recently used.
func (c *LRU) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return Entry{}, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*item).entry, true
}

// Put stores entry under key, replacing any previous entry, then evicts
// least recently used entries until the budget holds. An entry costing more
// than the whole capacity is evicted right away.
func (c *LRU) Put(key Key, entry Entry) {
	cost := c.cost(entry)
	if cost < 1 {
		cost = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		it := el.Value.(*item)
		c.size += cost - it.cost
		it.entry, it.cost = entry, cost
		c.ll.MoveToFront(el)
	} else {
		c.items[key] = c.ll.PushFront(&item{key: key, entry: entry, cost: cost})
		c.size += cost
	}
	c.trim()
}

// Remove drops key if present.
func (c *LRU) Remove(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return false
	}
	c.unlink(el)
	return true
}

// Clear drops every entry. Eviction observers are not notified.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[Key]*list.Element)
	c.size = 0
}

// Len returns the number of entries.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Size returns the summed cost of all entries.
func (c *LRU) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Capacity returns the configured budget.
func (c *LRU) Capacity() int64 { return c.capacity }

func (c *LRU) trim() {
	for c.size > c.capacity {
		el := c.ll.Back()
		if el == nil {
			return
		}
		it := c.unlink(el)
		if c.onEvict != nil {
			c.onEvict(it.key, it.entry)
		}
	}
}

func (c *LRU) unlink(el *list.Element) *item {
	it := c.ll.Remove(el).(*item)
	delete(c.items, it.key)
	c.size -= it.cost
	return it
}
