// Package lruk implements an LRU-K admission filter in front of an LRU
// cache.
//
// Keys are admitted to the main cache only after K observations. Until then
// they live in a bounded history cache of observation counts, so keys seen
// rarely are forgotten rather than tracked forever. Both Get and Put record
// an observation; admission itself happens on a Put once the count has
// reached K, because only a Put carries the value to admit. A Put on a key
// that is already resident overwrites directly and leaves history alone.
package lruk

import (
	"sync"

	"github.com/IvanBrykalov/policycache/policy/lru"
)

// Cache composes a main LRU with a history LRU of observation counts under
// one coordinator lock. All methods are safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	k       int
	main    *lru.Cache[K, V]
	history *lru.Cache[K, int] // key -> observations so far
}

// New constructs an LRU-K cache. k is the observation count required for
// admission; values < 1 are treated as 1 (admit on first Put).
func New[K comparable, V any](mainCapacity, historyCapacity, k int) *Cache[K, V] {
	if k < 1 {
		k = 1
	}
	return &Cache[K, V]{
		k:       k,
		main:    lru.New[K, V](mainCapacity),
		history: lru.New[K, int](historyCapacity),
	}
}

// Put records an observation of key and admits it to the main cache once
// the count reaches K. Resident keys are overwritten in place.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.main.Get(key); ok {
		c.main.Put(key, value)
		return
	}

	n, _ := c.history.Get(key)
	n++
	if n >= c.k {
		c.history.Remove(key)
		c.main.Put(key, value)
		return
	}
	c.history.Put(key, n)
}

// Get returns the value for key when it has been admitted. A miss on a
// pending key still counts as an observation.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.main.Get(key); ok {
		return v, true
	}

	n, _ := c.history.Get(key)
	c.history.Put(key, n+1)
	var zero V
	return zero, false
}

// GetValue returns the value for key, or the zero value on a miss.
func (c *Cache[K, V]) GetValue(key K) V {
	v, _ := c.Get(key)
	return v
}

// Len returns the number of admitted entries. Pending keys in history do
// not count.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.main.Len()
}
