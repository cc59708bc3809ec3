package cache

import (
	"context"

	"github.com/IvanBrykalov/policycache/internal/singleflight"
	"github.com/IvanBrykalov/policycache/internal/util"
	"github.com/IvanBrykalov/policycache/policy/lfu"
	"github.com/IvanBrykalov/policycache/policy/lru"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errorsNew("cache: no Loader provided")

// lightweight local errors.New to avoid importing std 'errors' everywhere
func errorsNew(s string) error { return &strErr{s} }

type strErr struct{ s string }

func (e *strErr) Error() string { return e.s }

// remover is satisfied by shard policies that support explicit deletion.
type remover[K comparable] interface{ Remove(K) bool }

// purger is satisfied by shard policies that support wholesale reset.
type purger interface{ Purge() }

// shardStats holds one shard's tallies. Each counter occupies its own cache
// line, so goroutines hammering different shards never share one.
type shardStats struct {
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
}

// Sharded splits a total capacity across independent policy shards, each
// with its own lock, and routes every operation by key hash. There is no
// cross-shard coordination: replacement is per-shard, the trade-off being
// reduced lock contention under parallel load.
type Sharded[K comparable, V any] struct {
	shards []Cache[K, V]
	stats  []shardStats // same index as shards
	hash   func(K) uint64
	opt    Options[K, V]

	// reportSize is a no-op when no real Metrics backend is configured;
	// computing the fan-in Len on every write would be wasted work.
	noopMetrics bool

	// singleflight group coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]
}

// NewHashLru constructs a sharded front with an LRU shard per slot.
func NewHashLru[K comparable, V any](opt Options[K, V]) *Sharded[K, V] {
	return newSharded(opt, func(capacity int) Cache[K, V] {
		return lru.New[K, V](capacity)
	})
}

// NewHashLfu constructs a sharded front with an LFU shard per slot, each
// using opt.MaxAvgFreq as its aging threshold.
func NewHashLfu[K comparable, V any](opt Options[K, V]) *Sharded[K, V] {
	return newSharded(opt, func(capacity int) Cache[K, V] {
		return lfu.New[K, V](capacity, opt.MaxAvgFreq)
	})
}

func newSharded[K comparable, V any](opt Options[K, V], newShard func(int) Cache[K, V]) *Sharded[K, V] {
	noop := false
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
		noop = true
	} else if _, ok := opt.Metrics.(NoopMetrics); ok {
		noop = true
	}
	n := opt.Shards
	if n <= 0 {
		n = util.ReasonableShardCount()
	}
	perShard := (opt.Capacity + n - 1) / n // split capacity evenly (ceil)

	shards := make([]Cache[K, V], n)
	for i := range shards {
		shards[i] = newShard(perShard)
	}
	return &Sharded[K, V]{
		shards:      shards,
		stats:       make([]shardStats, n),
		hash:        util.Fnv64a[K],
		opt:         opt,
		noopMetrics: noop,
	}
}

// Put inserts or overwrites key→value in the owning shard.
func (c *Sharded[K, V]) Put(key K, value V) {
	c.shards[c.shardIndex(key)].Put(key, value)
	c.reportSize()
}

// Get returns the value for key from the owning shard, recording the
// hit/miss outcome on that shard's tallies.
func (c *Sharded[K, V]) Get(key K) (V, bool) {
	i := c.shardIndex(key)
	v, ok := c.shards[i].Get(key)
	if ok {
		c.stats[i].hits.Add(1)
		c.opt.Metrics.Hit()
	} else {
		c.stats[i].misses.Add(1)
		c.opt.Metrics.Miss()
	}
	return v, ok
}

// GetValue returns the value for key, or the zero value on a miss.
func (c *Sharded[K, V]) GetValue(key K) V {
	v, _ := c.Get(key)
	return v
}

// Remove deletes key from its shard when the shard policy supports explicit
// deletion (LRU shards do; LFU shards are purge-only and report false).
func (c *Sharded[K, V]) Remove(key K) bool {
	r, ok := c.shards[c.shardIndex(key)].(remover[K])
	if !ok || !r.Remove(key) {
		return false
	}
	c.reportSize()
	return true
}

// Purge resets every shard that supports it, keeping the front usable.
func (c *Sharded[K, V]) Purge() {
	for _, s := range c.shards {
		if p, ok := s.(purger); ok {
			p.Purge()
		}
	}
	c.reportSize()
}

// Len returns the total number of resident entries across all shards.
func (c *Sharded[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Stats returns the front's hit/miss tallies summed over all shards.
func (c *Sharded[K, V]) Stats() (hits, misses int64) {
	for i := range c.stats {
		hits += c.stats[i].hits.Load()
		misses += c.stats[i].misses.Load()
	}
	return hits, misses
}

// GetOrLoad returns the value for key, loading it via Options.Loader on a
// miss. Concurrent loads for the same key are coalesced, so the Loader runs
// at most once per flight. Returns ErrNoLoader when no Loader is configured.
func (c *Sharded[K, V]) GetOrLoad(ctx context.Context, key K) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, key, func() (V, error) {
		// double-check after flight join
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, key)
		if err == nil {
			c.Put(key, v)
		}
		return v, err
	})
}

// shardIndex picks the owning shard slot for key.
func (c *Sharded[K, V]) shardIndex(key K) int {
	return util.ShardIndex(c.hash(key), len(c.shards))
}

// reportSize pushes the total resident count to Metrics after a mutation.
// Skipped entirely for NoopMetrics: the Len fan-in takes every shard lock.
func (c *Sharded[K, V]) reportSize() {
	if c.noopMetrics {
		return
	}
	c.opt.Metrics.Size(c.Len())
}
