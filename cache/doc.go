// Package cache defines the uniform contract for this module's bounded
// in-memory caches and provides the sharded front built on top of it.
//
// Design
//
//   - Contract: Cache[K, V] is three lookup/insertion operations (Put,
//     Get with a presence flag, GetValue returning the zero value on a
//     miss) plus Len. Every policy in policy/... implements it: LRU, LFU
//     with frequency aging, ARC, and the LRU-K admission filter.
//
//   - Concurrency: each cache instance is internally synchronised by a
//     single exclusive lock covering its entire mutable state; operations
//     are short critical sections that never suspend. Operations on one
//     instance are linearisable. Composite caches (ARC, LRU-K) hold one
//     coordinator lock and treat their parts as plain data.
//
//   - Sharding: NewHashLru/NewHashLfu split a total capacity across
//     independent shards selected by FNV-1a key hash. Shards do not
//     coordinate, so replacement is per-shard rather than globally
//     optimal — the trade-off is reduced lock contention.
//
//   - Values are copies: nothing returned by Get references cache
//     internals. Eviction, overwrite, and removal each drop exactly one
//     logical entry.
//
//   - GetOrLoad: the sharded front can coalesce concurrent loads for the
//     same key via singleflight. If no Loader is configured it returns
//     ErrNoLoader.
//
//   - Metrics: Options.Metrics receives Hit/Miss signals from the read
//     path and the resident entry count after each mutation. NoopMetrics
//     is the default; metrics/prom provides a Prometheus adapter.
//
// Basic usage
//
//	c := lru.New[string, []byte](10_000)
//	c.Put("a", []byte("1"))
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value
//	}
//	c.Remove("a")
//
// Sharded front
//
//	c := cache.NewHashLru[string, string](cache.Options[string, string]{
//	    Capacity: 50_000,
//	    Shards:   64,
//	})
//	c.Put("k", "v")
//	v := c.GetValue("k")
//
// Picking a policy
//
// LRU is the cheapest and right for recency-friendly workloads. LFU keeps
// frequent keys through scans at the price of frequency bookkeeping, with
// aging to keep counters bounded. ARC splits its budget between a recency
// half and a frequency half and re-balances them from ghost-list feedback,
// which makes it the robust choice under shifting workloads. LRU-K holds
// keys back until they have been seen K times, filtering one-shot traffic
// out of the main cache.
package cache
