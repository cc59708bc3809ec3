package cache

import "context"

// Options configures a sharded front. Zero values are safe:
//   - Shards <= 0   => auto from host parallelism
//   - nil Metrics   => NoopMetrics
//   - MaxAvgFreq <= 0 => the LFU default (LFU shards only)
type Options[K comparable, V any] struct {
	// Capacity is the total entry budget, split evenly across shards
	// (ceil division). A capacity <= 0 yields a cache that stores nothing.
	Capacity int

	// Shards is the fanout. Every operation on a key is routed to
	// hash(key) mod Shards; shards never coordinate, so replacement is
	// per-shard rather than globally optimal.
	Shards int

	// MaxAvgFreq is the aging threshold passed to each LFU shard.
	// Ignored by NewHashLru.
	MaxAvgFreq int

	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// Metrics receives hit/miss signals from the front.
	Metrics Metrics
}
