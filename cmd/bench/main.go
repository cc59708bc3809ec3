// Command bench measures hit rates of every replacement policy under three
// synthetic workloads: hot-set access, loop scanning, and a phase-shifted
// workload. Optionally exposes pprof and Prometheus metrics over HTTP.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof/* on DefaultServeMux
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/policycache/cache"
	pmet "github.com/IvanBrykalov/policycache/metrics/prom"
	"github.com/IvanBrykalov/policycache/policy/arc"
	"github.com/IvanBrykalov/policycache/policy/lfu"
	"github.com/IvanBrykalov/policycache/policy/lru"
	"github.com/IvanBrykalov/policycache/policy/lruk"
)

func main() {
	var (
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		hotOps   = flag.Int("hot_ops", 500_000, "operations for the hot-set scenario")
		loopOps  = flag.Int("loop_ops", 200_000, "operations for the loop-scan scenario")
		shiftOps = flag.Int("shift_ops", 80_000, "operations for the shifting-workload scenario")
		shards   = flag.Int("shards", 0, "shard count for the hashed fronts (0=auto)")
		httpAddr = flag.String("http", "", "serve Prometheus metrics and pprof at addr (e.g. :8080); empty = disabled")
	)
	flag.Parse()

	// Metrics for the hashed fronts, one adapter per policy label.
	var lruMetrics, lfuMetrics cache.Metrics
	if *httpAddr != "" {
		lruMetrics = pmet.New(nil, "policycache", "bench", prometheus.Labels{"policy": "hash_lru"})
		lfuMetrics = pmet.New(nil, "policycache", "bench", prometheus.Labels{"policy": "hash_lfu"})
		http.Handle("/metrics", promhttp.Handler())
		go func() {
			log.Printf("metrics: serving at %s", *httpAddr)
			log.Println(http.ListenAndServe(*httpAddr, nil))
		}()
	}

	specs := []policySpec{
		{"lru", func(c int) cache.Cache[int, string] {
			return lru.New[int, string](c)
		}},
		{"lfu", func(c int) cache.Cache[int, string] {
			return lfu.New[int, string](c, 0)
		}},
		{"arc", func(c int) cache.Cache[int, string] {
			return arc.New[int, string](c, 0)
		}},
		{"lru-k", func(c int) cache.Cache[int, string] {
			return lruk.New[int, string](c, 2*c, 2)
		}},
		{"hash-lru", func(c int) cache.Cache[int, string] {
			return cache.NewHashLru[int, string](cache.Options[int, string]{
				Capacity: c, Shards: *shards, Metrics: lruMetrics,
			})
		}},
		{"hash-lfu", func(c int) cache.Cache[int, string] {
			return cache.NewHashLfu[int, string](cache.Options[int, string]{
				Capacity: c, Shards: *shards, Metrics: lfuMetrics,
			})
		}},
	}

	scenarios := []scenario{
		{"hot-set access (70/30 over 20 hot / 5000 cold keys)", 50, *hotOps, hotSet},
		{"loop scan (60% sequential / 30% random / 10% out-of-range)", 50, *loopOps, loopScan},
		{"shifting workload (five phases over 1000 keys)", 4, *shiftOps, workloadShift},
	}

	for _, sc := range scenarios {
		runScenario(sc, specs, *seed)
	}

	if *httpAddr != "" {
		log.Printf("done; still serving metrics at %s (Ctrl-C to exit)", *httpAddr)
		select {}
	}
}

type policySpec struct {
	name  string
	build func(capacity int) cache.Cache[int, string]
}

type scenario struct {
	name     string
	capacity int
	ops      int
	run      func(c cache.Cache[int, string], r *rand.Rand, ops int) (hits, gets int)
}

// runScenario drives every policy through the scenario concurrently, each
// with its own cache and a seed derived from the base seed, then prints one
// hit-rate line per policy.
func runScenario(sc scenario, specs []policySpec, seed int64) {
	fmt.Printf("\n===== %s, capacity %d =====\n", sc.name, sc.capacity)

	rates := make([]float64, len(specs))
	var g errgroup.Group
	for i, ps := range specs {
		i, ps := i, ps
		g.Go(func() error {
			c := ps.build(sc.capacity)
			r := rand.New(rand.NewSource(seed + int64(i)*9973))
			hits, gets := sc.run(c, r, sc.ops)
			rates[i] = 100 * float64(hits) / float64(gets)
			return nil
		})
	}
	_ = g.Wait() // scenario runs never fail

	for i, ps := range specs {
		fmt.Printf("%-10s hit-rate %6.2f%%\n", ps.name, rates[i])
	}
}

func value(k int) string { return "value" + strconv.Itoa(k) }

// hotSet writes then reads a 70/30 hot/cold key mix: 70% of operations land
// on 20 hot keys, the rest spread over 5000 cold keys.
func hotSet(c cache.Cache[int, string], r *rand.Rand, ops int) (hits, gets int) {
	const (
		hotKeys  = 20
		coldKeys = 5000
	)
	key := func(op int) int {
		if op%100 < 70 {
			return r.Intn(hotKeys)
		}
		return hotKeys + r.Intn(coldKeys)
	}

	for op := 0; op < ops; op++ {
		k := key(op)
		c.Put(k, value(k))
	}
	for op := 0; op < ops; op++ {
		gets++
		if _, ok := c.Get(key(op)); ok {
			hits++
		}
	}
	return hits, gets
}

// loopScan fills a 500-key loop, then reads with 60% sequential scanning,
// 30% random in-range, 10% out-of-range.
func loopScan(c cache.Cache[int, string], r *rand.Rand, ops int) (hits, gets int) {
	const loopSize = 500

	for k := 0; k < loopSize; k++ {
		c.Put(k, "loop"+strconv.Itoa(k))
	}

	pos := 0
	for op := 0; op < ops; op++ {
		var k int
		switch {
		case op%100 < 60:
			k = pos
			pos = (pos + 1) % loopSize
		case op%100 < 90:
			k = r.Intn(loopSize)
		default:
			k = loopSize + r.Intn(loopSize)
		}
		gets++
		if _, ok := c.Get(k); ok {
			hits++
		}
	}
	return hits, gets
}

// workloadShift alternates five access modes (hot keys, wide random,
// sequential scan, clustered locality, mixed) over a 1000-key space, with a
// 30% chance of a write after every read.
func workloadShift(c cache.Cache[int, string], r *rand.Rand, ops int) (hits, gets int) {
	const (
		dataSize = 1000
		hotKeys  = 5
	)
	phase := ops / hotKeys

	for k := 0; k < dataSize; k++ {
		c.Put(k, "init"+strconv.Itoa(k))
	}

	for op := 0; op < ops; op++ {
		var k int
		switch {
		case op < phase: // hot keys
			k = r.Intn(hotKeys)
		case op < phase*2: // wide random
			k = r.Intn(dataSize)
		case op < phase*3: // sequential scan
			k = (op - phase*2) % 100
		case op < phase*4: // clustered locality
			locality := (op % dataSize) % 10
			k = locality*20 + r.Intn(20)
		default: // mixed
			switch x := r.Intn(100); {
			case x < 30:
				k = r.Intn(hotKeys)
			case x < 60:
				k = hotKeys + r.Intn(95)
			default:
				k = 100 + r.Intn(900)
			}
		}

		gets++
		if _, ok := c.Get(k); ok {
			hits++
		}
		if r.Intn(100) < 30 {
			c.Put(k, "new"+strconv.Itoa(k))
		}
	}
	return hits, gets
}
