package arc

import (
	"strconv"
	"testing"
)

// A ghost hit on the recency half moves one unit of capacity toward it,
// taken from the frequency half; the sum never changes.
func TestARC_GhostHitShiftsCapacity(t *testing.T) {
	t.Parallel()

	c := New[int, string](2, 2)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c") // recency half full: evicts 1 into its ghost

	if !c.recent.ghost.drop(1) {
		t.Fatal("1 must be in the recency ghost after eviction")
	}
	c.recent.ghost.remember(1) // put it back for the real check

	c.Put(1, "a") // ghost hit: recency grows, frequency shrinks

	if got := c.recent.cap; got != 3 {
		t.Fatalf("recency capacity want 3, got %d", got)
	}
	if got := c.frequent.cap; got != 1 {
		t.Fatalf("frequency capacity want 1, got %d", got)
	}
	if v, ok := c.Get(1); !ok || v != "a" {
		t.Fatalf("1 must be resident after re-insert, got %q ok=%v", v, ok)
	}
}

// The capacity sum stays at twice the configured capacity across an
// arbitrary mixed workload.
func TestARC_CapacitySumInvariant(t *testing.T) {
	t.Parallel()

	const capacity = 4
	c := New[int, string](capacity, 2)
	for i := 0; i < 2_000; i++ {
		k := i % 37
		c.Put(k, strconv.Itoa(k))
		c.Get(i % 23)
		if sum := c.recent.cap + c.frequent.cap; sum != 2*capacity {
			t.Fatalf("op %d: capacity sum %d, want %d", i, sum, 2*capacity)
		}
	}
}

// An entry crossing the transform threshold is mirrored into the frequency
// half; the recency half still answers first.
func TestARC_PromotionMirrorsToFrequentHalf(t *testing.T) {
	t.Parallel()

	c := New[int, string](4, 2)
	c.Put(1, "a") // access count 1
	if n := c.frequent.len(); n != 0 {
		t.Fatalf("no promotion yet, frequent len %d", n)
	}

	c.Get(1) // access count 2 = threshold: mirrored
	if n := c.frequent.len(); n != 1 {
		t.Fatalf("entry must be mirrored on reaching the threshold, frequent len %d", n)
	}
	if v, ok := c.frequent.get(1); !ok || v != "a" {
		t.Fatalf("frequency half must hold the mirrored value, got %q ok=%v", v, ok)
	}
	if v, ok := c.Get(1); !ok || v != "a" {
		t.Fatalf("lookup after promotion, got %q ok=%v", v, ok)
	}
}

// put reports promotion eligibility, not whether an insert happened.
func TestArcLruPart_PutReportsPromotion(t *testing.T) {
	t.Parallel()

	p := newLruPart[string, int](4, 2)
	if p.put("k", 1) {
		t.Fatal("fresh insert has access count 1, below threshold 2")
	}
	if !p.put("k", 2) {
		t.Fatal("second put reaches the threshold and must report promotion")
	}
	if !p.put("k", 3) {
		t.Fatal("past the threshold put keeps reporting promotion")
	}
}

// decreaseCapacity evicts one victim when the part is full and refuses at
// zero.
func TestArcLruPart_DecreaseCapacity(t *testing.T) {
	t.Parallel()

	p := newLruPart[int, int](2, 2)
	p.put(1, 1)
	p.put(2, 2)

	if !p.decreaseCapacity() {
		t.Fatal("decrease from 2 must succeed")
	}
	if p.len() != 1 {
		t.Fatalf("a full part must evict one entry first, len %d", p.len())
	}
	if !p.decreaseCapacity() {
		t.Fatal("decrease from 1 must succeed")
	}
	if p.decreaseCapacity() {
		t.Fatal("decrease at 0 must be refused")
	}
}

// Victims of the frequency half land in its ghost as keys; re-adding the
// key drops the ghost record.
func TestArcLfuPart_EvictsToGhost(t *testing.T) {
	t.Parallel()

	p := newLfuPart[int, string](2)
	p.put(1, "a")
	p.put(2, "b")
	p.get(2) // 1 is now the minimum-frequency victim
	p.put(3, "c")

	if _, ok := p.get(1); ok {
		t.Fatal("1 must be evicted from main")
	}
	if !p.checkGhost(1) {
		t.Fatal("1 must be remembered in the ghost")
	}
	if p.checkGhost(1) {
		t.Fatal("checkGhost must consume the record")
	}

	p.put(4, "d") // evicts 3 (minimum frequency), ghosting its key
	p.put(3, "x") // re-insert: main and ghost must not hold 3 at once
	if p.ghost.drop(3) {
		t.Fatal("re-inserting a key must clear its ghost record")
	}
	if _, ok := p.get(3); !ok {
		t.Fatal("3 must be resident after re-insert")
	}
}

// Ghost lists stay bounded by the half's initial capacity.
func TestARC_GhostBounded(t *testing.T) {
	t.Parallel()

	const capacity = 3
	c := New[int, int](capacity, 2)
	for i := 0; i < 100; i++ {
		c.Put(i, i)
	}
	if n := c.recent.ghost.len(); n > capacity {
		t.Fatalf("recency ghost len %d exceeds %d", n, capacity)
	}
	if n := c.frequent.ghost.len(); n > capacity {
		t.Fatalf("frequency ghost len %d exceeds %d", n, capacity)
	}
}

// A zero-capacity ARC cache never stores anything.
func TestARC_ZeroCapacity(t *testing.T) {
	t.Parallel()

	c := New[int, int](0, 2)
	c.Put(1, 1)
	if _, ok := c.Get(1); ok {
		t.Fatal("Put on a zero-capacity cache must be a no-op")
	}
	if n := c.Len(); n != 0 {
		t.Fatalf("Len must be 0, got %d", n)
	}
}

// GetValue returns the zero value on a miss.
func TestARC_GetValue(t *testing.T) {
	t.Parallel()

	c := New[string, string](4, 2)
	if v := c.GetValue("absent"); v != "" {
		t.Fatalf("miss must return zero value, got %q", v)
	}
	c.Put("k", "v")
	if v := c.GetValue("k"); v != "v" {
		t.Fatalf("want v, got %q", v)
	}
}
