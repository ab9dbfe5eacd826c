package cache

import (
	"math/rand"
	"strconv"
	"sync/atomic"
	"testing"
)

// benchmarkMix exercises a read/write mix against a warm hot tier without a
// cold store, isolating the in-memory fast path. It uses parallel workers
// (RunParallel spawns GOMAXPROCS goroutines). String keys include
// strconv/concat costs and often allocate, which is fine for an end-to-end
// benchmark.
func benchmarkMix(b *testing.B, readsPct int) {
	c := New[string, string](Options[string, string]{
		Capacity: 100_000,
	})
	b.Cleanup(func() { _ = c.Close() })

	// Preload half the capacity to get a realistic hit-rate.
	for i := 0; i < 50_000; i++ {
		k := "k:" + strconv.Itoa(i)
		_ = c.Set(k, "v")
	}

	// Report per-op allocations for a rough idea where costs go.
	b.ReportAllocs()
	b.ResetTimer()

	var seed int64 = 1
	keyMask := (1 << 16) - 1 // hot keyspace (power of two for fast &-mask)

	b.RunParallel(func(pb *testing.PB) {
		// Independent RNG stream for each worker.
		r := rand.New(rand.NewSource(atomic.AddInt64(&seed, 1)))
		i := 0
		for pb.Next() {
			k := "k:" + strconv.Itoa(i&keyMask)
			if r.Intn(100) < readsPct {
				c.Get(k)
			} else {
				_ = c.Set(k, "v")
			}
			i++
		}
	})
}

func BenchmarkHotTier_90r10w(b *testing.B) { benchmarkMix(b, 90) }
func BenchmarkHotTier_50r50w(b *testing.B) { benchmarkMix(b, 50) }

// BenchmarkPromotion measures the cold → hot path: every read misses the
// hot tier (capacity 1) and promotes through the codec from an in-memory
// cold store, so the figure is codec + store overhead, not disk latency.
func BenchmarkPromotion(b *testing.B) {
	st := newMemStore()
	c := New[string, string](Options[string, string]{
		Capacity: 1,
		Shards:   1,
		Store:    st,
	})
	b.Cleanup(func() { _ = c.Close() })

	const keys = 1024
	for i := 0; i < keys; i++ {
		_ = c.Set("k:"+strconv.Itoa(i), "v")
	}

	b.ReportAllocs()
	b.ResetTimer()

	i := 0
	for n := 0; n < b.N; n++ {
		// Alternate between two keys so each Get evicts the other.
		c.Get("k:" + strconv.Itoa(i&1))
		i++
	}
}
