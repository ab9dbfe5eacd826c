// Package cache provides a generic two-tier object cache: a bounded,
// sharded in-memory hot tier in front of a durable on-disk cold tier.
//
// # Design
//
//   - Tiers: every write goes through both tiers. The hot tier holds the
//     full value; the cold tier holds a partialized (optionally reduced)
//     serialization that survives restarts. A hot miss falls back to the
//     cold tier, deserializes, and promotes the entry back into memory.
//     Eviction only ever removes the hot copy.
//
//   - Eviction: FIFO by default — strictly insertion order, with no
//     reordering on hit or update. This is a deliberate choice rather than
//     an LRU approximation: because evicted entries remain retrievable from
//     the cold tier, evicting the oldest insertion bounds memory without
//     losing data. The policy is pluggable (see the policy package; an LRU
//     policy is provided as an alternative).
//
//   - Concurrency: the hot tier is split into shards, each protected by an
//     RWMutex. The shard count defaults to a power-of-two heuristic.
//     Cold-tier reads for the same key are coalesced, so a burst of Gets on
//     an evicted key costs a single disk read.
//
//   - Misses: absence is a normal state, returned as (zero, false).
//     Undecodable or expired cold entries count as misses too; only write
//     paths (Set/Add/SetWithTTL/GetOrLoad) return errors.
//
//   - Partialization: Options.Partialize reduces a value before it is
//     serialized for the cold tier (for example down-sampling large
//     matrices or dropping derived fields). After a hot-tier eviction a
//     later Get returns that partialized form — callers that need the exact
//     value must keep it hot or reload it.
//
//   - TTL: entries can carry per-item deadlines on both tiers. Hot-tier
//     expiration is lazy on read; the cold store enforces its own deadline
//     independently, so expiry survives restarts.
//
//   - Metrics: Options.Metrics receives HotHit/HotMiss/ColdHit/ColdMiss/
//     Evict/Size signals. NoopMetrics is the default; plug the Prometheus
//     adapter (metrics/prom) to export them.
//
// # Basic usage
//
//	cold, _ := bolt.Open("objects.db", bolt.Options{})
//	c := cache.New[string, Profile](cache.Options[string, Profile]{
//	    Capacity: 1024,
//	    Store:    cold,
//	})
//	defer c.Close() // also closes the store
//
//	if err := c.Set("p:42", profile); err != nil {
//	    // serialization or disk failure — nothing was cached
//	}
//	if p, ok := c.Get("p:42"); ok {
//	    _ = p
//	}
//
// # Partialized persistence
//
//	c := cache.New[string, Series](cache.Options[string, Series]{
//	    Capacity:   256,
//	    Store:      cold,
//	    Partialize: func(s Series) Series { return s.Downsample(1000) },
//	})
//
// # With GetOrLoad (singleflight)
//
//	c := cache.New[string, Series](cache.Options[string, Series]{
//	    Capacity: 256,
//	    Store:    cold,
//	    Loader: func(ctx context.Context, k string) (Series, error) {
//	        return readSeries(ctx, k) // e.g. recompute or fetch
//	    },
//	})
//	s, err := c.GetOrLoad(ctx, "series/7")
package cache
