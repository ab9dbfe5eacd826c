package cache

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/gitHBDX/tiercache/codec"
	"github.com/gitHBDX/tiercache/internal/singleflight"
	"github.com/gitHBDX/tiercache/internal/util"
	"github.com/gitHBDX/tiercache/policy/fifo"
	"github.com/gitHBDX/tiercache/store"
)

var (
	// ErrNoLoader is returned by GetOrLoad when no Loader was configured in Options.
	ErrNoLoader = errors.New("tiercache: no Loader provided")
	// ErrClosed is returned by write operations after Close.
	ErrClosed = errors.New("tiercache: cache is closed")

	// errColdMiss is the internal signal that the cold tier had nothing
	// usable for a key. It never escapes the package: callers of Get see
	// a plain (zero, false).
	errColdMiss = errors.New("tiercache: cold miss")
)

// tiered is the Cache implementation: a sharded in-memory hot tier over a
// durable cold store. All methods are safe for concurrent use.
type tiered[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	keyOf  func(K) string
	closed atomic.Bool

	opt Options[K, V]

	// cold coalesces concurrent cold-tier reads per key so a burst of Gets
	// for the same evicted key costs one disk read and one promotion.
	cold singleflight.Group[K, V]
	// load coalesces concurrent Loader calls in GetOrLoad.
	load singleflight.Group[K, V]
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil Metrics  -> NoopMetrics
//   - nil Policy   -> FIFO
//   - nil Codec    -> codec.JSON
//   - Shards <= 0  -> auto, rounded up to the next power of two
//
// A nil Options.Store yields a purely in-memory cache (no persistence,
// no promotion).
func New[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	if opt.Capacity <= 0 {
		panic("Capacity must be > 0")
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = fifo.New[K, V]()
	}
	if opt.Codec == nil {
		opt.Codec = codec.JSON[V]{}
	}
	if opt.KeyString == nil {
		opt.KeyString = util.KeyString[K]
	}

	// number of shards -> power of two
	sh := opt.Shards
	if sh <= 0 {
		sh = util.ReasonableShardCount()
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}
	// More shards than capacity would give every shard a rounded-up slice
	// and let total residency exceed Capacity. Halving keeps sh a power of two.
	for sh > opt.Capacity {
		sh >>= 1
	}

	cs := make([]*shard[K, V], sh)
	// Split capacity exactly: the first rem shards carry one extra slot, so
	// the per-shard capacities always sum to opt.Capacity.
	base, rem := opt.Capacity/sh, opt.Capacity%sh
	for i := 0; i < sh; i++ {
		perShardCap := base
		if i < rem {
			perShardCap++
		}
		cs[i] = newShard[K, V](perShardCap, sh, opt.Policy, opt)
	}

	// return pointer-to-impl as the interface (avoids unexported-return lint)
	return &tiered[K, V]{
		shards: cs,
		hash:   util.Fnv64a[K], // fast non-crypto hash for sharding
		keyOf:  opt.KeyString,  // stable cold-store key mapping
		opt:    opt,
	}
}

// ---- Cache[K,V] implementation ----

// Add inserts k→v only if absent in the hot tier, then writes through.
// The hot slot is reserved first (so the absence check is atomic) and rolled
// back if the cold write fails, keeping the hot ⊆ cold invariant.
func (c *tiered[K, V]) Add(k K, v V) (bool, error) {
	if c.closed.Load() {
		return false, ErrClosed
	}
	s := c.getShard(k)
	if !s.Add(k, v, c.defaultDeadline(), c.costOf(v)) {
		return false, nil
	}
	if err := c.writeCold(k, v, c.opt.DefaultTTL); err != nil {
		s.Remove(k)
		return false, err
	}
	return true, nil
}

// Set inserts or updates k→v with write-through, using DefaultTTL if set.
func (c *tiered[K, V]) Set(k K, v V) error {
	return c.SetWithTTL(k, v, c.opt.DefaultTTL)
}

// SetWithTTL inserts or updates k→v with a per-key TTL on both tiers.
// The cold tier is written first: if partialization, serialization, or the
// durable write fails, the error is returned and the hot tier is unchanged,
// so a resident hot entry always has a cold counterpart.
func (c *tiered[K, V]) SetWithTTL(k K, v V, ttl time.Duration) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if err := c.writeCold(k, v, ttl); err != nil {
		return err
	}
	c.getShard(k).Set(k, v, c.deadline(ttl), c.costOf(v))
	return nil
}

// Get returns the value for k and a presence flag. On a hot miss the cold
// tier is consulted and a usable entry is promoted into the hot tier.
// Any cold-tier failure degrades to a miss (reported via OnError).
func (c *tiered[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.get(context.Background(), k)
}

func (c *tiered[K, V]) get(ctx context.Context, k K) (V, bool) {
	if v, ok := c.getShard(k).Get(k); ok {
		return v, true
	}
	if c.opt.Store == nil {
		var zero V
		return zero, false
	}
	v, err := c.fromCold(ctx, k)
	if err != nil {
		var zero V
		return zero, false
	}
	return v, true
}

// Remove invalidates k in both tiers. This is the only path that destroys a
// cold entry. Returns true if the key was resident in the hot tier; a
// cold-tier delete failure is routed to OnError.
func (c *tiered[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	ok := c.getShard(k).Remove(k)
	if c.opt.Store != nil {
		if err := c.opt.Store.Delete(c.keyOf(k)); err != nil {
			c.reportError(k, fmt.Errorf("cold delete: %w", err))
		}
	}
	return ok
}

// Len returns the total number of resident hot-tier entries across all shards.
func (c *tiered[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

// Close marks the cache as closed and closes the cold store.
// Future operations are ignored (reads miss, writes return ErrClosed).
func (c *tiered[K, V]) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	if c.opt.Store != nil {
		return c.opt.Store.Close()
	}
	return nil
}

// GetOrLoad returns the value for k; on a miss in both tiers it loads via
// Options.Loader and writes the result through, coalescing concurrent loads
// for the same key (singleflight). If the loaded value cannot be persisted,
// the error is returned and nothing is cached.
func (c *tiered[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if c.closed.Load() {
		var zero V
		return zero, ErrClosed
	}
	// fast path: hot hit or cold promotion
	if v, ok := c.get(ctx, k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	// singleflight: exactly one real load for the key
	return c.load.Do(ctx, k, func() (V, error) {
		// double-check after flight join
		if v, ok := c.get(ctx, k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err != nil {
			var zero V
			return zero, err
		}
		if err := c.Set(k, v); err != nil {
			var zero V
			return zero, err
		}
		return v, nil
	})
}

// ---- tier plumbing ----

// writeCold partializes, serializes, and durably stores v under k.
// A nil Store makes this a no-op (in-memory mode).
func (c *tiered[K, V]) writeCold(k K, v V, ttl time.Duration) error {
	if c.opt.Store == nil {
		return nil
	}
	if c.opt.Partialize != nil {
		v = c.opt.Partialize(v)
	}
	key := c.keyOf(k)
	raw, err := c.opt.Codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("tiercache: marshal %q: %w", key, err)
	}
	if err := c.opt.Store.Put(key, raw, ttl); err != nil {
		return fmt.Errorf("tiercache: cold write %q: %w", key, err)
	}
	return nil
}

// fromCold reads and deserializes the cold entry for k and promotes it into
// the hot tier. Concurrent calls for the same key share one read. Absence,
// expiry, and decode failures all surface as errColdMiss; only genuine I/O
// and decode errors additionally reach OnError.
func (c *tiered[K, V]) fromCold(ctx context.Context, k K) (V, error) {
	return c.cold.Do(ctx, k, func() (V, error) {
		var zero V
		// double-check: a previous flight may have promoted the key already
		if v, ok := c.getShard(k).Get(k); ok {
			return v, nil
		}
		raw, err := c.opt.Store.Get(c.keyOf(k))
		if err != nil {
			c.opt.Metrics.ColdMiss()
			if !store.IsMiss(err) {
				c.reportError(k, fmt.Errorf("cold read: %w", err))
			}
			return zero, errColdMiss
		}
		var v V
		if err := c.opt.Codec.Unmarshal(raw, &v); err != nil {
			// Undecodable cold entries are treated as absent.
			c.opt.Metrics.ColdMiss()
			c.reportError(k, fmt.Errorf("cold decode: %w", err))
			return zero, errColdMiss
		}
		c.opt.Metrics.ColdHit()

		// Promote into the hot tier only; the cold entry already exists.
		// The promoted entry restarts its TTL from DefaultTTL — the cold
		// record still enforces its own original deadline.
		c.getShard(k).Set(k, v, c.defaultDeadline(), c.costOf(v))
		return v, nil
	})
}

func (c *tiered[K, V]) reportError(k K, err error) {
	if c.opt.OnError != nil {
		c.opt.OnError(k, err)
	}
}

// ---- helpers ----

// getShard picks a shard by hashing the key and masking with len-1.
// len(c.shards) is guaranteed to be a power of two.
func (c *tiered[K, V]) getShard(k K) *shard[K, V] {
	h := c.hash(k)
	idx := int(h) & (len(c.shards) - 1)
	return c.shards[idx]
}

// defaultDeadline returns an absolute deadline based on DefaultTTL.
func (c *tiered[K, V]) defaultDeadline() int64 {
	if c.opt.DefaultTTL <= 0 {
		return 0
	}
	return c.deadline(c.opt.DefaultTTL)
}

// deadline converts a relative TTL into an absolute UnixNano deadline.
// A non-positive ttl returns 0 (no expiration).
func (c *tiered[K, V]) deadline(ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	now := time.Now().UnixNano()
	if c.opt.Clock != nil {
		now = c.opt.Clock.NowUnixNano()
	}
	return now + int64(ttl)
}

// costOf computes the per-entry cost (clamped to int32 range).
func (c *tiered[K, V]) costOf(v V) int32 {
	if c.opt.Cost == nil {
		return 0
	}
	iv := c.opt.Cost(v)
	if iv < 0 {
		iv = 0
	}
	// clamp to int32 to avoid overflow
	if iv > math.MaxInt32 {
		iv = math.MaxInt32
	}
	return int32(iv)
}
