package cache

import (
	"context"
	"time"

	"github.com/gitHBDX/tiercache/codec"
	"github.com/gitHBDX/tiercache/policy"
	"github.com/gitHBDX/tiercache/store"
)

// EvictReason explains why a hot-tier entry was removed.
// Eviction never touches the cold tier: the durable entry stays behind
// and the key remains retrievable (in partialized form) via Get.
type EvictReason int

const (
	// EvictPolicy — removed by the active eviction policy (FIFO/LRU).
	EvictPolicy EvictReason = iota
	// EvictTTL — expired by TTL (lazy eviction on access).
	EvictTTL
	// EvictCapacity — removed to satisfy cost limits.
	EvictCapacity
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	// HotHit / HotMiss count hot-tier lookups.
	HotHit()
	HotMiss()
	// ColdHit counts successful promotions from the cold tier;
	// ColdMiss counts cold lookups that found nothing usable
	// (absent, expired, or undecodable).
	ColdHit()
	ColdMiss()
	Evict(reason EvictReason)
	Size(entries int, cost int64)
}

// Clock provides time in UnixNano; useful for deterministic tests.
type Clock interface{ NowUnixNano() int64 }

// Options configures the cache behavior. Zero values are safe;
// sane defaults are applied in New():
//   - nil Policy   => FIFO
//   - nil Codec    => codec.JSON
//   - Shards <= 0  => auto (rounded up to power of two)
//   - nil Metrics  => NoopMetrics
//
// A nil Store degrades the cache to a purely in-memory FIFO cache:
// nothing is persisted and evicted entries are gone.
type Options[K comparable, V any] struct {
	// Capacity is the hot-tier entry count limit. It is split across the
	// shards, so per-shard headroom can be smaller than Capacity but the
	// shard capacities always sum to it.
	Capacity int

	// Shards defines the number of hot-tier shards. If 0, an automatic
	// value is chosen (≈ 2*GOMAXPROCS) and rounded to the next power of two.
	// The effective count is capped so that it never exceeds Capacity.
	Shards int

	// Policy is the pluggable hot-tier eviction policy; nil => FIFO.
	// Note that the write-through invariant makes FIFO safe here: an
	// evicted entry is still retrievable from the cold tier.
	Policy policy.Policy[K, V]

	// Store is the cold tier. The cache takes ownership and closes it
	// in Close. Nil disables the cold tier entirely.
	Store store.Store

	// Codec serializes values for the cold tier; nil => codec.JSON[V].
	Codec codec.Codec[V]

	// Partialize reduces a value before cold serialization (down-sampling,
	// precision reduction, dropping derived fields). It runs on every
	// write-through, never on promotion reads, so a Get served from the
	// cold tier returns the partialized form. Nil means values are stored
	// exactly as written.
	Partialize func(v V) V

	// KeyString maps a key to its stable cold-store key.
	// Nil => a built-in mapping for string/[]byte/integer/Stringer keys
	// (which panics on other types).
	KeyString func(k K) string

	// DefaultTTL applies to Add/Set when per-key TTL is not provided
	// (0 = no TTL). The same TTL governs both tiers.
	DefaultTTL time.Duration

	// Cost-based limiting of the hot tier (e.g., bytes). If Cost is
	// non-nil and MaxCost > 0, shards evict until both entry count and
	// total cost limits are satisfied.
	Cost    func(v V) int // nil = all entries have equal cost (0)
	MaxCost int64         // total cost limit; 0 disables cost limiting

	// Loader fetches a value absent from both tiers. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called on hot-tier eviction under the shard lock;
	// keep callbacks lightweight.
	OnEvict func(k K, v V, reason EvictReason)

	// OnError receives cold-tier failures that the cache converts into
	// misses (I/O errors on read, undecodable entries, failed deletes).
	// Write-path failures are returned to the caller instead.
	OnError func(k K, err error)

	Metrics Metrics

	// Clock allows overriding the hot-tier time source (tests).
	// Nil => time.Now(). The cold store has its own Now option.
	Clock Clock
}
