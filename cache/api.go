package cache

import (
	"context"
	"time"
)

// Cache is a two-tier key/value cache: a bounded in-memory hot tier with
// FIFO eviction by default, backed by a durable cold tier holding a
// partialized serialization of every written value.
// All methods are safe for concurrent use by multiple goroutines.
//
// Hot-tier operations are amortized O(1): a map lookup plus constant-time
// list adjustments under a shard lock. Cold-tier reads and writes are
// ordinary blocking I/O on the configured store.
type Cache[K comparable, V any] interface {
	// Add inserts k→v only if k is not resident in the hot tier, writing
	// through to the cold tier. It uses the cache's DefaultTTL (if any).
	// Returns (false, nil) if the key already exists (no update is
	// performed) and (false, err) when persisting the value failed.
	Add(k K, v V) (bool, error)

	// Set inserts or updates k→v: the value is partialized, serialized,
	// written to the cold tier, and then installed in the hot tier
	// (evicting per the active policy when over capacity).
	// Serialization and cold-write failures are returned to the caller
	// and leave the hot tier unchanged.
	Set(k K, v V) error

	// SetWithTTL is Set with a per-key TTL (relative duration) applied to
	// both tiers. A non-positive ttl disables expiration for this entry.
	SetWithTTL(k K, v V, ttl time.Duration) error

	// Get returns the value for k and a presence flag. A hot-tier miss
	// falls back to the cold tier: the stored bytes are deserialized,
	// promoted into the hot tier, and returned. Absence in both tiers —
	// including undecodable or expired cold entries — is a normal miss,
	// never an error. Under the default FIFO policy a hit does not
	// reorder the eviction queue.
	Get(k K) (V, bool)

	// GetOrLoad returns the value for k, loading it via Options.Loader on
	// a miss in both tiers and writing the result through. Concurrent
	// loads for the same key are coalesced (singleflight).
	// If no Loader was configured, returns ErrNoLoader.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Remove invalidates k in both tiers. The cold entry is destroyed
	// only here, never by hot-tier eviction. Returns true if the key was
	// resident in the hot tier.
	Remove(k K) bool

	// Len returns the number of resident hot-tier entries across all
	// shards. Cold-only entries are not counted.
	Len() int

	// Close marks the cache closed and closes the cold store (if any).
	Close() error
}
