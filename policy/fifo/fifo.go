// Package fifo implements the FIFO eviction policy, the tiered cache default.
//
// FIFO evicts strictly by insertion order: the list tail is always the
// oldest-inserted resident entry. Reads and in-place updates never reorder
// the list, so a frequently hit entry is still evicted when its turn comes.
// This is a deliberate property of the cache (hot entries always have a
// cold-tier counterpart to fall back to), not an approximation of LRU.
package fifo

import "github.com/gitHBDX/tiercache/policy"

// fifo keeps the shard list in pure insertion order.
// It delegates list manipulation to policy.Hooks provided by the shard.
type fifo[K comparable, V any] struct {
	h policy.Hooks[K, V]
}

type fifoPolicy[K comparable, V any] struct{}

// New returns a Policy factory that constructs per-shard FIFO instances.
func New[K comparable, V any]() policy.Policy[K, V] { return fifoPolicy[K, V]{} }

// New implements policy.Policy by binding shard hooks and returning
// a shard-local policy instance.
func (fifoPolicy[K, V]) New(h policy.Hooks[K, V]) policy.ShardPolicy[K, V] {
	return &fifo[K, V]{h: h}
}

// OnAdd places the new entry at the front. FIFO itself doesn't choose
// evictions; the shard enforces capacity/cost limits by trimming the tail,
// which under this policy is always the oldest insertion.
func (p *fifo[K, V]) OnAdd(n policy.Node[K, V]) (evict policy.Node[K, V]) {
	p.h.PushFront(n)
	return nil
}

// OnGet keeps the insertion order: hits never promote.
func (p *fifo[K, V]) OnGet(_ policy.Node[K, V]) {}

// OnUpdate keeps the insertion order: an in-place update is not a re-insert.
func (p *fifo[K, V]) OnUpdate(_ policy.Node[K, V]) {}

// OnRemove is a no-op (no policy-internal state to clean up).
func (p *fifo[K, V]) OnRemove(_ policy.Node[K, V]) {}
