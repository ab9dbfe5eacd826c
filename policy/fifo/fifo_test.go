package fifo

import (
	"testing"

	"github.com/gitHBDX/tiercache/policy"
)

// --- test doubles ---

type testNode[K comparable, V any] struct {
	k K
	v V
}

func (n *testNode[K, V]) Key() K    { return n.k }
func (n *testNode[K, V]) Value() *V { return &n.v }

type mockHooks[K comparable, V any] struct {
	pushFrontCnt   int
	moveToFrontCnt int
	removeCnt      int

	lastPush policy.Node[K, V]
}

func (h *mockHooks[K, V]) MoveToFront(policy.Node[K, V]) { h.moveToFrontCnt++ }
func (h *mockHooks[K, V]) PushFront(n policy.Node[K, V]) { h.pushFrontCnt++; h.lastPush = n }
func (h *mockHooks[K, V]) Remove(policy.Node[K, V])      { h.removeCnt++ }
func (h *mockHooks[K, V]) Back() policy.Node[K, V]       { return nil }
func (h *mockHooks[K, V]) Len() int                      { return 0 }

// --- tests ---

// OnAdd should push the node to the front and never propose an eviction.
func TestFIFO_OnAdd_PushFrontAndNoEvict(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string, int]{}
	p := New[string, int]().New(h) // shard-local policy

	n := &testNode[string, int]{k: "k1", v: 1}
	ev := p.OnAdd(n)

	if ev != nil {
		t.Fatalf("OnAdd must not propose an eviction, got %v", ev)
	}
	if h.pushFrontCnt != 1 || h.lastPush != n {
		t.Fatalf("OnAdd must PushFront exactly once for the added node")
	}
}

// OnGet and OnUpdate must never reorder the list: insertion order is the
// whole contract of FIFO.
func TestFIFO_HitsAndUpdatesDoNotPromote(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string, int]{}
	p := New[string, int]().New(h)

	n := &testNode[string, int]{k: "k1", v: 1}
	p.OnAdd(n)
	p.OnGet(n)
	p.OnGet(n)
	p.OnUpdate(n)

	if h.moveToFrontCnt != 0 {
		t.Fatalf("FIFO must not MoveToFront on hit/update, got %d calls", h.moveToFrontCnt)
	}
}

// OnRemove must not touch the list; the shard owns the deletion.
func TestFIFO_OnRemove_NoHookCalls(t *testing.T) {
	t.Parallel()

	h := &mockHooks[string, int]{}
	p := New[string, int]().New(h)

	n := &testNode[string, int]{k: "k1", v: 1}
	p.OnAdd(n)
	p.OnRemove(n)

	if h.removeCnt != 0 {
		t.Fatalf("FIFO OnRemove must be a pure notification, got %d Remove calls", h.removeCnt)
	}
}
