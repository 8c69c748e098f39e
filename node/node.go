// Package node implements the learned-index tree node: a linear model over
// a fixed slot array whose slots are tagged empty/leaf/child via a pair of
// packed bitmaps, guarded by an optimistic version lock.
//
// The field shape is adapted from alex-go/node/ModelNode.go (Level,
// LinearModel, Children) generalized from ALEX's separate ModelNode/DataNode
// split into LIPP's single unified node type carrying a tagged-bitmap slot
// array, per the node data model.
package node

import (
	"sync/atomic"
	"unsafe"

	"lippgo/bitset"
	"lippgo/linear_model"
	"lippgo/optlock"
	"lippgo/shared"
)

// Node is one learned-index tree node over key type K and value type V.
type Node[K shared.Number, V any] struct {
	model    linear_model.Model
	numItems int
	items    []item[K, V]
	bits     bitset.NoneChild

	size            atomic.Int64
	buildSize       int64 // set once at build/rebuild time, immutable otherwise
	numInserts      atomic.Int64
	numInsertToData atomic.Int64
	fixed           atomic.Bool
	isTwo           bool

	lock optlock.Lock
}

// Predict returns the clamped slot index key maps to under n's model.
func Predict[K shared.Number, V any](n *Node[K, V], key K) int {
	return linear_model.Predict(n.model, key, n.numItems)
}

func (n *Node[K, V]) NumItems() int   { return n.numItems }
func (n *Node[K, V]) Size() int64     { return n.size.Load() }
func (n *Node[K, V]) BuildSize() int64 { return n.buildSize }
func (n *Node[K, V]) IsFixed() bool   { return n.fixed.Load() }
func (n *Node[K, V]) IsTwo() bool     { return n.isTwo }

func (n *Node[K, V]) NumInserts() int64      { return n.numInserts.Load() }
func (n *Node[K, V]) NumInsertToData() int64 { return n.numInsertToData.Load() }

func (n *Node[K, V]) AddSize(delta int64)            { n.size.Add(delta) }
func (n *Node[K, V]) AddNumInserts(delta int64)      { n.numInserts.Add(delta) }
func (n *Node[K, V]) AddNumInsertToData(delta int64) { n.numInsertToData.Add(delta) }

// Lock exposes the node's optimistic lock to the lookup/insert/adjust walks.
func (n *Node[K, V]) Lock() *optlock.Lock { return &n.lock }

// IsNone reports whether slot i is empty.
func (n *Node[K, V]) IsNone(i int) bool { return n.bits.IsNone(i) }

// IsChild reports whether slot i holds a child pointer.
func (n *Node[K, V]) IsChild(i int) bool { return n.bits.IsChild(i) }

// Child returns the child pointer stored at slot i. Caller must have
// checked IsChild(i) first.
func (n *Node[K, V]) Child(i int) *Node[K, V] { return n.items[i].child }

// Leaf returns the (key, value) datum stored at slot i. Caller must have
// checked that slot i is neither none nor a child.
func (n *Node[K, V]) Leaf(i int) (K, V) { return n.items[i].key, n.items[i].value }

// SetLeaf stores (key, value) at slot i and clears its none tag.
func (n *Node[K, V]) SetLeaf(i int, key K, value V) {
	n.items[i].key = key
	n.items[i].value = value
	n.bits.SetLeaf(i)
}

// PromoteToChild installs child at slot i and marks it a child slot.
func (n *Node[K, V]) PromoteToChild(i int, child *Node[K, V]) {
	n.items[i].child = child
	n.items[i].key = K(0)
	n.bits.SetChild(i)
}

// ReplaceChildPointer swaps the child pointer at an already-child-tagged
// slot, used by a rebuild to swing a parent's slot onto the freshly built
// replacement subtree without disturbing the slot's bitmap tag.
func (n *Node[K, V]) ReplaceChildPointer(i int, child *Node[K, V]) {
	n.items[i].child = child
}

// AllSlots iterates every non-empty slot in ascending order, invoking fn
// with the slot index.
func (n *Node[K, V]) AllSlots(fn func(i int)) {
	for i := 0; i < n.numItems; i++ {
		if !n.bits.IsNone(i) {
			fn(i)
		}
	}
}

// SizeBytes estimates this node's own footprint, optionally skipping
// recursion into children. Generalizes alex-go's Node.GetNodeSize, which
// only ever measured a single node since ALEX's children are homogeneous
// slices rather than a recursive tree of owned pointers.
func (n *Node[K, V]) SizeBytes(ignoreChild bool) uintptr {
	var slot item[K, V]
	total := uintptr(0)
	total += unsafe.Sizeof(*n)
	total += unsafe.Sizeof(slot) * uintptr(n.numItems)
	if !ignoreChild {
		for i := 0; i < n.numItems; i++ {
			if n.bits.IsChild(i) {
				total += n.items[i].child.SizeBytes(false)
			}
		}
	}
	return total
}
