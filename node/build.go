package node

import (
	"lippgo/bitset"
	"lippgo/linear_model"
	"lippgo/optlock"
	"lippgo/shared"
)

// BuildNone allocates the 1-slot empty node used as the initial root.
func BuildNone[K shared.Number, V any]() *Node[K, V] {
	n := &Node[K, V]{
		numItems: 1,
		items:    make([]item[K, V], 1),
		bits:     bitset.NewAllNone(1),
	}
	return n
}

// BuildTwo builds (or recycles from pool) the 8-slot two-key node for
// k1/v1 and k2/v2, swapping so k1 < k2 first. Grounded on lipp.h's
// build_tree_two.
func BuildTwo[K shared.Number, V any](pool *TwoKeyPool[K, V], k1 K, v1 V, k2 K, v2 V) *Node[K, V] {
	if k1 > k2 {
		k1, v1, k2, v2 = k2, v2, k1, v1
	}

	n := pool.Get()
	if n == nil {
		n = &Node[K, V]{}
	}
	n.numItems = shared.KTwoKeyNodeSlots
	n.items = make([]item[K, V], shared.KTwoKeyNodeSlots)
	n.bits = bitset.NewAllNone(shared.KTwoKeyNodeSlots)
	n.isTwo = true
	n.buildSize = 2
	n.size.Store(2)
	n.numInserts.Store(0)
	n.numInsertToData.Store(0)
	n.fixed.Store(false)
	// A recycled node was retired obsolete; give it a fresh, unlocked version word.
	n.lock = optlock.Lock{}

	n.model = linear_model.FitTwo(k1, k2, n.numItems)

	pos1 := Predict[K, V](n, k1)
	pos2 := Predict[K, V](n, k2)
	n.SetLeaf(pos1, k1, v1)
	n.SetLeaf(pos2, k2, v2)

	return n
}

// BulkStats accumulates the FMCD fitter's success/fallback counters across
// an entire build_bulk call tree, surfaced via Index.Stats().
type BulkStats struct {
	FMCDSuccessTimes int64
	FMCDBrokenTimes  int64
}

// segment is one pending subrange of the iterative build_bulk stack,
// mirroring lipp.h's build_tree_bulk_fast/fmcd explicit std::stack<Segment>.
type segment[K shared.Number, V any] struct {
	begin, end int
	target     *Node[K, V]
}

// BuildBulk builds a subtree over the sorted, strictly-ascending keys/values
// using either the FMCD fitter or the three-point fast fitter, per useFMCD,
// with no left/right padding. Grounded on lipp.h's build_tree_bulk_fast /
// build_tree_bulk_fmcd, unified here since both share the same
// allocate-fit-distribute-recurse shape and differ only in how the
// top-level model of each node is fit.
func BuildBulk[K shared.Number, V any](keys []K, values []V, useFMCD bool, stats *BulkStats, pool *TwoKeyPool[K, V]) *Node[K, V] {
	return BuildBulkPadded(keys, values, useFMCD, 0, stats, pool)
}

// BuildBulkPadded is BuildBulk with the configurable left/right padding
// fraction applied to every node's model, per spec §6's BuildLRRemain
// config option; lipp.h recomputes lr_remains as size*BUILD_LR_REMAIN for
// every node it builds (root and every recursively-built child), so this
// reproduces that per-node recomputation rather than padding only the
// outermost fit.
func BuildBulkPadded[K shared.Number, V any](keys []K, values []V, useFMCD bool, buildLRRemain float64, stats *BulkStats, pool *TwoKeyPool[K, V]) *Node[K, V] {
	root := &Node[K, V]{}
	stack := []segment[K, V]{{begin: 0, end: len(keys), target: root}}

	for len(stack) > 0 {
		seg := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		begin, end, n := seg.begin, seg.end, seg.target
		size := end - begin

		if size == 2 {
			two := BuildTwo(pool, keys[begin], values[begin], keys[begin+1], values[begin+1])
			n.model = two.model
			n.numItems = two.numItems
			n.items = two.items
			n.bits = two.bits
			n.size.Store(two.size.Load())
			n.buildSize = two.buildSize
			n.numInserts.Store(two.numInserts.Load())
			n.numInsertToData.Store(two.numInsertToData.Load())
			n.fixed.Store(two.fixed.Load())
			n.isTwo = two.isTwo
			continue
		}

		segKeys := keys[begin:end]
		gapCnt := shared.BuildGapCnt(size)

		n.isTwo = false
		n.buildSize = int64(size)
		n.size.Store(int64(size))
		n.numInserts.Store(0)
		n.numInsertToData.Store(0)
		n.fixed.Store(false)

		var model linear_model.Model
		var numItems int
		if useFMCD {
			var success bool
			model, numItems, success = linear_model.FitFMCD(segKeys, gapCnt)
			if success {
				stats.FMCDSuccessTimes++
			} else {
				stats.FMCDBrokenTimes++
			}
		} else {
			model, numItems = linear_model.FitThreePoint(segKeys, gapCnt)
		}

		lrRemains := int(float64(size) * buildLRRemain)
		model.B += float64(lrRemains)
		numItems += 2 * lrRemains

		if size > shared.KFixedThreshold {
			n.fixed.Store(true)
		}

		n.model = model
		n.numItems = numItems
		n.items = make([]item[K, V], numItems)
		n.bits = bitset.NewAllNone(numItems)

		distribute(n, keys, values, begin, end, &stack)
	}

	return root
}

// distribute sweeps keys[begin:end] left to right, dropping runs of length
// one into their predicted slot as a leaf datum and pushing longer runs as
// a fresh child segment, per lipp.h's build_tree_bulk distribute loop.
func distribute[K shared.Number, V any](n *Node[K, V], keys []K, values []V, begin, end int, stack *[]segment[K, V]) {
	itemI := Predict[K, V](n, keys[begin])
	offset := begin
	for offset < end {
		next := offset + 1
		nextI := -1
		for next < end {
			nextI = Predict[K, V](n, keys[next])
			if nextI != itemI {
				break
			}
			next++
		}

		if next == offset+1 {
			n.SetLeaf(itemI, keys[offset], values[offset])
		} else {
			child := &Node[K, V]{}
			n.PromoteToChild(itemI, child)
			*stack = append(*stack, segment[K, V]{begin: offset, end: next, target: child})
		}

		if next >= end {
			break
		}
		itemI = nextI
		offset = next
	}
}

// ScanAndDestroy performs the DFS-in-key-order extraction scan_and_destroy
// needs before a rebuild: it appends every leaf datum reachable from n,
// in ascending key order, to keysOut/valuesOut, and invokes onNode for
// every visited node (including n itself) so the caller can schedule it
// for epoch-deferred deletion or two-key-pool recycling.
func ScanAndDestroy[K shared.Number, V any](n *Node[K, V], keysOut *[]K, valuesOut *[]V, onNode func(*Node[K, V])) {
	for i := 0; i < n.numItems; i++ {
		if n.bits.IsNone(i) {
			continue
		}
		if n.bits.IsChild(i) {
			ScanAndDestroy(n.items[i].child, keysOut, valuesOut, onNode)
		} else {
			*keysOut = append(*keysOut, n.items[i].key)
			*valuesOut = append(*valuesOut, n.items[i].value)
		}
	}
	onNode(n)
}
