package index

import (
	"fmt"
	"io"

	"lippgo/node"
	"lippgo/shared"
	"lippgo/stats"
)

// SizeBytes estimates the tree's in-memory footprint, per §4.9. ignoreChild
// restricts the estimate to the root node alone.
func (idx *Index[K, V]) SizeBytes(ignoreChild bool) uintptr {
	return idx.root.Load().SizeBytes(ignoreChild)
}

// Verify walks the whole tree under read locks and checks that an in-order
// traversal (by slot index, recursing into children) yields strictly
// ascending keys. It does not check the bitmap tags themselves (a slot
// marked empty is skipped whatever its child tag), the size counters, or
// that each leaf sits at its predicted slot. It returns shared.ErrVerifyFailed on the
// first violation found, or nil if none. Concurrent writers may cause a
// spurious restart, never a false violation.
func (idx *Index[K, V]) Verify() error {
	for {
		state := &verifyState[K]{}
		if verifyNode(idx.root.Load(), state) {
			if state.violated {
				return fmt.Errorf("%w: keys out of order under node", shared.ErrVerifyFailed)
			}
			return nil
		}
	}
}

type verifyState[K shared.Number] struct {
	prevKey  K
	havePrev bool
	violated bool
}

func verifyNode[K shared.Number, V any](n *node.Node[K, V], state *verifyState[K]) (ok bool) {
	version, locked := n.Lock().ReadLockOrRestart()
	if !locked {
		return false
	}

	for i := 0; i < n.NumItems(); i++ {
		if n.IsNone(i) {
			continue
		}
		if n.IsChild(i) {
			child := n.Child(i)
			if !n.Lock().CheckOrRestart(version) {
				return false
			}
			if !verifyNode(child, state) {
				return false
			}
			continue
		}

		key, _ := n.Leaf(i)
		if state.havePrev && !(state.prevKey < key) {
			state.violated = true
		}
		state.prevKey = key
		state.havePrev = true
	}

	return n.Lock().ReadUnlockOrRestart(version)
}

// PrintStats writes a one-line human-readable summary of the tree's shape
// and the facade's running build counters to w, grounded on lipp.h's
// print_stats (node/leaf counts, depth) generalized with the fanout-fill
// ratio this module tracks instead of ALEX's shift-cost estimate.
func (idx *Index[K, V]) PrintStats(w io.Writer) {
	depthAcc := &stats.DepthAccumulator{}
	fanoutAcc := &stats.FanoutAccumulator{}
	var nodeCount, leafCount int64

	for {
		nodeCount, leafCount = 0, 0
		depthAcc.Reset()
		fanoutAcc.Reset()
		if collectStats(idx.root.Load(), 0, &nodeCount, &leafCount, depthAcc, fanoutAcc) {
			break
		}
	}

	s := idx.Stats()
	fmt.Fprintf(w, "nodes=%d leaves=%d avg_depth=%.2f max_depth=%d avg_fanout=%.4f fmcd_success=%d fmcd_broken=%d rebuilds=%d\n",
		nodeCount, leafCount, depthAcc.GetStats(), depthAcc.Max(), fanoutAcc.GetStats(),
		s.FMCDSuccessTimes, s.FMCDBrokenTimes, s.RebuildCount)
}

func collectStats[K shared.Number, V any](n *node.Node[K, V], depth int, nodeCount, leafCount *int64, depthAcc *stats.DepthAccumulator, fanoutAcc *stats.FanoutAccumulator) (ok bool) {
	version, locked := n.Lock().ReadLockOrRestart()
	if !locked {
		return false
	}
	*nodeCount++

	leavesHere := 0
	for i := 0; i < n.NumItems(); i++ {
		if n.IsNone(i) {
			continue
		}
		if n.IsChild(i) {
			child := n.Child(i)
			if !n.Lock().CheckOrRestart(version) {
				return false
			}
			if !collectStats(child, depth+1, nodeCount, leafCount, depthAcc, fanoutAcc) {
				return false
			}
			continue
		}
		leavesHere++
		*leafCount++
		depthAcc.Accumulate(depth+1, 0)
	}
	fanoutAcc.Accumulate(leavesHere, n.NumItems())

	return n.Lock().ReadUnlockOrRestart(version)
}
