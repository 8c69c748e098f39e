package index

import (
	"lippgo/epoch"
	"lippgo/node"
	"lippgo/optlock"
	"lippgo/shared"
)

// shouldRebuild is the adjust predicate of §4.7:
// !fixed && size >= 4*buildSize && size >= 64 && 10*numInsertToData >= numInserts.
func shouldRebuild[K shared.Number, V any](n *node.Node[K, V]) bool {
	if n.IsFixed() {
		return false
	}
	size := n.Size()
	if size < int64(shared.KRebuildMinSize) {
		return false
	}
	if size < int64(shared.KRebuildSizeFactor)*n.BuildSize() {
		return false
	}
	if int64(shared.KRebuildInsertRatioDenominator)*n.NumInsertToData() < n.NumInserts() {
		return false
	}
	return true
}

// adjust walks the recorded insertion path top-down and rebuilds the first
// node satisfying shouldRebuild; an ancestor rebuild subsumes its
// descendants so the walk stops there.
func (idx *Index[K, V]) adjust(guard *epoch.Guard, path []pathStep[K, V]) {
	for _, step := range path {
		if shouldRebuild(step.n) {
			idx.rebuild(guard, step)
			return
		}
	}
}

// rebuild performs the scan-and-destroy-then-bulk-rebuild procedure of
// §4.7. It is best-effort: if the node can't be write-locked right now
// (because another goroutine is concurrently writing or rebuilding it),
// the attempt is abandoned and reconsidered on a future insert, since
// adjust is a heuristic, not a correctness requirement.
func (idx *Index[K, V]) rebuild(guard *epoch.Guard, step pathStep[K, V]) {
	n := step.n
	if !n.Lock().WriteLockOrRestart() {
		return
	}

	var keys []K
	var values []V
	node.ScanAndDestroy(n, &keys, &values, func(visited *node.Node[K, V]) {
		idx.retireVisited(guard, visited, n)
	})

	var localStats node.BulkStats
	replacement := node.BuildBulkPadded(keys, values, idx.config.UseFMCD, idx.config.BuildLRRemain, &localStats, idx.pool)
	idx.mergeBulkStats(&localStats)
	idx.rebuildCount.Add(1)

	if step.parent == nil {
		idx.root.Store(replacement)
		n.Lock().WriteUnlockObsolete()
		return
	}

	idx.swingParentSlot(step.parent, step.slotInParent, replacement)
	n.Lock().WriteUnlockObsolete()
}

// retireVisited marks a node scanned out of a subtree being rebuilt as
// obsolete so any reader still holding a snapshot of it restarts, then
// either recycles it (two-key nodes) or hands it to the epoch reclaimer
// for deferred collection. The node being rebuilt itself (root) already
// holds the write lock rebuild took, so it is not re-locked here; its
// caller marks it obsolete directly once the swap is published.
func (idx *Index[K, V]) retireVisited(guard *epoch.Guard, visited, root *node.Node[K, V]) {
	if visited == root {
		if visited.IsTwo() {
			idx.pool.Put(visited)
		}
		return
	}

	attempt := 0
	for !visited.Lock().WriteLockOrRestart() {
		optlock.Backoff(attempt)
		attempt++
	}
	visited.Lock().WriteUnlockObsolete()

	if visited.IsTwo() {
		idx.pool.Put(visited)
		return
	}
	guard.Schedule(visited, func(any) {})
}

// swingParentSlot write-locks parent (retrying with back-off, since the
// rebuild's own descent already released its read lock on it) and replaces
// its child pointer at slot with replacement.
func (idx *Index[K, V]) swingParentSlot(parent *node.Node[K, V], slot int, replacement *node.Node[K, V]) {
	attempt := 0
	for !parent.Lock().WriteLockOrRestart() {
		optlock.Backoff(attempt)
		attempt++
	}
	parent.ReplaceChildPointer(slot, replacement)
	parent.Lock().WriteUnlock()
}
