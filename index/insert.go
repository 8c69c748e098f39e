package index

import (
	"fmt"

	"lippgo/epoch"
	"lippgo/node"
	"lippgo/optlock"
	"lippgo/shared"
)

// pathStep records one node visited on the insertion path, plus which slot
// of its parent was used to reach it, so Adjust can rebuild any ancestor
// and swing the right slot pointer.
type pathStep[K shared.Number, V any] struct {
	n            *node.Node[K, V]
	parent       *node.Node[K, V]
	slotInParent int
}

// Insert places (key, value) in the index. Duplicate keys are not
// supported; behaviour is undefined if key is already present (§4.5).
func (idx *Index[K, V]) Insert(key K, value V) error {
	attempt := 0
	for {
		guard := idx.recl.Enter()
		restart := idx.insertOnce(guard, key, value)
		guard.Leave()
		if restart {
			optlock.Backoff(attempt)
			attempt++
			continue
		}
		return nil
	}
}

// InsertPair is the insert((key, value)) call form from §6.
func (idx *Index[K, V]) InsertPair(p shared.Pair[K, V]) error {
	return idx.Insert(p.Key, p.Value)
}

func (idx *Index[K, V]) insertOnce(guard *epoch.Guard, key K, value V) (restart bool) {
	var path [shared.MaxDepth]pathStep[K, V]
	depth := 0

	cur := idx.root.Load()
	version, ok := cur.Lock().ReadLockOrRestart()
	if !ok {
		return true
	}

	var parent *node.Node[K, V]
	parentSlot := -1

	for {
		if depth >= shared.MaxDepth {
			panic(fmt.Sprintf("lippgo: insertion path exceeded MaxDepth=%d", shared.MaxDepth))
		}
		path[depth] = pathStep[K, V]{n: cur, parent: parent, slotInParent: parentSlot}
		depth++

		cur.AddSize(1)
		cur.AddNumInserts(1)

		pos := node.Predict(cur, key)

		switch {
		case cur.IsChild(pos):
			child := cur.Child(pos)
			if !cur.Lock().CheckOrRestart(version) {
				return true
			}
			childVersion, ok := child.Lock().ReadLockOrRestart()
			if !ok {
				return true
			}
			parent = cur
			parentSlot = pos
			cur = child
			version = childVersion
			continue

		case cur.IsNone(pos):
			if !cur.Lock().UpgradeToWriteLockOrRestart(version) {
				return true
			}
			cur.SetLeaf(pos, key, value)
			cur.Lock().WriteUnlock()
			idx.bumpInsertToData(path[:depth])
			idx.adjust(guard, path[:depth])
			return false

		default: // leaf datum already at pos: promote to a two-key child
			if !cur.Lock().UpgradeToWriteLockOrRestart(version) {
				return true
			}
			existingKey, existingValue := cur.Leaf(pos)
			two := node.BuildTwo(idx.pool, existingKey, existingValue, key, value)
			cur.PromoteToChild(pos, two)
			cur.Lock().WriteUnlock()
			idx.bumpInsertToData(path[:depth])
			idx.adjust(guard, path[:depth])
			return false
		}
	}
}

func (idx *Index[K, V]) bumpInsertToData(path []pathStep[K, V]) {
	for _, step := range path {
		step.n.AddNumInsertToData(1)
	}
}
