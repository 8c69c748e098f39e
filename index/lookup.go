package index

import (
	"lippgo/node"
	"lippgo/optlock"
)

// At is the strict exists_first lookup: it returns (zero, false) for an
// absent key rather than trusting a possibly-stale slot. This is the
// mandated public default, per the resolution of Open Question (a).
func (idx *Index[K, V]) At(key K) (V, bool) {
	return idx.lookup(key, true)
}

// AtUnsafe trusts the predicted slot without checking whether it is marked
// empty or whether its stored key matches. For an absent key it returns a
// meaningless value; only use it when the caller already knows the key is
// present.
func (idx *Index[K, V]) AtUnsafe(key K) V {
	v, _ := idx.lookup(key, false)
	return v
}

// Exists reports whether key is present.
func (idx *Index[K, V]) Exists(key K) bool {
	_, found := idx.lookup(key, true)
	return found
}

func (idx *Index[K, V]) lookup(key K, strict bool) (V, bool) {
	attempt := 0
	for {
		guard := idx.recl.Enter()
		value, found, restart := idx.lookupOnce(key, strict)
		guard.Leave()
		if restart {
			optlock.Backoff(attempt)
			attempt++
			continue
		}
		return value, found
	}
}

// lookupOnce implements the predict-then-descend walk of §4.4. strict=false
// implements the permissive AtUnsafe variant by skipping the none-slot
// check and the stored-key comparison.
func (idx *Index[K, V]) lookupOnce(key K, strict bool) (value V, found bool, restart bool) {
	cur := idx.root.Load()
	version, ok := cur.Lock().ReadLockOrRestart()
	if !ok {
		return value, false, true
	}

	for {
		pos := node.Predict(cur, key)

		if cur.IsChild(pos) {
			child := cur.Child(pos)
			if !cur.Lock().CheckOrRestart(version) {
				return value, false, true
			}
			childVersion, ok := child.Lock().ReadLockOrRestart()
			if !ok {
				return value, false, true
			}
			cur = child
			version = childVersion
			continue
		}

		if strict && cur.IsNone(pos) {
			if !cur.Lock().ReadUnlockOrRestart(version) {
				return value, false, true
			}
			return value, false, false
		}

		k, v := cur.Leaf(pos)
		if !cur.Lock().ReadUnlockOrRestart(version) {
			return value, false, true
		}
		if !strict {
			return v, true, false
		}
		if k == key {
			return v, true, false
		}
		return value, false, false
	}
}
