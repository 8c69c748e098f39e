package index

import (
	"lippgo/node"
	"lippgo/shared"
)

// BulkLoad destroys the current tree and installs one built from pairs,
// which must be strictly ascending by key. Must not run concurrently with
// readers or writers on this index; that is the caller's responsibility,
// matching the "bulk_load is not concurrency-safe" carve-out in §5.
func (idx *Index[K, V]) BulkLoad(pairs []shared.Pair[K, V]) error {
	switch len(pairs) {
	case 0:
		idx.root.Store(node.BuildNone[K, V]())
		return nil

	case 1:
		idx.root.Store(node.BuildNone[K, V]())
		return idx.Insert(pairs[0].Key, pairs[0].Value)

	case 2:
		if !(pairs[0].Key < pairs[1].Key) {
			return shared.ErrUnsortedBulkLoad
		}
		two := node.BuildTwo(idx.pool, pairs[0].Key, pairs[0].Value, pairs[1].Key, pairs[1].Value)
		idx.root.Store(two)
		return nil

	default:
		keys := make([]K, len(pairs))
		values := make([]V, len(pairs))
		for i, p := range pairs {
			if i > 0 && !(pairs[i-1].Key < p.Key) {
				return shared.ErrUnsortedBulkLoad
			}
			keys[i] = p.Key
			values[i] = p.Value
		}

		var localStats node.BulkStats
		replacement := node.BuildBulkPadded(keys, values, idx.config.UseFMCD, idx.config.BuildLRRemain, &localStats, idx.pool)
		idx.mergeBulkStats(&localStats)
		idx.root.Store(replacement)
		return nil
	}
}
