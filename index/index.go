// Package index is the public facade of the learned index: New, Insert,
// At/AtUnsafe, Exists, BulkLoad, and the diagnostic SizeBytes/Verify/
// PrintStats/Stats surface.
//
// Grounded on alex-go/index/Index.go's facade shape (NewIndex, Insert,
// Find) generalized from ALEX's expand/split-downwards/split-sideways
// domain logic to this module's predict-descend/promote-to-two-key-child/
// adjust-rebuild domain logic.
package index

import (
	"sync/atomic"

	"lippgo/epoch"
	"lippgo/node"
	"lippgo/shared"
)

// Index is a concurrent, in-memory learned index over key type K and value
// type V.
type Index[K shared.Number, V any] struct {
	root atomic.Pointer[node.Node[K, V]]

	config Config
	pool   *node.TwoKeyPool[K, V]
	recl   *epoch.Reclaimer

	fmcdSuccessTimes atomic.Int64
	fmcdBrokenTimes  atomic.Int64
	rebuildCount     atomic.Int64
}

// New constructs an index with an empty root, per build_none.
func New[K shared.Number, V any](config Config) *Index[K, V] {
	idx := &Index[K, V]{
		config: config,
		pool:   node.NewTwoKeyPool[K, V](),
		recl:   epoch.NewReclaimer(),
	}
	idx.root.Store(node.BuildNone[K, V]())
	return idx
}

// IndexStats is a plain snapshot of the facade's running counters.
type IndexStats struct {
	FMCDSuccessTimes int64
	FMCDBrokenTimes  int64
	RebuildCount     int64
}

// Stats returns a snapshot of the index's diagnostic counters.
func (idx *Index[K, V]) Stats() IndexStats {
	return IndexStats{
		FMCDSuccessTimes: idx.fmcdSuccessTimes.Load(),
		FMCDBrokenTimes:  idx.fmcdBrokenTimes.Load(),
		RebuildCount:     idx.rebuildCount.Load(),
	}
}

func (idx *Index[K, V]) mergeBulkStats(s *node.BulkStats) {
	idx.fmcdSuccessTimes.Add(s.FMCDSuccessTimes)
	idx.fmcdBrokenTimes.Add(s.FMCDBrokenTimes)
}
