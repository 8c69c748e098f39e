// Package epoch implements the three-rotating-epoch memory reclaimer that
// guards node deletion: a node scheduled for deletion is not physically
// freed until every goroutine that could have observed it has left the
// epoch it was retired in.
//
// The generation-validated pointer idiom is grounded in
// hupe1980/vecgo/internal/arena, whose Arena tags every live block with a
// generation counter and spin-waits on a live refcount before advancing it
// in Free. This package generalizes that single-generation scheme into the
// spec's literal three-epoch rotation with per-epoch deferred free lists.
package epoch

import (
	"sync"
	"sync/atomic"
)

const numEpochs = 3

func nextEpoch(e uint64) uint64 { return (e + 1) % numEpochs }

type deferredFree struct {
	ptr     any
	deleter func(any)
}

type local struct {
	mu           sync.Mutex
	lastSeen     uint64
	freeLists    [numEpochs][]deferredFree
	sinceAdvance int
}

// Reclaimer coordinates epoch advancement and deferred deletion across all
// goroutines using a shared index.
type Reclaimer struct {
	global  atomic.Uint64
	readers [numEpochs]atomic.Int64

	pool sync.Pool
}

// NewReclaimer constructs a Reclaimer starting at epoch 0.
func NewReclaimer() *Reclaimer {
	r := &Reclaimer{}
	r.pool.New = func() any { return &local{} }
	return r
}

// Guard is the scoped token returned by Enter; callers must call Leave
// exactly once, typically via defer.
type Guard struct {
	r   *Reclaimer
	l   *local
	ep  uint64
}

// Enter publishes the global epoch into the calling goroutine's local slot
// and drains any deferred frees that are now safe to run.
func (r *Reclaimer) Enter() *Guard {
	l := r.acquireLocal()
	ep := r.global.Load()
	r.readers[ep].Add(1)

	l.mu.Lock()
	if l.lastSeen != ep {
		drained := l.freeLists[ep]
		l.freeLists[ep] = nil
		l.lastSeen = ep
		l.mu.Unlock()
		for _, d := range drained {
			d.deleter(d.ptr)
		}
	} else {
		l.mu.Unlock()
	}

	return &Guard{r: r, l: l, ep: ep}
}

// Leave restores the goroutine's local slot to "outside any critical
// section" and opportunistically tries to advance the global epoch.
func (g *Guard) Leave() {
	g.r.readers[g.ep].Add(-1)
	g.r.releaseLocal(g.l)
	g.r.tryAdvance(g.ep)
}

// Schedule appends ptr to the current epoch's local deferred-free list; it
// will be passed to deleter once two full epochs have elapsed.
func (g *Guard) Schedule(ptr any, deleter func(any)) {
	g.l.mu.Lock()
	g.l.freeLists[g.ep] = append(g.l.freeLists[g.ep], deferredFree{ptr: ptr, deleter: deleter})
	g.l.sinceAdvance++
	want := g.l.sinceAdvance >= 64
	if want {
		g.l.sinceAdvance = 0
	}
	g.l.mu.Unlock()
	if want {
		g.r.tryAdvance(g.ep)
	}
}

// tryAdvance CASes the global epoch forward iff no goroutine is still
// inside the previous epoch, i.e. no live reader remains in the epoch that
// would become "two epochs ago" once this advance completes.
func (r *Reclaimer) tryAdvance(observed uint64) {
	if r.global.Load() != observed {
		return
	}
	prev := (observed + numEpochs - 1) % numEpochs
	if r.readers[prev].Load() > 0 {
		return
	}
	r.global.CompareAndSwap(observed, nextEpoch(observed))
}

func (r *Reclaimer) acquireLocal() *local {
	return r.pool.Get().(*local)
}

func (r *Reclaimer) releaseLocal(l *local) {
	r.pool.Put(l)
}
