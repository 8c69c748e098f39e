package node

import (
	"sync"

	"lippgo/shared"
)

// TwoKeyPool recycles the 8-slot nodes build_two produces instead of
// letting them be garbage collected, mirroring lipp.h's pending_two pool.
// Unlike the original, which explicitly flags pending_two as not
// thread-safe, this pool is guarded by a mutex for the whole of its
// lifetime, resolving that open question the straightforward way: Go
// goroutines are cheap and numerous, so a thread-local pool with periodic
// merging (the original's other suggested fix) would not pay for itself.
type TwoKeyPool[K shared.Number, V any] struct {
	mu   sync.Mutex
	free []*Node[K, V]
}

// NewTwoKeyPool constructs an empty pool.
func NewTwoKeyPool[K shared.Number, V any]() *TwoKeyPool[K, V] {
	return &TwoKeyPool[K, V]{}
}

// Get returns a recycled node ready for reuse by build_two, or nil if the
// pool is empty.
func (p *TwoKeyPool[K, V]) Get() *Node[K, V] {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.free)
	if n == 0 {
		return nil
	}
	node := p.free[n-1]
	p.free = p.free[:n-1]
	return node
}

// Put recycles a two-key node that a rebuild's scan-and-destroy is retiring;
// a later build_two call may hand it out again through Get.
func (p *TwoKeyPool[K, V]) Put(node *Node[K, V]) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.free = append(p.free, node)
}
