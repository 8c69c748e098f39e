// Package bitset pairs the none/child slot-tag bitmaps a node needs on top
// of github.com/kelindar/bitmap's packed word-slice bitmap.
package bitset

import "github.com/kelindar/bitmap"

func words(numItems int) int {
	return (numItems + 63) / 64
}

// NoneChild holds the two parallel bitmaps a node uses to tag each slot as
// empty, a leaf datum, or a child pointer, per the invariant
// none[i] => !child[i].
type NoneChild struct {
	none  bitmap.Bitmap
	child bitmap.Bitmap
}

// NewAllNone allocates a NoneChild sized for numItems slots with every slot
// marked empty, matching build_bulk's "initialise none_bitmap all-ones,
// child_bitmap all-zeros".
func NewAllNone(numItems int) NoneChild {
	nc := NoneChild{
		none:  make(bitmap.Bitmap, words(numItems)),
		child: make(bitmap.Bitmap, words(numItems)),
	}
	for i := 0; i < numItems; i++ {
		nc.none.Set(uint32(i))
	}
	return nc
}

func (nc *NoneChild) IsNone(i int) bool  { return nc.none.Contains(uint32(i)) }
func (nc *NoneChild) IsChild(i int) bool { return nc.child.Contains(uint32(i)) }

// SetLeaf marks slot i as holding a leaf datum: clears none, leaves child
// clear.
func (nc *NoneChild) SetLeaf(i int) {
	nc.none.Remove(uint32(i))
}

// SetChild marks slot i as holding a child pointer: clears none, sets
// child.
func (nc *NoneChild) SetChild(i int) {
	nc.none.Remove(uint32(i))
	nc.child.Set(uint32(i))
}

// SetNone marks slot i empty again, clearing any child tag.
func (nc *NoneChild) SetNone(i int) {
	nc.none.Set(uint32(i))
	nc.child.Remove(uint32(i))
}

// NoneCount returns how many slots are currently empty.
func (nc *NoneChild) NoneCount() int { return nc.none.Count() }

// ChildCount returns how many slots currently hold a child pointer.
func (nc *NoneChild) ChildCount() int { return nc.child.Count() }
