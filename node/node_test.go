package node

import (
	"sort"
	"testing"
)

func TestBuildNoneIsEmpty(t *testing.T) {
	n := BuildNone[int, int]()
	if n.NumItems() != 1 {
		t.Fatalf("expected a single slot, got %d", n.NumItems())
	}
	if !n.IsNone(0) {
		t.Fatal("expected the sole slot to be empty")
	}
}

func TestBuildTwoPlacesBothKeysRetrievably(t *testing.T) {
	pool := NewTwoKeyPool[int, int]()
	n := BuildTwo(pool, 20, 200, 10, 100)

	if !n.IsTwo() {
		t.Fatal("expected a two-key node")
	}

	p10 := Predict[int, int](n, 10)
	p20 := Predict[int, int](n, 20)
	if n.IsNone(p10) || n.IsNone(p20) {
		t.Fatal("expected both keys to occupy non-empty slots")
	}
	k, v := n.Leaf(p10)
	if k != 10 || v != 100 {
		t.Fatalf("expected (10, 100) at predicted slot for key 10, got (%d, %d)", k, v)
	}
	k, v = n.Leaf(p20)
	if k != 20 || v != 200 {
		t.Fatalf("expected (20, 200) at predicted slot for key 20, got (%d, %d)", k, v)
	}
}

func TestTwoKeyPoolRecyclesNodes(t *testing.T) {
	pool := NewTwoKeyPool[int, int]()
	n := BuildTwo(pool, 1, 1, 2, 2)
	pool.Put(n)

	if got := pool.Get(); got != n {
		t.Fatal("expected Get to return the node just Put")
	}
	if got := pool.Get(); got != nil {
		t.Fatal("expected an empty pool to return nil")
	}
}

func TestBuildBulkRetrievesEveryKeyInAscendingScan(t *testing.T) {
	pool := NewTwoKeyPool[int, int]()
	keys := make([]int, 500)
	values := make([]int, 500)
	for i := range keys {
		keys[i] = i * 3
		values[i] = i
	}

	var stats BulkStats
	root := BuildBulk(keys, values, true, &stats, pool)

	var scannedKeys []int
	var scannedValues []int
	ScanAndDestroy(root, &scannedKeys, &scannedValues, func(*Node[int, int]) {})

	if len(scannedKeys) != len(keys) {
		t.Fatalf("expected %d keys recovered, got %d", len(keys), len(scannedKeys))
	}
	if !sort.IntsAreSorted(scannedKeys) {
		t.Fatal("expected scan-and-destroy to recover keys in ascending order")
	}
	for i, k := range scannedKeys {
		if k != keys[i] || scannedValues[i] != values[i] {
			t.Fatalf("mismatch at position %d: got (%d, %d) want (%d, %d)", i, k, scannedValues[i], keys[i], values[i])
		}
	}
}

func TestBuildBulkEveryKeyFindableByPredictDescend(t *testing.T) {
	pool := NewTwoKeyPool[int, int]()
	keys := make([]int, 1000)
	values := make([]int, 1000)
	for i := range keys {
		keys[i] = i*2 + 1
		values[i] = i
	}

	var stats BulkStats
	root := BuildBulk(keys, values, true, &stats, pool)

	for i, key := range keys {
		cur := root
		for {
			pos := Predict[int, int](cur, key)
			if cur.IsChild(pos) {
				cur = cur.Child(pos)
				continue
			}
			if cur.IsNone(pos) {
				t.Fatalf("key %d predicted to an empty slot", key)
			}
			k, v := cur.Leaf(pos)
			if k != key {
				t.Fatalf("key %d predicted to a slot holding key %d", key, k)
			}
			if v != values[i] {
				t.Fatalf("key %d: expected value %d, got %d", key, values[i], v)
			}
			break
		}
	}
}

func TestSizeBytesIgnoreChildOmitsChildren(t *testing.T) {
	pool := NewTwoKeyPool[int, int]()
	keys := make([]int, 300)
	values := make([]int, 300)
	for i := range keys {
		keys[i] = i
		values[i] = i
	}
	var stats BulkStats
	root := BuildBulk(keys, values, true, &stats, pool)

	withChildren := root.SizeBytes(false)
	withoutChildren := root.SizeBytes(true)
	if withChildren < withoutChildren {
		t.Fatalf("expected recursive size (%d) to be at least the shallow size (%d)", withChildren, withoutChildren)
	}
}
