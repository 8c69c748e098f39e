package bitset

import "testing"

func TestNewAllNoneStartsWithEverySlotEmpty(t *testing.T) {
	nc := NewAllNone(100)
	for i := 0; i < 100; i++ {
		if !nc.IsNone(i) {
			t.Fatalf("slot %d: expected empty on a freshly built bitset", i)
		}
		if nc.IsChild(i) {
			t.Fatalf("slot %d: expected not a child on a freshly built bitset", i)
		}
	}
	if nc.NoneCount() != 100 {
		t.Fatalf("expected NoneCount 100, got %d", nc.NoneCount())
	}
}

func TestSetLeafClearsNoneOnly(t *testing.T) {
	nc := NewAllNone(10)
	nc.SetLeaf(3)
	if nc.IsNone(3) {
		t.Fatal("expected slot 3 to no longer be empty")
	}
	if nc.IsChild(3) {
		t.Fatal("expected SetLeaf not to tag a slot as a child")
	}
}

func TestSetChildClearsNoneAndSetsChild(t *testing.T) {
	nc := NewAllNone(10)
	nc.SetChild(5)
	if nc.IsNone(5) {
		t.Fatal("expected slot 5 to no longer be empty")
	}
	if !nc.IsChild(5) {
		t.Fatal("expected slot 5 to be tagged a child")
	}
	if nc.ChildCount() != 1 {
		t.Fatalf("expected ChildCount 1, got %d", nc.ChildCount())
	}
}

func TestSetNoneReverts(t *testing.T) {
	nc := NewAllNone(10)
	nc.SetChild(2)
	nc.SetNone(2)
	if !nc.IsNone(2) {
		t.Fatal("expected slot 2 to be empty again")
	}
	if nc.IsChild(2) {
		t.Fatal("expected slot 2 to no longer be tagged a child")
	}
}
