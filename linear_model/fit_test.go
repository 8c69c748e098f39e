package linear_model

import "testing"

func TestFitTwoPredictsBothKeysToDistinctSlots(t *testing.T) {
	model := FitTwo(10, 20, 8)
	p1 := Predict(model, 10, 8)
	p2 := Predict(model, 20, 8)
	if p1 == p2 {
		t.Fatalf("expected distinct slots for the two keys, got %d for both", p1)
	}
	if p1 >= p2 {
		t.Fatalf("expected the smaller key to map before the larger one, got p1=%d p2=%d", p1, p2)
	}
}

func TestFitThreePointPreservesOrderOnSortedKeys(t *testing.T) {
	keys := make([]int, 100)
	for i := range keys {
		keys[i] = i * 7
	}
	model, numItems := FitThreePoint(keys, 1)
	if numItems != len(keys)*2 {
		t.Fatalf("expected numItems = n*(gapCnt+1) = %d, got %d", len(keys)*2, numItems)
	}
	prev := -1
	for _, k := range keys {
		pos := Predict(model, k, numItems)
		if pos < prev {
			t.Fatalf("expected monotonically non-decreasing slot mapping, key %d mapped to %d after %d", k, pos, prev)
		}
		prev = pos
	}
}

func TestFitFMCDNeverCollidesOnUniformKeysWhenSuccessful(t *testing.T) {
	keys := make([]int, 200)
	for i := range keys {
		keys[i] = i * 5
	}
	model, numItems, success := FitFMCD(keys, 1)
	if !success {
		t.Fatal("expected FMCD to succeed on uniformly spaced keys")
	}
	seen := make(map[int]bool, len(keys))
	for _, k := range keys {
		pos := Predict(model, k, numItems)
		if seen[pos] {
			t.Fatalf("FMCD guaranteed no collisions but key %d collided at slot %d", k, pos)
		}
		seen[pos] = true
	}
}

func TestFitFMCDFallsBackOnAllEqualKeys(t *testing.T) {
	keys := []int{5, 5, 5, 5, 5, 5}
	_, _, success := FitFMCD(keys, 1)
	if success {
		t.Fatal("expected FMCD to fall back to the three-point fit when every key is identical")
	}
}

func TestPredictClampsToValidRange(t *testing.T) {
	model := Model{A: 1e18, B: 0}
	if pos := Predict(model, 5, 10); pos != 9 {
		t.Fatalf("expected an overflowing prediction to clamp to numItems-1=9, got %d", pos)
	}
	model = Model{A: -1e18, B: 0}
	if pos := Predict(model, 5, 10); pos != 0 {
		t.Fatalf("expected a negative prediction to clamp to 0, got %d", pos)
	}
}
