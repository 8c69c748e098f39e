package linear_model

import "lippgo/shared"

// FitTwo fits the 8-slot two-key node model: k1 and k2 (k1 < k2) are mapped
// to numItems/3 and 2*numItems/3 respectively. Grounded on lipp.h's
// build_tree_two model fit.
func FitTwo[K shared.Number](k1, k2 K, numItems int) Model {
	mid1Target := float64(numItems) / 3
	mid2Target := float64(numItems) * 2 / 3
	a := (mid2Target - mid1Target) / (float64(k2) - float64(k1))
	b := mid1Target - a*float64(k1)
	return Model{A: a, B: b}
}

// FitThreePoint is the "fast" bulk-build fitter: it anchors the model on
// the mid-edge keys of the left and right thirds of the input, mapping them
// to the centres of the left and right thirds of a slot array sized
// n*(gapCnt+1). Grounded on lipp.h's build_tree_bulk_fast.
func FitThreePoint[K shared.Number](keys []K, gapCnt int) (model Model, numItems int) {
	n := len(keys)
	mid1Pos := (n - 1) / 3
	mid2Pos := (n - 1) * 2 / 3

	mid1Key := (float64(keys[mid1Pos]) + float64(keys[mid1Pos+1])) / 2
	mid2Key := (float64(keys[mid2Pos]) + float64(keys[mid2Pos+1])) / 2

	gapWidth := gapCnt + 1
	numItems = n * gapWidth
	mid1Target := float64(mid1Pos*gapWidth + gapWidth/2)
	mid2Target := float64(mid2Pos*gapWidth + gapWidth/2)

	model.A = (mid2Target - mid1Target) / (mid2Key - mid1Key)
	model.B = mid1Target - model.A*mid1Key
	return model, numItems
}

// FitFMCD implements the Fastest Minimum Conflict Degree fitter: it finds
// the smallest shift D such that every D-apart pair of keys is spaced at
// least U apart in an array of size L = n*(gapCnt+1), guaranteeing no two
// keys collide on the same predicted slot. On failure (3*D > n) it falls
// back to the three-point fit, matching lipp.h's build_tree_bulk_fmcd.
//
// success reports which branch was taken, driving the caller's
// fmcdSuccessTimes/fmcdBrokenTimes counters (spec §4.6, scenario S3).
func FitFMCD[K shared.Number](keys []K, gapCnt int) (model Model, numItems int, success bool) {
	n := len(keys)
	l := n * (gapCnt + 1)

	d := 1
	u := fmcdU(keys, d, l)
	i := 0
	for i < n-1-d {
		for i+d < n && float64(keys[i+d]-keys[i]) >= u {
			i++
		}
		if i+d >= n {
			break
		}
		d++
		if d*3 > n {
			break
		}
		u = fmcdU(keys, d, l)
	}

	if d*3 <= n {
		a := 1.0 / u
		b := (float64(l) - a*(float64(keys[n-1-d])+float64(keys[d]))) / 2
		return Model{A: a, B: b}, l, true
	}

	model, numItems = FitThreePoint(keys, gapCnt)
	return model, numItems, false
}

func fmcdU[K shared.Number](keys []K, d, l int) float64 {
	return (float64(keys[len(keys)-1-d]) - float64(keys[d]))/float64(l-2) + 1e-6
}
