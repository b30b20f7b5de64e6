package cdfquant

import (
	"math"
	"sort"
)

// correctionItem tracks one symbol during the correction pass. It addresses
// the shared mass slice by row-local index and carries the symbol's original
// PMF value as a static importance weight; the cached score is the bit-cost
// delta of the next one-unit adjustment at the symbol's current count.
type correctionItem struct {
	index  int
	weight float64
	score  float64
}

// decrementPenalty is the bit cost of shrinking a count by one unit. A count
// of 1 must never shrink further, so its penalty is +Inf and it loses to any
// finite candidate.
func decrementPenalty(weight float64, v uint32) float64 {
	if v <= 1 {
		return math.Inf(1)
	}
	return weight * (math.Log2(float64(v)) - math.Log2(float64(v-1)))
}

// incrementGain is the bit saving of growing a count by one unit. A count of
// 0 must never grow into a phantom interval; it cannot occur after the
// clamp-to-1 rounding step, but the guard stays for robustness.
func incrementGain(weight float64, v uint32) float64 {
	if v < 1 {
		return math.Inf(-1)
	}
	return weight * (math.Log2(float64(v+1)) - math.Log2(float64(v)))
}

// correctionQueue keeps items ordered so that items[0] is always the best
// next adjustment. After the front item's score changes it is re-inserted by
// a linear scan: only one score moved, and it moves a short distance, so this
// beats re-sorting or a heap for realistic alphabet sizes.
type correctionQueue struct {
	items []correctionItem
	less  func(a, b correctionItem) bool
}

func newCorrectionQueue(weights []float64, mass []uint32, score func(weight float64, v uint32) float64, less func(a, b correctionItem) bool) correctionQueue {
	items := make([]correctionItem, len(mass))
	for i := range mass {
		items[i] = correctionItem{
			index:  i,
			weight: weights[i],
			score:  score(weights[i], mass[i]),
		}
	}
	sort.Slice(items, func(a, b int) bool { return less(items[a], items[b]) })
	return correctionQueue{items: items, less: less}
}

func (q *correctionQueue) front() *correctionItem {
	return &q.items[0]
}

// siftFront restores order after the front item's score was recomputed,
// shifting it right past every item that now outranks it. Equal scores keep
// insertion order; tie-breaks among equal candidates are not specified.
func (q *correctionQueue) siftFront() {
	front := q.items[0]
	j := 1
	for j < len(q.items) && !q.less(front, q.items[j]) {
		q.items[j-1] = q.items[j]
		j++
	}
	q.items[j-1] = front
}
