package cdfquant

import (
	"fmt"
	"math"
)

// QuantizePMF converts one PMF row into a CDF row of length len(pmf)+1 whose
// deltas are the quantized symbol masses: cdf[0] = 0, cdf[len(pmf)] =
// 1<<precision, and every delta is at least 1. The input row is not
// modified.
//
// Entries must be finite and non-negative; they need not sum to exactly 1.
// Rows with more symbols than the normalizer has units cannot satisfy the
// minimum-width rule and are rejected with ErrInfeasiblePrecision.
func QuantizePMF(pmf []float64, precision int) ([]uint32, error) {
	if err := checkPrecision(precision); err != nil {
		return nil, err
	}
	if err := checkRow(pmf, precision); err != nil {
		return nil, err
	}
	cdf := make([]uint32, len(pmf)+1)
	if err := quantizeRow(pmf, precision, cdf); err != nil {
		return nil, err
	}
	return cdf, nil
}

func checkPrecision(precision int) error {
	if precision < MinPrecision || precision > MaxPrecision {
		return fmt.Errorf("precision %d not in [%d, %d]: %w", precision, MinPrecision, MaxPrecision, ErrPrecisionRange)
	}
	return nil
}

func checkRow(pmf []float64, precision int) error {
	if len(pmf) < 2 {
		return fmt.Errorf("%d symbols: %w", len(pmf), ErrRowTooShort)
	}
	if len(pmf) > int(Normalizer(precision)) {
		return fmt.Errorf("%d symbols exceed normalizer %d: %w", len(pmf), Normalizer(precision), ErrInfeasiblePrecision)
	}
	for i, p := range pmf {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return fmt.Errorf("entry %d is %v: %w", i, p, ErrInvalidProbability)
		}
	}
	return nil
}

// quantizeRow fills a pre-validated, pre-allocated CDF row in place. The
// mass counts live in cdf[1:] until the final prefix sum converts them to
// cumulative values, so no scratch allocation is needed beyond the queue.
func quantizeRow(pmf []float64, precision int, cdf []uint32) error {
	normalizer := int64(Normalizer(precision))
	mass := cdf[1:]

	// Initial rounding: nearest integer (ties to even), clamped to [1,
	// normalizer]. The lower clamp keeps a coding interval alive for
	// zero-probability symbols; the upper clamp bounds the correction work
	// for wildly unnormalized rows without changing the reachable optimum.
	// Clamping happens in float space: converting an out-of-range float64
	// to int64 is platform-defined.
	var sum int64
	for i, p := range pmf {
		scaled := math.RoundToEven(p * float64(normalizer))
		var v int64
		switch {
		case scaled < 1:
			v = 1
		case scaled > float64(normalizer):
			v = normalizer
		default:
			v = int64(scaled)
		}
		mass[i] = uint32(v)
		sum += v
	}

	switch {
	case sum > normalizer:
		if err := removeSurplus(pmf, mass, sum-normalizer); err != nil {
			return err
		}
	case sum < normalizer:
		addDeficit(pmf, mass, normalizer-sum)
	}

	cdf[0] = 0
	var acc uint32
	for i := range mass {
		acc += mass[i]
		mass[i] = acc
	}
	return nil
}

// removeSurplus takes excess units away one at a time, always from the
// symbol whose decrement costs the fewest bits at its current count. Symbols
// at mass 1 carry an infinite penalty; seeing one at the front with work
// remaining means every symbol is at minimum width, which the up-front
// symbol-count check normally rules out.
func removeSurplus(pmf []float64, mass []uint32, excess int64) error {
	queue := newCorrectionQueue(pmf, mass, decrementPenalty,
		func(a, b correctionItem) bool { return a.score < b.score })
	for ; excess > 0; excess-- {
		front := queue.front()
		if math.IsInf(front.score, 1) {
			return ErrInfeasiblePrecision
		}
		mass[front.index]--
		front.score = decrementPenalty(front.weight, mass[front.index])
		queue.siftFront()
	}
	return nil
}

// addDeficit hands out missing units one at a time, always to the symbol
// whose increment saves the most bits at its current count. Every mass is
// already at least 1, so gains stay finite and the loop cannot fail.
func addDeficit(pmf []float64, mass []uint32, missing int64) {
	queue := newCorrectionQueue(pmf, mass, incrementGain,
		func(a, b correctionItem) bool { return a.score > b.score })
	for ; missing > 0; missing-- {
		front := queue.front()
		mass[front.index]++
		front.score = incrementGain(front.weight, mass[front.index])
		queue.siftFront()
	}
}
