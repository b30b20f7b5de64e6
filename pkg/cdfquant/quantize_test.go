package cdfquant

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func deltas(cdf []uint32) []uint32 {
	out := make([]uint32, len(cdf)-1)
	for i := range out {
		out[i] = cdf[i+1] - cdf[i]
	}
	return out
}

func checkInvariants(t *testing.T, pmf []float64, precision int, cdf []uint32) {
	t.Helper()
	if len(cdf) != len(pmf)+1 {
		t.Fatalf("cdf length: got %d, want %d", len(cdf), len(pmf)+1)
	}
	if cdf[0] != 0 {
		t.Fatalf("cdf[0]: got %d, want 0", cdf[0])
	}
	if cdf[len(cdf)-1] != Normalizer(precision) {
		t.Fatalf("cdf total: got %d, want %d", cdf[len(cdf)-1], Normalizer(precision))
	}
	for i := 1; i < len(cdf); i++ {
		if cdf[i] <= cdf[i-1] {
			t.Fatalf("cdf not strictly increasing at %d: %v", i, cdf)
		}
	}
}

func TestQuantizeHalfHalf(t *testing.T) {
	t.Parallel()

	cdf, err := QuantizePMF([]float64{0.5, 0.5}, 1)
	if err != nil {
		t.Fatalf("QuantizePMF: %v", err)
	}
	want := []uint32{0, 1, 2}
	for i := range want {
		if cdf[i] != want[i] {
			t.Fatalf("cdf: got %v, want %v", cdf, want)
		}
	}
}

func TestQuantizeStableOnExactInput(t *testing.T) {
	t.Parallel()

	// 4/16 + 4/16 + 8/16: the rounding lands exactly on the normalizer
	// with every mass >= 1, so no correction step may fire.
	cdf, err := QuantizePMF([]float64{0.25, 0.25, 0.5}, 4)
	if err != nil {
		t.Fatalf("QuantizePMF: %v", err)
	}
	want := []uint32{0, 4, 8, 16}
	for i := range want {
		if cdf[i] != want[i] {
			t.Fatalf("cdf: got %v, want %v", cdf, want)
		}
	}
}

func TestQuantizeSurplusSingleDecrement(t *testing.T) {
	t.Parallel()

	// Initial rounding at precision 4 gives masses [2, 2, 13] (sum 17),
	// so exactly one decrement runs. The decremented symbol must be one
	// with the lowest decrement penalty at the initial counts; the
	// penalties are recomputed here rather than asserting a fixed index.
	pmf := []float64{0.1, 0.1, 0.8}
	initial := []uint32{2, 2, 13}

	cdf, err := QuantizePMF(pmf, 4)
	if err != nil {
		t.Fatalf("QuantizePMF: %v", err)
	}
	checkInvariants(t, pmf, 4, cdf)

	mass := deltas(cdf)
	decremented := -1
	for i := range mass {
		switch mass[i] {
		case initial[i]:
		case initial[i] - 1:
			if decremented >= 0 {
				t.Fatalf("more than one decrement: initial %v, got %v", initial, mass)
			}
			decremented = i
		default:
			t.Fatalf("mass %d moved by more than one unit: initial %v, got %v", i, initial, mass)
		}
	}
	if decremented < 0 {
		t.Fatalf("no decrement applied: initial %v, got %v", initial, mass)
	}

	best := math.Inf(1)
	for i := range initial {
		if p := decrementPenalty(pmf[i], initial[i]); p < best {
			best = p
		}
	}
	if got := decrementPenalty(pmf[decremented], initial[decremented]); got != best {
		t.Fatalf("decremented symbol %d has penalty %v, cheapest is %v", decremented, got, best)
	}
}

func TestQuantizeDeficitSingleIncrement(t *testing.T) {
	t.Parallel()

	// Five symbols at 0.2 round to mass 3 each at precision 4 (sum 15),
	// so exactly one increment runs and every gain ties.
	pmf := []float64{0.2, 0.2, 0.2, 0.2, 0.2}
	cdf, err := QuantizePMF(pmf, 4)
	if err != nil {
		t.Fatalf("QuantizePMF: %v", err)
	}
	checkInvariants(t, pmf, 4, cdf)

	bumped := 0
	for _, m := range deltas(cdf) {
		switch m {
		case 3:
		case 4:
			bumped++
		default:
			t.Fatalf("unexpected mass %d", m)
		}
	}
	if bumped != 1 {
		t.Fatalf("expected exactly one increment, got %d", bumped)
	}
}

func TestQuantizeZeroProbabilityKeepsInterval(t *testing.T) {
	t.Parallel()

	cdf, err := QuantizePMF([]float64{0, 1, 0}, 4)
	if err != nil {
		t.Fatalf("QuantizePMF: %v", err)
	}
	checkInvariants(t, []float64{0, 1, 0}, 4, cdf)
	mass := deltas(cdf)
	if mass[0] < 1 || mass[2] < 1 {
		t.Fatalf("zero-probability symbol collapsed: %v", mass)
	}
}

func TestQuantizeHugeFiniteEntryClamps(t *testing.T) {
	t.Parallel()

	// A finite entry whose scaled value overflows int64 must clamp to the
	// normalizer before conversion; the result is then corrected down like
	// any other unnormalized row, on every platform.
	pmf := []float64{1e300, 1}
	cdf, err := QuantizePMF(pmf, 8)
	if err != nil {
		t.Fatalf("QuantizePMF: %v", err)
	}
	checkInvariants(t, pmf, 8, cdf)

	mass := deltas(cdf)
	if mass[0] <= mass[1] {
		t.Fatalf("dominant symbol lost its mass: %v", mass)
	}

	pmf = []float64{math.MaxFloat64, math.MaxFloat64}
	cdf, err = QuantizePMF(pmf, 4)
	if err != nil {
		t.Fatalf("QuantizePMF: %v", err)
	}
	checkInvariants(t, pmf, 4, cdf)
}

func TestQuantizeArgumentErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		pmf       []float64
		precision int
		want      error
	}{
		{"precision too low", []float64{0.5, 0.5}, 0, ErrPrecisionRange},
		{"precision too high", []float64{0.5, 0.5}, 17, ErrPrecisionRange},
		{"single symbol", []float64{1}, 4, ErrRowTooShort},
		{"empty row", nil, 4, ErrRowTooShort},
		{"too many symbols", []float64{0.2, 0.2, 0.2, 0.2, 0.2}, 2, ErrInfeasiblePrecision},
		{"negative entry", []float64{0.5, -0.1, 0.6}, 4, ErrInvalidProbability},
		{"nan entry", []float64{0.5, math.NaN()}, 4, ErrInvalidProbability},
		{"inf entry", []float64{math.Inf(1), 0.5}, 4, ErrInvalidProbability},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cdf, err := QuantizePMF(tt.pmf, tt.precision)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error: got %v, want %v", err, tt.want)
			}
			if cdf != nil {
				t.Fatalf("expected nil cdf on error, got %v", cdf)
			}
		})
	}
}

func TestQuantizeInfeasibleNeverYieldsZeroWidth(t *testing.T) {
	t.Parallel()

	// n symbols into fewer than n units cannot work; the failure must be
	// reported instead of returning a CDF with a zero-width interval.
	pmf := make([]float64, 40)
	for i := range pmf {
		pmf[i] = 1.0 / float64(len(pmf))
	}
	cdf, err := QuantizePMF(pmf, 5) // normalizer 32 < 40 symbols
	if !errors.Is(err, ErrInfeasiblePrecision) {
		t.Fatalf("error: got %v, want %v", err, ErrInfeasiblePrecision)
	}
	if cdf != nil {
		t.Fatalf("expected nil cdf, got %v", cdf)
	}
}

func TestQuantizeRandomInvariants(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(0x5eed))
	for trial := 0; trial < 1000; trial++ {
		n := 2 + rng.Intn(63)
		precision := MinPrecision + rng.Intn(MaxPrecision)
		for n > int(Normalizer(precision)) {
			precision = MinPrecision + rng.Intn(MaxPrecision)
		}

		pmf := make([]float64, n)
		var sum float64
		for i := range pmf {
			// Exponential weights produce the skewed distributions
			// entropy models actually emit; sprinkle hard zeros in.
			pmf[i] = rng.ExpFloat64()
			if rng.Intn(8) == 0 {
				pmf[i] = 0
			}
			sum += pmf[i]
		}
		if sum > 0 {
			for i := range pmf {
				pmf[i] /= sum
			}
		}

		cdf, err := QuantizePMF(pmf, precision)
		if err != nil {
			t.Fatalf("trial %d (n=%d, precision=%d): %v", trial, n, precision, err)
		}
		checkInvariants(t, pmf, precision, cdf)
	}
}
