// Package cdfquant converts floating-point probability mass functions into
// exact integer cumulative distribution functions at fixed bit precision.
//
// A range or arithmetic coder needs every symbol interval expressed as an
// integer number of units out of a power-of-two total. Rounding a PMF to
// integers almost never lands on that total exactly, so after the initial
// rounding the quantizer runs a greedy correction pass that moves one unit at
// a time, always picking the adjustment with the smallest coding-cost impact,
// until the masses sum to exactly 1<<precision. Every symbol keeps a mass of
// at least 1 so that no coding interval collapses to zero width.
package cdfquant

const (
	// MinPrecision and MaxPrecision bound the supported CDF bit widths.
	// 16 bits keeps every cumulative value within uint16 range plus one,
	// which is what typical range coder implementations expect.
	MinPrecision = 1
	MaxPrecision = 16
)

// Normalizer returns the exact integer total the quantized masses must sum
// to for the given precision.
func Normalizer(precision int) uint32 {
	return 1 << precision
}
