package cdfquant

import "errors"

var (
	// ErrPrecisionRange reports a precision outside [MinPrecision, MaxPrecision].
	ErrPrecisionRange = errors.New("precision out of range")
	// ErrRowTooShort reports a PMF row with fewer than two symbols.
	ErrRowTooShort = errors.New("pmf row needs at least 2 symbols")
	// ErrRaggedBatch reports batch rows of unequal length.
	ErrRaggedBatch = errors.New("batch rows must share symbol count")
	// ErrEmptyBatch reports a batch with no rows.
	ErrEmptyBatch = errors.New("empty batch")
	// ErrInfeasiblePrecision reports a row that cannot satisfy the
	// normalizer sum with every mass kept at 1 or above. Unlike the
	// argument errors above it depends on row content, not just shape.
	ErrInfeasiblePrecision = errors.New("precision too small for symbol count")
	// ErrInvalidProbability reports a negative or non-finite PMF entry.
	// Such rows are rejected up front rather than quantized to garbage.
	ErrInvalidProbability = errors.New("pmf entry must be finite and non-negative")
)
