// Package fingerprint derives deterministic 64-bit identities for byte
// buffers and numeric rows. Callers use the values as cache keys, for
// example to memoize repeated PMF rows across quantization requests; the
// quantizer itself never calls into this package.
package fingerprint

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint64 maps a byte buffer to a 64-bit value with strong avalanche
// and distribution properties. It is pure: equal buffers always produce
// equal fingerprints, across processes and platforms.
func Fingerprint64(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// Row fingerprints a float64 row by hashing its values as little-endian
// IEEE-754 bits. Distinct bit patterns hash distinctly, so -0 and +0 (or two
// NaN payloads) are different keys; callers that want them merged must
// canonicalize first.
func Row(row []float64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, v := range row {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
