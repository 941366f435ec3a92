// Package derive turns pooled entropy into password material: Combine
// mixes the pool digest with external secure randomness into a seed,
// Expand stretches that seed into an arbitrary-length byte stream via
// counter-indexed hashing.
package derive

import (
	"github.com/safing/passgen/hashing"
)

// SeedSize is the size of seeds and of both Combine inputs, in bytes.
const SeedSize = hashing.Size

// Combine derives a seed by hashing the pool digest followed by the
// externally supplied secure random bytes. Both inputs must be exactly
// SeedSize bytes - anything else is a programming error and panics.
//
// The caller owns both inputs and the returned seed and must wipe them
// once they are no longer needed.
func Combine(poolDigest, externalRandom []byte) [SeedSize]byte {
	if len(poolDigest) != SeedSize {
		panic("derive: pool digest must be exactly 32 bytes")
	}
	if len(externalRandom) != SeedSize {
		panic("derive: external random block must be exactly 32 bytes")
	}

	return hashing.Sum(poolDigest, externalRandom)
}
