package derive

import (
	"encoding/binary"
	"errors"

	"github.com/safing/passgen/hashing"
	"github.com/safing/passgen/secbuf"
)

// ErrBadStreamLength is returned when a non-positive stream length is
// requested.
var ErrBadStreamLength = errors.New("derive: stream length must be greater than zero")

// ExpandInto fills out with the deterministic expansion of seed: for
// counter c = 0, 1, 2, ... the block Hash(seed || LE32(c)) is appended
// and the result truncated to len(out). The expansion is prefix-stable:
// a shorter output is always a prefix of a longer one for the same
// seed. Each block is wiped after being copied out.
//
// The seed must be exactly SeedSize bytes and remains owned by the
// caller, who must wipe it after expansion.
func ExpandInto(seed, out []byte) {
	if len(seed) != SeedSize {
		panic("derive: seed must be exactly 32 bytes")
	}

	var counter [4]byte
	offset := 0
	for c := uint32(0); offset < len(out); c++ {
		binary.LittleEndian.PutUint32(counter[:], c)
		block := hashing.Sum(seed, counter[:])
		offset += copy(out[offset:], block[:])
		secbuf.Wipe(block[:])
	}
}

// Expand returns needed bytes of the deterministic expansion of seed.
// Prefer ExpandInto with a secbuf-owned buffer when the stream holds
// password material.
func Expand(seed []byte, needed int) ([]byte, error) {
	if needed <= 0 {
		return nil, ErrBadStreamLength
	}

	out := make([]byte, needed)
	ExpandInto(seed, out)
	return out, nil
}
