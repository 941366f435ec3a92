// Package hashing provides the 256-bit hash primitive used for
// entropy digest chaining, seed mixing and stream expansion.
//
// The algorithm is selectable via configuration and resolved once on
// first use, so a session chains all digests with a single algorithm.
// Changing the option requires a restart to take effect.
package hashing

import (
	"crypto/sha256"
	"hash"
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/safing/portbase/config"
	"github.com/safing/portbase/modules"
)

// Size is the digest size in bytes of all supported algorithms.
const Size = 32

const defaultAlgorithm = "sha256"

var (
	hashAlgOption config.StringOption

	resolveAlg sync.Once
	sessionAlg string
)

func init() {
	modules.Register("hashing", prep, nil, nil)

	hashAlgOption = config.Concurrent.GetAsString("passgen/hash", defaultAlgorithm)
}

func prep() error {
	return config.Register(&config.Option{
		Name:            "Hash Algorithm",
		Key:             "passgen/hash",
		Description:     "Hash algorithm used for entropy digest chaining and seed expansion. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    defaultAlgorithm,
		ValidationRegex: "^(sha256|blake2b256)$",
	})
}

// algorithm returns the hash algorithm of this session. The option is
// read exactly once; later option changes only apply after a restart.
func algorithm() string {
	resolveAlg.Do(func() {
		sessionAlg = hashAlgOption()
	})
	return sessionAlg
}

// New returns a new hash instance of the session algorithm.
func New() hash.Hash {
	return newHash(algorithm())
}

func newHash(alg string) hash.Hash {
	switch alg {
	case "blake2b256":
		h, err := blake2b.New256(nil)
		if err != nil {
			// only fails with an oversized key, and we pass none
			panic(err)
		}
		return h
	default:
		return sha256.New()
	}
}

// Sum returns the digest of the concatenation of the given parts. No
// intermediate concatenation buffer is allocated.
func Sum(parts ...[]byte) [Size]byte {
	h := New()
	for _, part := range parts {
		_, _ = h.Write(part)
	}

	var sum [Size]byte
	h.Sum(sum[:0])
	return sum
}
