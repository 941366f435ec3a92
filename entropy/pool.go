package entropy

import (
	"errors"
	"sync"

	"github.com/VictoriaMetrics/metrics"

	"github.com/safing/passgen/hashing"
	"github.com/safing/passgen/secbuf"
	"github.com/safing/portbase/config"
)

// DigestSize is the size of the pool digest in bytes.
const DigestSize = hashing.Size

// MaxBits caps the advisory collected-bits estimate.
const MaxBits = 256

// ErrEmptySample is returned when an empty sample is mixed.
var ErrEmptySample = errors.New("entropy: sample must not be empty")

var (
	bitsPerSample     config.IntOption
	bitsPerGeneration config.IntOption

	samplesMixed = metrics.NewCounter("passgen_entropy_samples_mixed_total")
)

// Pool accumulates unpredictable samples into a running digest.
//
// All operations are serialized by the pool lock, so no caller can
// observe a partially updated digest. Mixes are applied in the order
// the lock admits them - reordering would change the resulting digest.
// The lock is only ever held for a hash computation and a copy.
type Pool struct {
	lock          sync.Mutex
	digest        [DigestSize]byte
	collectedBits int
	hasSample     bool
}

// NewPool returns a zeroed pool with no samples collected.
func NewPool() *Pool {
	return &Pool{}
}

// Reset returns the pool to its initial state: a zero digest, no
// collected bits and no samples.
func (p *Pool) Reset() {
	p.lock.Lock()
	defer p.lock.Unlock()

	secbuf.Wipe(p.digest[:])
	p.collectedBits = 0
	p.hasSample = false
}

// Mix absorbs a sample into the pool by replacing the digest with the
// hash of the current digest followed by the sample. The sample
// encoding is treated as opaque; it only must not be empty.
//
// Mixing is deterministic in (digest, sample) and order-dependent:
// mixing the same samples in a different order yields a different
// digest. That property is what accumulates unpredictability.
func (p *Pool) Mix(sample []byte) error {
	if len(sample) == 0 {
		return ErrEmptySample
	}

	p.lock.Lock()
	defer p.lock.Unlock()

	sum := hashing.Sum(p.digest[:], sample)
	copy(p.digest[:], sum[:])
	secbuf.Wipe(sum[:])

	p.collectedBits = clampBits(p.collectedBits + int(bitsPerSample()))
	p.hasSample = true
	samplesMixed.Inc()
	return nil
}

// DigestSnapshot returns a copy of the current digest.
func (p *Pool) DigestSnapshot() [DigestSize]byte {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.digest
}

// CollectedBitsEstimate returns the advisory estimate of collected
// entropy in bits, in [0,256]. This is UI feedback, not a cryptographic
// accounting - the only gating condition for generation is
// HasCollectedSample.
func (p *Pool) CollectedBitsEstimate() int {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.collectedBits
}

// HasCollectedSample reports whether at least one sample was mixed
// since the last reset.
func (p *Pool) HasCollectedSample() bool {
	p.lock.Lock()
	defer p.lock.Unlock()

	return p.hasSample
}

// NoteGeneration bumps the advisory bits estimate after a successful
// password generation to reflect consumed freshness.
func (p *Pool) NoteGeneration() {
	p.lock.Lock()
	defer p.lock.Unlock()

	p.collectedBits = clampBits(p.collectedBits + int(bitsPerGeneration()))
}

// Wipe zeroes the digest and resets all counters. Meant to be called
// on teardown; the pool may be reused afterwards.
func (p *Pool) Wipe() {
	p.Reset()
}

func clampBits(bits int) int {
	if bits > MaxBits {
		return MaxBits
	}
	return bits
}
