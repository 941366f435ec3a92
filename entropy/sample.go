package entropy

import (
	"github.com/safing/portbase/container"

	"github.com/safing/passgen/secbuf"
)

// Sample is an unpredictable input event, typically a pointer movement
// with timing data. The pool does not interpret this structure - it
// only sees the encoded bytes.
type Sample struct {
	X       int32
	Y       int32
	Time    int64
	Counter int64
}

// Encode returns an opaque byte encoding of the sample.
func (s Sample) Encode() []byte {
	c := container.New()
	c.AppendNumber(uint64(uint32(s.X)))
	c.AppendNumber(uint64(uint32(s.Y)))
	c.AppendNumber(uint64(s.Time))
	c.AppendNumber(uint64(s.Counter))
	return c.CompileData()
}

// MixSample encodes the sample and mixes it into the pool. The encoded
// bytes are wiped afterwards.
func (p *Pool) MixSample(s Sample) error {
	data := s.Encode()
	defer secbuf.Wipe(data)
	return p.Mix(data)
}
