package rng

import (
	"io"

	"github.com/safing/passgen/secbuf"
)

// Reader provides a global instance to read from the RNG.
var Reader io.Reader

// reader provides an io.Reader interface.
type reader struct{}

func init() {
	Reader = reader{}
}

// Read fills the supplied byte slice with random bytes.
func Read(b []byte) (n int, err error) {
	rngLock.Lock()
	defer rngLock.Unlock()

	if err := checkReseed(len(b)); err != nil {
		return 0, err
	}

	data := rng.PseudoRandomData(uint(len(b)))
	n = copy(b, data)
	secbuf.Wipe(data)
	return n, nil
}

// Read implements the io.Reader interface.
func (r reader) Read(b []byte) (n int, err error) {
	return Read(b)
}

// Bytes allocates a new byte slice of given length and fills it with
// random data.
func Bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := Read(b); err != nil {
		return nil, err
	}
	return b, nil
}
