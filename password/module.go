package password

import (
	"errors"
	"sync"

	"github.com/safing/passgen/entropy"
	"github.com/safing/passgen/secbuf"
	"github.com/safing/portbase/modules"
)

// ErrNotStarted is returned by the package-level Generate before the
// passgen module was started.
var ErrNotStarted = errors.New("password: passgen module is not started")

var (
	genLock    sync.Mutex
	defaultGen *Generator
)

func init() {
	modules.Register("passgen", prep, start, stop, "entropy", "rng")
}

func prep() error {
	return registerConfig()
}

func start() error {
	genLock.Lock()
	defer genLock.Unlock()

	pool := entropy.Default()
	if pool == nil {
		return entropy.ErrNotStarted
	}
	defaultGen = NewGenerator(pool)
	return nil
}

func stop() error {
	genLock.Lock()
	defer genLock.Unlock()

	defaultGen = nil
	secbuf.Purge()
	return nil
}

// Generate builds a password using the shared entropy pool and the
// default secure random source.
func Generate(set Charset, length int) (string, error) {
	genLock.Lock()
	g := defaultGen
	genLock.Unlock()

	if g == nil {
		return "", ErrNotStarted
	}
	return g.Generate(set, length)
}
