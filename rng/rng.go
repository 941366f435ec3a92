// Package rng provides the external secure random source backing
// password generation.
//
// CSPRNG used is fortuna: github.com/seehuhn/fortuna
// It is seeded from crypto/rand on start and reseeds from there after
// configurable time and byte budgets. The entropy pool is deliberately
// not fed into this generator - pooled entropy and external randomness
// are combined per generation request by the derive package.
package rng

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aead/serpent"
	"github.com/seehuhn/fortuna"
	"github.com/tevino/abool"

	"github.com/safing/passgen/secbuf"
	"github.com/safing/portbase/config"
	"github.com/safing/portbase/modules"
)

// SeedSize is the number of bytes fetched from the OS per (re)seed.
const SeedSize = 32

// ErrNotReady is returned when random bytes are requested before the
// rng module was started.
var ErrNotReady = errors.New("rng: generator is not ready yet")

var (
	rng      *fortuna.Generator
	rngLock  sync.Mutex
	rngReady = abool.NewBool(false)

	rngBytesServed int64
	rngLastSeed    time.Time

	rngCipherOption    config.StringOption
	reseedAfterSeconds config.IntOption
	reseedAfterBytes   config.IntOption
)

func init() {
	modules.Register("rng", prep, Start, stop)
}

func prep() error {
	err := config.Register(&config.Option{
		Name:            "RNG Cipher",
		Key:             "random/rng_cipher",
		Description:     "Cipher to use for the Fortuna RNG. Requires restart to take effect.",
		OptType:         config.OptTypeString,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		DefaultValue:    "aes",
		ValidationRegex: "^(aes|serpent)$",
	})
	if err != nil {
		return err
	}
	rngCipherOption = config.GetAsString("random/rng_cipher", "aes")

	err = config.Register(&config.Option{
		Name:            "Reseed after x seconds",
		Key:             "random/reseed_after_seconds",
		Description:     "Number of seconds until the RNG is reseeded from the OS.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    360,
		ValidationRegex: "^[1-9][0-9]{1,5}$",
	})
	if err != nil {
		return err
	}
	reseedAfterSeconds = config.GetAsInt("random/reseed_after_seconds", 360)

	err = config.Register(&config.Option{
		Name:            "Reseed after x bytes",
		Key:             "random/reseed_after_bytes",
		Description:     "Number of served bytes until the RNG is reseeded from the OS.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    1000000,
		ValidationRegex: "^[1-9][0-9]{2,9}$",
	})
	if err != nil {
		return err
	}
	reseedAfterBytes = config.GetAsInt("random/reseed_after_bytes", 1000000)

	return nil
}

func newCipher(key []byte) (cipher.Block, error) {
	c := rngCipherOption()
	switch c {
	case "aes":
		return aes.NewCipher(key)
	case "serpent":
		return serpent.NewCipher(key)
	default:
		return nil, fmt.Errorf("unknown or unsupported cipher: %s", c)
	}
}

// reseed feeds fresh OS randomness into the generator. Callers must
// hold rngLock.
func reseed() error {
	seed := make([]byte, SeedSize)
	defer secbuf.Wipe(seed)

	n, err := io.ReadFull(rand.Reader, seed)
	if err != nil {
		return fmt.Errorf("rng: could not read seed from os: %w", err)
	}
	if n != SeedSize {
		return fmt.Errorf("rng: could not read enough seed data from os: got only %d bytes instead of %d", n, SeedSize)
	}

	rng.Reseed(seed)
	rngBytesServed = 0
	rngLastSeed = time.Now()
	return nil
}

// checkReseed reseeds the generator when the time or byte budget is
// exceeded. Callers must hold rngLock.
func checkReseed(n int) error {
	if !rngReady.IsSet() {
		return ErrNotReady
	}

	if rngBytesServed+int64(n) > reseedAfterBytes() ||
		int64(time.Since(rngLastSeed).Seconds()) > reseedAfterSeconds() {
		if err := reseed(); err != nil {
			return err
		}
	}

	rngBytesServed += int64(n)
	return nil
}

// Start initializes and seeds the RNG. Normally, this should only be
// called by the modules package.
func Start() error {
	rngLock.Lock()
	defer rngLock.Unlock()

	rng = fortuna.NewGenerator(newCipher)
	if err := reseed(); err != nil {
		return err
	}

	rngReady.Set()
	return nil
}

func stop() error {
	rngReady.UnSet()
	return nil
}
