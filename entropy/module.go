// Package entropy provides a mutex-guarded entropy pool that absorbs
// caller-supplied unpredictable samples into a running 256-bit digest.
//
// Sample producers (UI event sources, the built-in tick feeder) call
// Mix or MixSample at any rate; a generation consumer reads the digest
// via DigestSnapshot. The collected-bits figure is an advisory UI
// estimate only.
package entropy

import (
	"errors"
	"sync"

	"github.com/safing/portbase/config"
	"github.com/safing/portbase/modules"
)

// ErrNotStarted is returned when the default pool is used before the
// entropy module was started.
var ErrNotStarted = errors.New("entropy: module is not started")

var (
	poolLock    sync.Mutex
	defaultPool *Pool

	tickIntervalMsec config.IntOption

	shutdownSignal chan struct{}
)

func init() {
	modules.Register("entropy", prep, start, stop, "hashing")

	// the option closures are concurrency safe and fall back to the
	// defaults until prep registered the options, so pools constructed
	// outside the module lifecycle work as well
	bitsPerSample = config.Concurrent.GetAsInt("entropy/bits_per_sample", 2)
	bitsPerGeneration = config.Concurrent.GetAsInt("entropy/bits_per_generation", 16)
	tickIntervalMsec = config.Concurrent.GetAsInt("entropy/tick_interval_msec", 10)
}

func prep() error {
	err := config.Register(&config.Option{
		Name:            "Bits per Sample",
		Key:             "entropy/bits_per_sample",
		Description:     "Advisory amount of entropy credited per mixed sample, in bits. UI feedback only.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    2,
		ValidationRegex: "^[0-9]{1,3}$",
	})
	if err != nil {
		return err
	}

	err = config.Register(&config.Option{
		Name:            "Bits per Generation",
		Key:             "entropy/bits_per_generation",
		Description:     "Advisory amount of entropy credited after a successful generation, in bits. UI feedback only.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    16,
		ValidationRegex: "^[0-9]{1,3}$",
	})
	if err != nil {
		return err
	}

	err = config.Register(&config.Option{
		Name:            "Tick Feeder Interval",
		Key:             "entropy/tick_interval_msec",
		Description:     "Interval of the background tick feeder, in milliseconds.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    10,
		ValidationRegex: "^[1-9][0-9]{0,4}$",
	})
	if err != nil {
		return err
	}

	return nil
}

func start() error {
	poolLock.Lock()
	defer poolLock.Unlock()

	defaultPool = NewPool()
	shutdownSignal = make(chan struct{})

	// background sample producer
	go tickFeeder(defaultPool, shutdownSignal)

	return nil
}

func stop() error {
	poolLock.Lock()
	defer poolLock.Unlock()

	close(shutdownSignal)
	if defaultPool != nil {
		defaultPool.Wipe()
		defaultPool = nil
	}
	return nil
}

// Default returns the shared pool, or nil before the entropy module
// was started.
func Default() *Pool {
	poolLock.Lock()
	defer poolLock.Unlock()

	return defaultPool
}

// Mix absorbs a sample into the shared pool.
func Mix(sample []byte) error {
	pool := Default()
	if pool == nil {
		return ErrNotStarted
	}
	return pool.Mix(sample)
}

// MixSample encodes and absorbs a sample into the shared pool.
func MixSample(s Sample) error {
	pool := Default()
	if pool == nil {
		return ErrNotStarted
	}
	return pool.MixSample(s)
}
