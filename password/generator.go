// Package password builds passwords from pooled entropy, external
// secure randomness and a caller-assembled character set.
//
// A generation request combines the pool digest with 32 bytes from the
// external random source into a seed, expands the seed into a byte
// stream and maps the stream onto the charset without modulo bias. All
// intermediate secrets are wiped on every exit path.
package password

import (
	"errors"
	"fmt"
	"io"

	"github.com/VictoriaMetrics/metrics"

	"github.com/safing/passgen/derive"
	"github.com/safing/passgen/entropy"
	"github.com/safing/passgen/rng"
	"github.com/safing/passgen/secbuf"
	"github.com/safing/portbase/config"
)

// externalRandomSize is the number of bytes requested from the
// external secure random source per generation.
const externalRandomSize = 32

// ErrNoEntropy is returned when generation is attempted before any
// sample was mixed into the pool. Collect a sample and retry.
var ErrNoEntropy = errors.New("password: no entropy collected yet")

var (
	streamMarginOption config.IntOption

	passwordsGenerated = metrics.NewCounter("passgen_passwords_generated_total")
)

func init() {
	streamMarginOption = config.Concurrent.GetAsInt("passgen/stream_margin", 4)
}

func registerConfig() error {
	return config.Register(&config.Option{
		Name:            "Stream Margin",
		Key:             "passgen/stream_margin",
		Description:     "Number of random stream bytes expanded per password character. Larger margins make stream exhaustion during rejection sampling less probable.",
		OptType:         config.OptTypeInt,
		ExpertiseLevel:  config.ExpertiseLevelDeveloper,
		ReleaseLevel:    config.ReleaseLevelExperimental,
		DefaultValue:    4,
		ValidationRegex: "^[1-9][0-9]{0,2}$",
	})
}

// Generator produces passwords from an entropy pool and an external
// secure random source.
type Generator struct {
	pool   *entropy.Pool
	random io.Reader
	margin int
}

// NewGenerator returns a generator bound to the given pool, reading
// external randomness from the rng package.
func NewGenerator(pool *entropy.Pool) *Generator {
	return &Generator{
		pool:   pool,
		random: rng.Reader,
		margin: int(streamMarginOption()),
	}
}

// Generate builds a password of exactly length characters drawn from
// the given charset.
//
// It fails with ErrNoEntropy before touching the random source when no
// sample was mixed yet, with ErrEmptyCharset before consuming any
// stream bytes when the set is empty, and with ErrInsufficientRandom
// when the expanded stream runs out during rejection sampling. None of
// these are retried internally. Seed and stream buffers are wiped on
// all exit paths.
func (g *Generator) Generate(set Charset, length int) (string, error) {
	if length <= 0 {
		return "", ErrBadLength
	}
	if !g.pool.HasCollectedSample() {
		return "", ErrNoEntropy
	}
	if len(set) == 0 {
		return "", ErrEmptyCharset
	}

	external := secbuf.New(externalRandomSize)
	defer external.Release()
	if _, err := io.ReadFull(g.random, external.Bytes()); err != nil {
		return "", fmt.Errorf("password: failed to read external randomness: %w", err)
	}

	digest := g.pool.DigestSnapshot()
	seed := derive.Combine(digest[:], external.Bytes())
	secbuf.Wipe(digest[:])
	defer secbuf.Wipe(seed[:])

	stream := secbuf.New(length * g.streamMargin())
	defer stream.Release()
	derive.ExpandInto(seed[:], stream.Bytes())

	pw, err := Select(stream.Bytes(), set, length)
	if err != nil {
		return "", err
	}

	g.pool.NoteGeneration()
	passwordsGenerated.Inc()
	return pw, nil
}

func (g *Generator) streamMargin() int {
	if g.margin <= 0 {
		return 4
	}
	return g.margin
}
