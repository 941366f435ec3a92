package password

import (
	"errors"
	"strings"

	"github.com/VictoriaMetrics/metrics"
)

var (
	// ErrEmptyCharset is returned when the character set has no
	// members.
	ErrEmptyCharset = errors.New("password: character set must not be empty")

	// ErrBadLength is returned when a non-positive password length is
	// requested.
	ErrBadLength = errors.New("password: length must be greater than zero")

	// ErrInsufficientRandom is returned when the random stream is
	// exhausted before the password is complete. The caller may retry
	// with a larger stream, the selector never pads or truncates.
	ErrInsufficientRandom = errors.New("password: random stream exhausted before password was complete")
)

var bytesRejected = metrics.NewCounter("passgen_selector_bytes_rejected_total")

// Select maps a random byte stream onto the character set via
// rejection sampling and returns a password of exactly length
// characters.
//
// With maxAccept = floor(255/N)*N, a byte v is accepted as
// set[v mod N] if v < maxAccept and discarded otherwise. Straight
// modulo would bias low indices whenever 256 mod N != 0; rejecting the
// top range removes that bias exactly. Sets with more than 255
// characters are not supported.
//
// Callers should size the stream with enough margin that exhaustion is
// negligibly probable; it is still surfaced as ErrInsufficientRandom
// when it happens.
func Select(randomBytes []byte, set Charset, length int) (string, error) {
	if len(set) == 0 {
		return "", ErrEmptyCharset
	}
	if length <= 0 {
		return "", ErrBadLength
	}

	n := len(set)
	maxAccept := (255 / n) * n

	var pw strings.Builder
	pw.Grow(length)
	remaining := length

	for _, v := range randomBytes {
		if int(v) >= maxAccept {
			bytesRejected.Inc()
			continue
		}

		pw.WriteByte(set[int(v)%n])
		remaining--
		if remaining == 0 {
			return pw.String(), nil
		}
	}

	return "", ErrInsufficientRandom
}
