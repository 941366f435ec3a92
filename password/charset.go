package password

import (
	"bytes"
)

// Character categories available for charset assembly.
const (
	Lowercase = "abcdefghijklmnopqrstuvwxyz"
	Uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits    = "0123456789"
	Symbols   = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

	// Ambiguous holds visually confusable characters that can
	// optionally be excluded from the output.
	Ambiguous = "Il1O0"
)

// Charset is an ordered sequence of distinct characters that passwords
// are drawn from. It is read-only to the selector.
type Charset []byte

// Options selects the categories a charset is assembled from.
type Options struct {
	Lowercase bool
	Uppercase bool
	Digits    bool
	Symbols   bool

	// ExcludeAmbiguous removes the characters in Ambiguous from the
	// assembled set.
	ExcludeAmbiguous bool
}

// Build assembles a charset from the enabled categories, in category
// order. The result may be empty if no category is enabled or
// everything was excluded; Generate and Select reject empty sets.
func Build(opts Options) Charset {
	var set []byte
	if opts.Lowercase {
		set = append(set, Lowercase...)
	}
	if opts.Uppercase {
		set = append(set, Uppercase...)
	}
	if opts.Digits {
		set = append(set, Digits...)
	}
	if opts.Symbols {
		set = append(set, Symbols...)
	}

	if opts.ExcludeAmbiguous {
		kept := set[:0]
		for _, c := range set {
			if bytes.IndexByte([]byte(Ambiguous), c) < 0 {
				kept = append(kept, c)
			}
		}
		set = kept
	}

	return Charset(set)
}

// Contains reports whether c is a member of the set.
func (set Charset) Contains(c byte) bool {
	return bytes.IndexByte(set, c) >= 0
}
