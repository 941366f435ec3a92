package password

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/safing/passgen/entropy"
)

func init() {
	err := prep()
	if err != nil {
		panic(err)
	}
}

func TestModuleStartRequiresEntropy(t *testing.T) {
	// the entropy module is not started in this test process, so the
	// passgen module must refuse to start
	require.ErrorIs(t, start(), entropy.ErrNotStarted)

	_, err := Generate(Build(Options{Lowercase: true}), 8)
	require.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, stop())
}
