package rng

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"testing"

	"github.com/aead/serpent"

	"github.com/safing/portbase/config"
)

func init() {
	err := prep()
	if err != nil {
		panic(err)
	}

	err = Start()
	if err != nil {
		panic(err)
	}
}

func encryptZeroBlock(t *testing.T, block cipher.Block) []byte {
	t.Helper()
	out := make([]byte, block.BlockSize())
	block.Encrypt(out, make([]byte, block.BlockSize()))
	return out
}

func TestCiphers(t *testing.T) {
	key := make([]byte, 16)

	err := config.SetConfigOption("random/rng_cipher", "aes")
	if err != nil {
		t.Errorf("failed to set random/rng_cipher config: %s", err)
	}
	block, err := newCipher(key)
	if err != nil {
		t.Fatalf("failed to create aes cipher: %s", err)
	}
	wantAES, err := aes.NewCipher(key)
	if err != nil {
		t.Fatalf("failed to create reference aes cipher: %s", err)
	}
	if !bytes.Equal(encryptZeroBlock(t, block), encryptZeroBlock(t, wantAES)) {
		t.Error("cipher option did not select aes")
	}
	rng.Reseed(key)

	err = config.SetConfigOption("random/rng_cipher", "serpent")
	if err != nil {
		t.Errorf("failed to set random/rng_cipher config: %s", err)
	}
	block, err = newCipher(key)
	if err != nil {
		t.Fatalf("failed to create serpent cipher: %s", err)
	}
	wantSerpent, err := serpent.NewCipher(key)
	if err != nil {
		t.Fatalf("failed to create reference serpent cipher: %s", err)
	}
	if !bytes.Equal(encryptZeroBlock(t, block), encryptZeroBlock(t, wantSerpent)) {
		t.Error("cipher option did not select serpent")
	}
	rng.Reseed(key)

	err = config.SetConfigOption("random/rng_cipher", "aes")
	if err != nil {
		t.Errorf("failed to reset random/rng_cipher config: %s", err)
	}
}

func TestRead(t *testing.T) {
	b := make([]byte, SeedSize)
	n, err := Read(b)
	if err != nil {
		t.Fatalf("Read failed: %s", err)
	}
	if n != SeedSize {
		t.Errorf("expected %d bytes, got %d", SeedSize, n)
	}
	if bytes.Equal(b, make([]byte, SeedSize)) {
		t.Error("Read returned all zero bytes")
	}

	if _, err := Reader.Read(b); err != nil {
		t.Errorf("Reader.Read failed: %s", err)
	}

	one, err := Bytes(SeedSize)
	if err != nil {
		t.Fatalf("Bytes failed: %s", err)
	}
	two, err := Bytes(SeedSize)
	if err != nil {
		t.Fatalf("Bytes failed: %s", err)
	}
	if bytes.Equal(one, two) {
		t.Error("consecutive reads returned identical data")
	}
}

func TestNotReady(t *testing.T) {
	rngReady.UnSet()
	defer rngReady.Set()

	if _, err := Bytes(16); err != ErrNotReady {
		t.Errorf("expected ErrNotReady, got %v", err)
	}
}
