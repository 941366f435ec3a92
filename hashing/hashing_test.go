package hashing

import (
	"bytes"
	"crypto/sha256"
	"sync"
	"testing"

	"github.com/safing/portbase/config"
)

func init() {
	err := prep()
	if err != nil {
		panic(err)
	}
}

func sumWith(alg string, data []byte) [Size]byte {
	h := newHash(alg)
	_, _ = h.Write(data)

	var sum [Size]byte
	h.Sum(sum[:0])
	return sum
}

func TestSumMatchesConcatenation(t *testing.T) {
	a := []byte("first part")
	b := []byte("second part")

	sum := Sum(a, b)
	direct := sha256.Sum256(append(append([]byte{}, a...), b...))
	if !bytes.Equal(sum[:], direct[:]) {
		t.Errorf("Sum over parts diverges from hash of concatenation:\ngot  %x\nwant %x", sum, direct)
	}
}

func TestSumDeterministic(t *testing.T) {
	one := Sum([]byte("sample"))
	two := Sum([]byte("sample"))
	if one != two {
		t.Error("identical input produced different digests")
	}
}

func TestAlgorithmSelection(t *testing.T) {
	sha := sumWith("sha256", []byte("sample"))
	blake := sumWith("blake2b256", []byte("sample"))

	if sha == blake {
		t.Error("sha256 and blake2b256 produced the same digest")
	}

	direct := sha256.Sum256([]byte("sample"))
	if sha != direct {
		t.Errorf("sha256 digest diverges from crypto/sha256:\ngot  %x\nwant %x", sha, direct)
	}

	for _, alg := range []string{"sha256", "blake2b256"} {
		if size := newHash(alg).Size(); size != Size {
			t.Errorf("%s: expected digest size %d, got %d", alg, Size, size)
		}
	}
}

func TestAlgorithmPinnedForSession(t *testing.T) {
	// resolve the session algorithm
	first := Sum([]byte("sample"))

	if err := config.SetConfigOption("passgen/hash", "blake2b256"); err != nil {
		t.Fatalf("failed to set passgen/hash config: %s", err)
	}
	defer func() {
		_ = config.SetConfigOption("passgen/hash", defaultAlgorithm)
	}()

	// the option itself must have changed, the session must not
	if hashAlgOption() != "blake2b256" {
		t.Fatal("option change was not applied")
	}
	second := Sum([]byte("sample"))
	if first != second {
		t.Error("hash algorithm changed mid-session")
	}
}

func TestSumConcurrent(t *testing.T) {
	// option invalidation while digests are computed across goroutines
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_ = Sum([]byte("sample"))
			}
		}()
	}
	for i := 0; i < 20; i++ {
		_ = config.SetConfigOption("passgen/hash", "blake2b256")
		_ = config.SetConfigOption("passgen/hash", defaultAlgorithm)
	}
	wg.Wait()

	direct := sha256.Sum256([]byte("sample"))
	if Sum([]byte("sample")) != direct {
		t.Error("session algorithm drifted under concurrent option changes")
	}
}
