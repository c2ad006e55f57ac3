package sampling

import (
	"crypto/rand"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// PRNG is the source of every random byte consumed by key generation,
// encapsulation and the ring samplers. Those operations read a fixed number
// of bytes in a fixed order, so their outputs are a function of the stream.
type PRNG interface {
	io.Reader
}

// ThreadSafePRNG reads from the operating system's CSPRNG. It can be shared
// by concurrent callers.
type ThreadSafePRNG struct {
}

// NewPRNG returns the PRNG backing production key pairs and encapsulations.
func NewPRNG() (*ThreadSafePRNG, error) {
	return &ThreadSafePRNG{}, nil
}

// Read fills sum from crypto/rand.
func (prng *ThreadSafePRNG) Read(sum []byte) (n int, err error) {
	return rand.Read(sum)
}

// MaxKeySize is the largest key accepted by [NewKeyedPRNG].
const MaxKeySize = blake2b.Size

// KeyedPRNG expands a key into an unbounded stream with the BLAKE2b XOF.
// Two instances with the same key produce the same stream, which makes
// DeriveKeyPair and seeded self-tests reproducible.
//
// A KeyedPRNG is not safe for concurrent use: interleaved reads still return
// stream bytes, but which caller gets which bytes is no longer determined.
type KeyedPRNG struct {
	xof blake2b.XOF
}

// NewKeyedPRNG returns a KeyedPRNG keyed with key, which must have at most
// [MaxKeySize] bytes. An empty key yields a fixed public stream, only fit
// for tests.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	if len(key) > MaxKeySize {
		return nil, fmt.Errorf("cannot NewKeyedPRNG: key has %d bytes, at most %d are supported", len(key), MaxKeySize)
	}
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, key)
	if err != nil {
		return nil, fmt.Errorf("cannot NewKeyedPRNG: %w", err)
	}
	return &KeyedPRNG{xof: xof}, nil
}

// Read reads the next len(sum) bytes of the stream.
func (prng *KeyedPRNG) Read(sum []byte) (n int, err error) {
	return prng.xof.Read(sum)
}
