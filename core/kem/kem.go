// Package kem implements a Kyber-style key-encapsulation mechanism over the
// module lattice of the ring package: key generation, encapsulation of a
// random message under a public key, and its decapsulation with the
// matching secret key.
//
// All randomness is read from an explicit [sampling.PRNG]; the same source
// and the same parameters always yield the same keys and ciphertexts.
package kem

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/kyber/ring"
	"github.com/tuneinsight/kyber/utils/buffer"
	"github.com/tuneinsight/kyber/utils/sampling"
)

// KeyGen generates a new key pair, reading exactly
// params.KeyGenRandomBytes() bytes from prng.
func KeyGen(params Parameters, prng sampling.PRNG) (pk *PublicKey, sk *SecretKey, err error) {
	return NewKeyGenerator(params, prng).GenKeyPairNew()
}

// Encapsulate encapsulates a fresh random message under pk, reading exactly
// params.EncapsulateRandomBytes() bytes from prng. The message is the shared
// secret.
func Encapsulate(params Parameters, pk *PublicKey, prng sampling.PRNG) (ct *Ciphertext, ss *Message, err error) {
	return NewEncapsulator(params, pk, prng).EncapsulateNew()
}

// Decapsulate recovers the shared secret of ct with sk. A shared secret
// different from the encapsulated one is a possible outcome of the scheme
// and is not reported as an error.
func Decapsulate(params Parameters, sk *SecretKey, ct *Ciphertext) (ss *Message, err error) {
	return NewDecapsulator(params, sk).DecapsulateNew(ct)
}

// ExpandMatrix derives the public matrix from a public seed.
// Entry (i, j) is rejection-sampled from SHAKE128(seed || j || i).
func ExpandMatrix(seed []byte, A ring.Matrix) (err error) {
	if len(seed) != SeedSize {
		return fmt.Errorf("cannot ExpandMatrix: %w: seed has %d bytes, want %d", ring.ErrLengthMismatch, len(seed), SeedSize)
	}
	for i := range A {
		for j := range A[i] {
			sampler := ring.NewUniformSampler(sampling.NewShake128(seed, byte(j), byte(i)))
			if err = sampler.Read(&A[i][j]); err != nil {
				return fmt.Errorf("cannot ExpandMatrix: %w", err)
			}
		}
	}
	return
}

// writeBytes writes b on w following the buffer.Writer convention of the
// WriteTo methods of this package.
func writeBytes(w io.Writer, b []byte) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		if n, err = buffer.WriteUint8Slice(w, b); err != nil {
			return
		}
		return n, w.Flush()
	default:
		return writeBytes(bufio.NewWriter(w), b)
	}
}

// readBytes fills b from r following the buffer.Reader convention of the
// ReadFrom methods of this package.
func readBytes(r io.Reader, b []byte) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:
		return buffer.ReadUint8Slice(r, b)
	default:
		return readBytes(bufio.NewReader(r), b)
	}
}

func checkSize(op string, have, want int) error {
	if have != want {
		return fmt.Errorf("cannot %s: %w: got %d bytes, want %d", op, ring.ErrLengthMismatch, have, want)
	}
	return nil
}
