// Package sampling implements the randomness sources consumed by the samplers
// of the ring package.
package sampling

import (
	"errors"
	"fmt"
	"io"
)

// ErrInsufficientEntropy is returned when a randomness source
// cannot deliver the requested number of bytes.
var ErrInsufficientEntropy = errors.New("insufficient entropy")

// Read fills buf with bytes read from prng. Any failure, including a short
// read, is reported as an error wrapping [ErrInsufficientEntropy].
func Read(prng PRNG, buf []byte) (err error) {
	if prng == nil {
		return fmt.Errorf("cannot Read: %w: nil randomness source", ErrInsufficientEntropy)
	}
	var n int
	if n, err = io.ReadFull(prng, buf); err != nil {
		return fmt.Errorf("cannot Read: %w: got %d of %d bytes: %w", ErrInsufficientEntropy, n, len(buf), err)
	}
	return nil
}
