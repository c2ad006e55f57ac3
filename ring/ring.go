// Package ring implements arithmetic over the polynomial ring Z_q[X]/(X^N+1)
// with q = 3329 and N = 256: modular reduction, the number-theoretic
// transform, module (vector and matrix) arithmetic, samplers and the
// byte encodings of ring elements.
package ring

import (
	"errors"
)

const (
	// Q is the prime modulus of the ring.
	Q = 3329
	// N is the degree of the cyclotomic polynomial X^N+1.
	N = 256
	// LogN is log2(N).
	LogN = 8
)

var (
	// ErrArithmeticOverflow is returned when an intermediate value exceeds
	// the input range of a reduction.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrDomainMismatch is returned when normal-domain and NTT-domain
	// elements are combined.
	ErrDomainMismatch = errors.New("domain mismatch")
	// ErrLengthMismatch is returned when vectors, matrices or buffers have
	// inconsistent dimensions.
	ErrLengthMismatch = errors.New("length mismatch")
	// ErrInvalidEncoding is returned when a byte encoding carries a
	// coefficient outside [0, Q).
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// Domain identifies the representation of a ring element.
type Domain uint8

const (
	// Normal is the coefficient representation.
	Normal = Domain(iota)
	// Evaluation is the NTT representation.
	Evaluation
)

func (d Domain) String() string {
	switch d {
	case Normal:
		return "normal"
	case Evaluation:
		return "ntt"
	default:
		return "unknown"
	}
}
