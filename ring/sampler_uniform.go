package ring

import (
	"fmt"

	"github.com/tuneinsight/kyber/utils/sampling"
)

// uniformBufferSize is the rate of SHAKE128, so that each refill of the
// buffer reads one block of the expansion stream.
const uniformBufferSize = 168

// UniformSampler wraps a sampling.PRNG and represents the state of a sampler
// of polynomials with coefficients uniform in [0, Q).
// Each three bytes of randomness yield two 12-bit candidates, and candidates
// greater than or equal to Q are rejected.
type UniformSampler struct {
	baseSampler
	buf [uniformBufferSize]byte
	ptr int
}

// NewUniformSampler creates a new instance of UniformSampler from a PRNG.
func NewUniformSampler(prng sampling.PRNG) (u *UniformSampler) {
	u = new(UniformSampler)
	u.prng = prng
	u.ptr = uniformBufferSize
	return
}

// WithPRNG returns a fresh sampler reading its randomness from prng.
func (u *UniformSampler) WithPRNG(prng sampling.PRNG) *UniformSampler {
	return NewUniformSampler(prng)
}

// Read samples pol. The output is uniform in the NTT domain.
// Bytes left in the internal buffer are used by the next call.
func (u *UniformSampler) Read(pol *NTTPoly) (err error) {
	for i := 0; i < N; {

		if u.ptr == uniformBufferSize {
			if err = sampling.Read(u.prng, u.buf[:]); err != nil {
				return fmt.Errorf("cannot UniformSampler.Read: %w", err)
			}
			u.ptr = 0
		}

		b := u.buf[u.ptr : u.ptr+3]
		u.ptr += 3

		d1 := uint16(b[0]) | uint16(b[1]&0x0f)<<8
		d2 := uint16(b[1]>>4) | uint16(b[2])<<4

		if d1 < Q {
			pol[i] = d1
			i++
		}

		if d2 < Q && i < N {
			pol[i] = d2
			i++
		}
	}
	return
}

// ReadNew samples a newly allocated polynomial.
func (u *UniformSampler) ReadNew() (pol *NTTPoly, err error) {
	pol = new(NTTPoly)
	if err = u.Read(pol); err != nil {
		return nil, err
	}
	return
}

// ReadMatrix samples the entries of m in row-major order from the same stream.
func (u *UniformSampler) ReadMatrix(m Matrix) (err error) {
	for i := range m {
		for j := range m[i] {
			if err = u.Read(&m[i][j]); err != nil {
				return
			}
		}
	}
	return
}
