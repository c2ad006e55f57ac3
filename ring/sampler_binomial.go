package ring

import (
	"fmt"

	"github.com/tuneinsight/kyber/utils"
	"github.com/tuneinsight/kyber/utils/sampling"
)

// MaxEta is the largest supported parameter of the centered binomial distribution.
const MaxEta = 8

// BinomialBytes returns the number of random bytes consumed to sample one
// polynomial from the centered binomial distribution of parameter eta.
func BinomialBytes(eta int) int {
	return 64 * eta
}

// BinomialSampler keeps the state of a sampler of polynomials whose
// coefficients follow the centered binomial distribution of parameter Eta,
// supported on [-Eta, Eta] with variance Eta/2.
type BinomialSampler struct {
	baseSampler
	eta int
	buf []byte
}

// NewBinomialSampler creates a new BinomialSampler reading its randomness from prng.
// It returns an error if eta is not in [1, MaxEta].
func NewBinomialSampler(prng sampling.PRNG, eta int) (s *BinomialSampler, err error) {
	if eta < 1 || eta > MaxEta {
		return nil, fmt.Errorf("cannot NewBinomialSampler: eta=%d must be in [1, %d]", eta, MaxEta)
	}
	return &BinomialSampler{
		baseSampler: baseSampler{prng: prng},
		eta:         eta,
		buf:         make([]byte, BinomialBytes(eta)),
	}, nil
}

// Eta returns the parameter of the distribution.
func (s *BinomialSampler) Eta() int {
	return s.eta
}

// WithPRNG returns a copy of the sampler reading its randomness from prng.
func (s *BinomialSampler) WithPRNG(prng sampling.PRNG) *BinomialSampler {
	return &BinomialSampler{
		baseSampler: baseSampler{prng: prng},
		eta:         s.eta,
		buf:         make([]byte, len(s.buf)),
	}
}

// Read samples pol, consuming exactly BinomialBytes(Eta) bytes.
// It returns an error wrapping [sampling.ErrInsufficientEntropy] if the
// randomness source fails.
func (s *BinomialSampler) Read(pol *Poly) (err error) {
	if err = sampling.Read(s.prng, s.buf); err != nil {
		return fmt.Errorf("cannot BinomialSampler.Read: %w", err)
	}
	SampleBinomial(s.buf, s.eta, pol)
	return
}

// ReadNew samples a newly allocated polynomial.
func (s *BinomialSampler) ReadNew() (pol *Poly, err error) {
	pol = new(Poly)
	if err = s.Read(pol); err != nil {
		return nil, err
	}
	return
}

// ReadVector samples the polynomials of v in order.
func (s *BinomialSampler) ReadVector(v Vector[Poly]) (err error) {
	for i := range v {
		if err = s.Read(&v[i]); err != nil {
			return
		}
	}
	return
}

// SampleBinomial maps b, of length at least BinomialBytes(eta), to pol.
// Coefficient i is HW(x) - HW(y) mod Q where x and y are the consecutive
// eta-bit chunks starting at bit 2*eta*i of b, read least significant bit first.
func SampleBinomial(b []byte, eta int, pol *Poly) {
	_ = b[BinomialBytes(eta)-1]
	mask := uint64(1)<<eta - 1
	for i := 0; i < N; i++ {
		w := window(b, 2*eta*i, 2*eta)
		x := utils.HammingWeight64(w & mask)
		y := utils.HammingWeight64(w >> eta)
		pol[i] = CSub(uint16(x), uint16(y))
	}
}

// window returns the width bits of b starting at bit off, with width <= 16.
func window(b []byte, off, width int) (w uint64) {
	for k, j := 0, off>>3; k < 3 && j < len(b); k, j = k+1, j+1 {
		w |= uint64(b[j]) << (8 * k)
	}
	return (w >> (off & 7)) & (uint64(1)<<width - 1)
}
