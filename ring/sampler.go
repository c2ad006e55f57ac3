package ring

import (
	"github.com/tuneinsight/kyber/utils/sampling"
)

// Sampler is an interface for random samplers of normal-domain polynomials.
type Sampler interface {
	Read(pol *Poly) (err error)
	ReadNew() (pol *Poly, err error)
	ReadVector(v Vector[Poly]) (err error)
}

// NTTSampler is an interface for random samplers of NTT-domain polynomials.
type NTTSampler interface {
	Read(pol *NTTPoly) (err error)
	ReadNew() (pol *NTTPoly, err error)
	ReadMatrix(m Matrix) (err error)
}

type baseSampler struct {
	prng sampling.PRNG
}
