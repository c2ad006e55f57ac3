package kem

import (
	"fmt"

	"github.com/tuneinsight/kyber/ring"
	"github.com/tuneinsight/kyber/utils/sampling"
)

// KeyGenerator is a structure that stores the elements required to create new keys.
type KeyGenerator struct {
	params Parameters
	prng   sampling.PRNG
	xs     *ring.BinomialSampler
}

// NewKeyGenerator creates a new KeyGenerator reading its randomness from prng.
func NewKeyGenerator(params Parameters, prng sampling.PRNG) *KeyGenerator {
	xs, err := ring.NewBinomialSampler(prng, params.Eta1())
	if err != nil {
		panic(fmt.Errorf("cannot NewKeyGenerator: %w", err))
	}
	return &KeyGenerator{
		params: params,
		prng:   prng,
		xs:     xs,
	}
}

// GenKeyPairNew generates a new key pair. It reads, in this order, the
// public seed of the matrix, the secret s and the error e.
func (kgen KeyGenerator) GenKeyPairNew() (pk *PublicKey, sk *SecretKey, err error) {

	k := kgen.params.K()

	seed := make([]byte, SeedSize)
	if err = sampling.Read(kgen.prng, seed); err != nil {
		return nil, nil, fmt.Errorf("cannot GenKeyPairNew: seed: %w", err)
	}

	A := ring.NewMatrix(k)
	if err = ExpandMatrix(seed, A); err != nil {
		return nil, nil, fmt.Errorf("cannot GenKeyPairNew: %w", err)
	}

	s := ring.NewVector[ring.Poly](k)
	if err = kgen.xs.ReadVector(s); err != nil {
		return nil, nil, fmt.Errorf("cannot GenKeyPairNew: s: %w", err)
	}

	e := ring.NewVector[ring.Poly](k)
	if err = kgen.xs.ReadVector(e); err != nil {
		return nil, nil, fmt.Errorf("cannot GenKeyPairNew: e: %w", err)
	}

	pk, sk = NewPublicKey(kgen.params), NewSecretKey(kgen.params)
	if err = kgen.GenKeyPair(A, s, e, pk, sk); err != nil {
		return nil, nil, err
	}
	return
}

// GenKeyPair computes the key pair for the given matrix A (NTT domain),
// secret s and error e (normal domain): sk stores NTT(s) and pk stores A
// and the NTT of t = A*s + e.
func (kgen KeyGenerator) GenKeyPair(A ring.Matrix, s, e ring.Vector[ring.Poly], pk *PublicKey, sk *SecretKey) (err error) {

	k := kgen.params.K()

	if A.Rows() != k || len(s) != k || len(e) != k || pk.K() != k || sk.K() != k {
		return fmt.Errorf("cannot GenKeyPair: %w: want rank %d, got A=%d s=%d e=%d pk=%d sk=%d",
			ring.ErrLengthMismatch, k, A.Rows(), len(s), len(e), pk.K(), sk.K())
	}

	if err = ring.NTTVector(s, sk.S); err != nil {
		return fmt.Errorf("cannot GenKeyPair: %w", err)
	}

	if err = ring.MulMatrixVector(A, sk.S, pk.T); err != nil {
		return fmt.Errorf("cannot GenKeyPair: %w", err)
	}

	eNTT := ring.NewVector[ring.NTTPoly](k)
	if err = ring.NTTVector(e, eNTT); err != nil {
		return fmt.Errorf("cannot GenKeyPair: %w", err)
	}

	if err = ring.AddVector(pk.T, eNTT, pk.T); err != nil {
		return fmt.Errorf("cannot GenKeyPair: %w", err)
	}

	pk.A = A.CopyNew()

	return
}
