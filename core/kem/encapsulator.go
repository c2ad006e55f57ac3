package kem

import (
	"fmt"

	"github.com/tuneinsight/kyber/ring"
	"github.com/tuneinsight/kyber/utils/sampling"
)

// Encapsulator is a structure that encapsulates random messages under a public key.
type Encapsulator struct {
	params Parameters
	pk     *PublicKey
	prng   sampling.PRNG
	xe     *ring.BinomialSampler
}

// NewEncapsulator creates a new Encapsulator for pk reading its randomness from prng.
func NewEncapsulator(params Parameters, pk *PublicKey, prng sampling.PRNG) *Encapsulator {

	if pk == nil || pk.K() != params.K() || pk.A.Rows() != params.K() {
		panic(fmt.Errorf("cannot NewEncapsulator: %w: public key does not match the parameters", ring.ErrLengthMismatch))
	}

	xe, err := ring.NewBinomialSampler(prng, params.Eta2())
	if err != nil {
		panic(fmt.Errorf("cannot NewEncapsulator: %w", err))
	}

	return &Encapsulator{
		params: params,
		pk:     pk,
		prng:   prng,
		xe:     xe,
	}
}

// WithPRNG returns a copy of the Encapsulator reading its randomness from prng.
func (enc Encapsulator) WithPRNG(prng sampling.PRNG) *Encapsulator {
	return &Encapsulator{
		params: enc.params,
		pk:     enc.pk,
		prng:   prng,
		xe:     enc.xe.WithPRNG(prng),
	}
}

// EncapsulateNew encapsulates a fresh message and returns the ciphertext and
// the message. It reads, in this order, the message, r, e1 and e2.
func (enc Encapsulator) EncapsulateNew() (ct *Ciphertext, m *Message, err error) {

	k := enc.params.K()

	m = new(Message)
	if err = sampling.Read(enc.prng, m[:]); err != nil {
		return nil, nil, fmt.Errorf("cannot EncapsulateNew: message: %w", err)
	}

	r := ring.NewVector[ring.Poly](k)
	if err = enc.xe.ReadVector(r); err != nil {
		return nil, nil, fmt.Errorf("cannot EncapsulateNew: r: %w", err)
	}

	e1 := ring.NewVector[ring.Poly](k)
	if err = enc.xe.ReadVector(e1); err != nil {
		return nil, nil, fmt.Errorf("cannot EncapsulateNew: e1: %w", err)
	}

	e2 := new(ring.Poly)
	if err = enc.xe.Read(e2); err != nil {
		return nil, nil, fmt.Errorf("cannot EncapsulateNew: e2: %w", err)
	}

	ct = NewCiphertext(enc.params)
	if err = enc.Encrypt(m, r, e1, e2, ct); err != nil {
		return nil, nil, err
	}
	return
}

// Encrypt encrypts m with the randomness r and the errors e1, e2, all in the
// normal domain: ct.U = INTT(A^T * NTT(r)) + e1 and
// ct.V = INTT(t^T * NTT(r)) + e2 + Encode(m).
func (enc Encapsulator) Encrypt(m *Message, r, e1 ring.Vector[ring.Poly], e2 *ring.Poly, ct *Ciphertext) (err error) {

	k := enc.params.K()

	if len(r) != k || len(e1) != k || len(ct.U) != k {
		return fmt.Errorf("cannot Encrypt: %w: want rank %d, got r=%d e1=%d u=%d",
			ring.ErrLengthMismatch, k, len(r), len(e1), len(ct.U))
	}

	rNTT := ring.NewVector[ring.NTTPoly](k)
	if err = ring.NTTVector(r, rNTT); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	uNTT := ring.NewVector[ring.NTTPoly](k)
	if err = ring.MulMatrixTransposeVector(enc.pk.A, rNTT, uNTT); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	if err = ring.INTTVector(uNTT, ct.U); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	if err = ring.AddVector(ct.U, e1, ct.U); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	var vNTT ring.NTTPoly
	if err = ring.InnerProduct(enc.pk.T, rNTT, &vNTT); err != nil {
		return fmt.Errorf("cannot Encrypt: %w", err)
	}

	var mPoly ring.Poly
	ring.EncodeMessage((*[MessageSize]byte)(m), &mPoly)

	ring.INTT(&vNTT, &ct.V)
	ring.Add(&ct.V, e2, &ct.V)
	ring.Add(&ct.V, &mPoly, &ct.V)

	return
}
