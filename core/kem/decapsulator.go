package kem

import (
	"fmt"

	"github.com/tuneinsight/kyber/ring"
)

// Decapsulator is a structure that recovers the messages encapsulated under
// the public key of a secret key.
type Decapsulator struct {
	params Parameters
	sk     *SecretKey
}

// NewDecapsulator instantiates a new Decapsulator for sk.
func NewDecapsulator(params Parameters, sk *SecretKey) *Decapsulator {
	if sk == nil || sk.K() != params.K() {
		panic(fmt.Errorf("cannot NewDecapsulator: %w: secret key does not match the parameters", ring.ErrLengthMismatch))
	}
	return &Decapsulator{
		params: params,
		sk:     sk,
	}
}

// Decrypt writes on w the noisy encoding of the message of ct:
// w = v - INTT(s^T * NTT(u)) = Encode(m) + noise.
func (dec Decapsulator) Decrypt(ct *Ciphertext, w *ring.Poly) (err error) {

	k := dec.params.K()

	if len(ct.U) != k {
		return fmt.Errorf("cannot Decrypt: %w: ciphertext has rank %d, want %d", ring.ErrLengthMismatch, len(ct.U), k)
	}

	uNTT := ring.NewVector[ring.NTTPoly](k)
	if err = ring.NTTVector(ct.U, uNTT); err != nil {
		return fmt.Errorf("cannot Decrypt: %w", err)
	}

	var suNTT ring.NTTPoly
	if err = ring.InnerProduct(dec.sk.S, uNTT, &suNTT); err != nil {
		return fmt.Errorf("cannot Decrypt: %w", err)
	}

	var su ring.Poly
	ring.INTT(&suNTT, &su)
	ring.Sub(&ct.V, &su, w)

	return
}

// DecapsulateNew recovers the message of ct.
func (dec Decapsulator) DecapsulateNew(ct *Ciphertext) (m *Message, err error) {
	var w ring.Poly
	if err = dec.Decrypt(ct, &w); err != nil {
		return nil, fmt.Errorf("cannot DecapsulateNew: %w", err)
	}
	m = new(Message)
	ring.DecodeMessage(&w, (*[MessageSize]byte)(m))
	return
}
