package kem

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/tuneinsight/kyber/ring"
)

// SeedSize is the size in bytes of the public seed from which the matrix
// of a public key is expanded.
const SeedSize = 32

// MessageSize is the size in bytes of an encapsulated message, which is also
// the size of the shared secret.
const MessageSize = ring.MessageBytes

// ParametersLiteral is a literal representation of the KEM parameters. It has
// public fields and is used to express unchecked user-defined parameters
// literally into Go programs. The [NewParametersFromLiteral] function is used
// to generate the actual checked parameters from the literal representation.
//
// The modulus Q and the ring degree N are fixed by the ring package.
type ParametersLiteral struct {
	// K is the module rank: keys and ciphertexts are vectors of K polynomials.
	K int `json:"K"`
	// Eta1 is the parameter of the centered binomial distribution of the
	// secret and of the key-generation error.
	Eta1 int `json:"Eta1"`
	// Eta2 is the parameter of the centered binomial distribution of the
	// encapsulation randomness and errors.
	Eta2 int `json:"Eta2"`
}

// Kyber512 is the level-1 parameter set: q=3329, n=256, k=2, eta1=3, eta2=2.
var Kyber512 = ParametersLiteral{
	K:    2,
	Eta1: 3,
	Eta2: 2,
}

// Parameters represents a set of checked KEM parameters. Its fields are
// private and immutable. See [ParametersLiteral] for user-specified parameters.
type Parameters struct {
	k    int
	eta1 int
	eta2 int
}

// NewParametersFromLiteral instantiates a set of KEM parameters from a
// [ParametersLiteral] definition. Only the [Kyber512] set is supported.
func NewParametersFromLiteral(paramDef ParametersLiteral) (params Parameters, err error) {
	if !cmp.Equal(paramDef, Kyber512) {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: unsupported parameters %+v, only %+v is supported", paramDef, Kyber512)
	}
	return Parameters{
		k:    paramDef.K,
		eta1: paramDef.Eta1,
		eta2: paramDef.Eta2,
	}, nil
}

// ParametersLiteral returns the [ParametersLiteral] of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		K:    p.k,
		Eta1: p.eta1,
		Eta2: p.eta2,
	}
}

// K returns the module rank.
func (p Parameters) K() int {
	return p.k
}

// N returns the ring degree.
func (p Parameters) N() int {
	return ring.N
}

// Q returns the ring modulus.
func (p Parameters) Q() int {
	return ring.Q
}

// Eta1 returns the parameter of the key-generation noise.
func (p Parameters) Eta1() int {
	return p.eta1
}

// Eta2 returns the parameter of the encapsulation noise.
func (p Parameters) Eta2() int {
	return p.eta2
}

// PublicKeySize returns the size in bytes of a serialized [PublicKey]:
// the K x K matrix followed by the K polynomials of t.
func (p Parameters) PublicKeySize() int {
	return (p.k*p.k + p.k) * ring.PolyBytes
}

// SecretKeySize returns the size in bytes of a serialized [SecretKey].
func (p Parameters) SecretKeySize() int {
	return p.k * ring.PolyBytes
}

// CiphertextSize returns the size in bytes of a serialized [Ciphertext]:
// the K polynomials of u followed by v.
func (p Parameters) CiphertextSize() int {
	return (p.k + 1) * ring.PolyBytes
}

// KeyGenRandomBytes returns the number of bytes [KeyGen] reads from its
// randomness source.
func (p Parameters) KeyGenRandomBytes() int {
	return SeedSize + 2*p.k*ring.BinomialBytes(p.eta1)
}

// EncapsulateRandomBytes returns the number of bytes [Encapsulate] reads
// from its randomness source.
func (p Parameters) EncapsulateRandomBytes() int {
	return MessageSize + (2*p.k+1)*ring.BinomialBytes(p.eta2)
}

// Equal returns true if the two parameter sets are equal.
func (p Parameters) Equal(other *Parameters) bool {
	return cmp.Equal(p.ParametersLiteral(), other.ParametersLiteral())
}

// String returns a short description of the parameters.
func (p Parameters) String() string {
	return fmt.Sprintf("Q=%d/N=%d/K=%d/Eta1=%d/Eta2=%d", p.Q(), p.N(), p.k, p.eta1, p.eta2)
}

// MarshalBinary returns a []byte representation of the parameter set.
// This representation corresponds to the MarshalJSON representation.
func (p Parameters) MarshalBinary() ([]byte, error) {
	return p.MarshalJSON()
}

// UnmarshalBinary decodes a []byte into a parameter set struct.
func (p *Parameters) UnmarshalBinary(data []byte) (err error) {
	return p.UnmarshalJSON(data)
}

// MarshalJSON returns a JSON representation of this parameter set. See Marshal from the [encoding/json] package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See Unmarshal from the [encoding/json] package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return err
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
