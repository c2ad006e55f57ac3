// Package kyber512 exposes the level-1 parameter set of the KEM of the
// core/kem package through the [kem.Scheme] interface of hpqc.
//
// The shared key is the 32-byte encapsulated message itself; no key
// derivation function is applied and ciphertexts are not re-encrypted on
// decapsulation, so the scheme is only IND-CPA secure.
package kyber512

import (
	"crypto/hmac"
	"fmt"

	"github.com/katzenpost/hpqc/kem"
	"github.com/katzenpost/hpqc/kem/pem"

	corekem "github.com/tuneinsight/kyber/core/kem"
	"github.com/tuneinsight/kyber/utils/sampling"
)

// Name is the name of the scheme, also used as the PEM block type prefix.
const Name = "Kyber512-CPA"

var params = func() corekem.Parameters {
	p, err := corekem.NewParametersFromLiteral(corekem.Kyber512)
	if err != nil {
		panic(err)
	}
	return p
}()

const (
	// SeedSize is the size of the seed of DeriveKeyPair.
	SeedSize = 32
	// SharedKeySize is the size of the shared key.
	SharedKeySize = corekem.MessageSize
)

var (
	// CiphertextSize is the size of a ciphertext.
	CiphertextSize = params.CiphertextSize()
	// PublicKeySize is the size of a public key.
	PublicKeySize = params.PublicKeySize()
	// PrivateKeySize is the size of a private key: the secret key followed by the public key.
	PrivateKeySize = params.SecretKeySize() + PublicKeySize
)

// tell the type checker that we obey these interfaces
var _ kem.Scheme = (*scheme)(nil)
var _ kem.PublicKey = (*PublicKey)(nil)
var _ kem.PrivateKey = (*PrivateKey)(nil)

var sch kem.Scheme = &scheme{}

// Scheme returns a KEM interface.
func Scheme() kem.Scheme { return sch }

// PublicKey is an hpqc public key.
type PublicKey struct {
	scheme *scheme
	pk     *corekem.PublicKey
}

// Scheme returns the scheme of the key.
func (p *PublicKey) Scheme() kem.Scheme {
	return p.scheme
}

// Key returns the underlying public key.
func (p *PublicKey) Key() *corekem.PublicKey {
	return p.pk
}

// MarshalText encodes the key as a PEM block.
func (p *PublicKey) MarshalText() (text []byte, err error) {
	return pem.ToPublicPEMBytes(p), nil
}

// MarshalBinary encodes the key as params.PublicKeySize() bytes.
func (p *PublicKey) MarshalBinary() ([]byte, error) {
	return p.pk.MarshalBinary()
}

// Equal returns true if pubkey is a key of this scheme with the same value.
func (p *PublicKey) Equal(pubkey kem.PublicKey) bool {
	other, ok := pubkey.(*PublicKey)
	if !ok || other.scheme != p.scheme {
		return false
	}
	return equalBinary(p, other)
}

// PrivateKey is an hpqc private key. It embeds the matching public key.
type PrivateKey struct {
	scheme *scheme
	sk     *corekem.SecretKey
	pk     *corekem.PublicKey
}

// Scheme returns the scheme of the key.
func (p *PrivateKey) Scheme() kem.Scheme {
	return p.scheme
}

// Key returns the underlying secret key.
func (p *PrivateKey) Key() *corekem.SecretKey {
	return p.sk
}

// MarshalBinary encodes the secret key followed by the public key.
func (p *PrivateKey) MarshalBinary() ([]byte, error) {
	skBytes, err := p.sk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	pkBytes, err := p.pk.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return append(skBytes, pkBytes...), nil
}

// Equal returns true if privkey is a key of this scheme with the same value.
func (p *PrivateKey) Equal(privkey kem.PrivateKey) bool {
	other, ok := privkey.(*PrivateKey)
	if !ok || other.scheme != p.scheme {
		return false
	}
	return equalBinary(p, other)
}

// Public returns the public key of the pair.
func (p *PrivateKey) Public() kem.PublicKey {
	return &PublicKey{
		scheme: p.scheme,
		pk:     p.pk,
	}
}

func equalBinary(a, b interface{ MarshalBinary() ([]byte, error) }) bool {
	x, err := a.MarshalBinary()
	if err != nil {
		return false
	}
	y, err := b.MarshalBinary()
	if err != nil {
		return false
	}
	return hmac.Equal(x, y)
}

type scheme struct {
}

func (s *scheme) Name() string {
	return Name
}

func (s *scheme) newKeyPair(prng sampling.PRNG) (*PublicKey, *PrivateKey, error) {
	pk, sk, err := corekem.KeyGen(params, prng)
	if err != nil {
		return nil, nil, err
	}
	return &PublicKey{
			scheme: s,
			pk:     pk,
		}, &PrivateKey{
			scheme: s,
			sk:     sk,
			pk:     pk,
		}, nil
}

func (s *scheme) GenerateKeyPair() (kem.PublicKey, kem.PrivateKey, error) {
	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, nil, err
	}
	return s.newKeyPair(prng)
}

func (s *scheme) Encapsulate(pk kem.PublicKey) (ct, ss []byte, err error) {
	pub, ok := pk.(*PublicKey)
	if !ok || pub.scheme != s {
		return nil, nil, kem.ErrTypeMismatch
	}

	prng, err := sampling.NewPRNG()
	if err != nil {
		return nil, nil, err
	}

	ciphertext, m, err := corekem.Encapsulate(params, pub.pk, prng)
	if err != nil {
		return nil, nil, err
	}

	if ct, err = ciphertext.MarshalBinary(); err != nil {
		return nil, nil, err
	}

	return ct, m[:], nil
}

func (s *scheme) Decapsulate(myPrivkey kem.PrivateKey, ct []byte) ([]byte, error) {
	priv, ok := myPrivkey.(*PrivateKey)
	if !ok || priv.scheme != s {
		return nil, kem.ErrTypeMismatch
	}
	if len(ct) != CiphertextSize {
		return nil, kem.ErrCiphertextSize
	}

	ciphertext := corekem.NewCiphertext(params)
	if err := ciphertext.UnmarshalBinary(ct); err != nil {
		return nil, fmt.Errorf("%w: %w", kem.ErrCipherText, err)
	}

	m, err := corekem.Decapsulate(params, priv.sk, ciphertext)
	if err != nil {
		return nil, err
	}
	return m[:], nil
}

func (s *scheme) UnmarshalBinaryPublicKey(b []byte) (kem.PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, kem.ErrPubKeySize
	}
	pk := corekem.NewPublicKey(params)
	if err := pk.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %w", kem.ErrPubKey, err)
	}
	return &PublicKey{
		scheme: s,
		pk:     pk,
	}, nil
}

func (s *scheme) UnmarshalBinaryPrivateKey(b []byte) (kem.PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return nil, kem.ErrPrivKeySize
	}
	sk := corekem.NewSecretKey(params)
	if err := sk.UnmarshalBinary(b[:params.SecretKeySize()]); err != nil {
		return nil, err
	}
	pk := corekem.NewPublicKey(params)
	if err := pk.UnmarshalBinary(b[params.SecretKeySize():]); err != nil {
		return nil, fmt.Errorf("%w: %w", kem.ErrPubKey, err)
	}
	return &PrivateKey{
		scheme: s,
		sk:     sk,
		pk:     pk,
	}, nil
}

func (s *scheme) UnmarshalTextPublicKey(text []byte) (kem.PublicKey, error) {
	return pem.FromPublicPEMBytes(text, s)
}

func (s *scheme) UnmarshalTextPrivateKey(text []byte) (kem.PrivateKey, error) {
	return pem.FromPrivatePEMBytes(text, s)
}

func (s *scheme) CiphertextSize() int {
	return CiphertextSize
}

func (s *scheme) SharedKeySize() int {
	return SharedKeySize
}

func (s *scheme) PrivateKeySize() int {
	return PrivateKeySize
}

func (s *scheme) PublicKeySize() int {
	return PublicKeySize
}

// DeriveKeyPair deterministically derives a key pair from seed, which keys
// the BLAKE2b stream read by the key generation.
func (s *scheme) DeriveKeyPair(seed []byte) (kem.PublicKey, kem.PrivateKey) {
	if len(seed) != SeedSize {
		panic(kem.ErrSeedSize)
	}
	prng, err := sampling.NewKeyedPRNG(seed)
	if err != nil {
		panic(err)
	}
	pk, sk, err := s.newKeyPair(prng)
	if err != nil {
		panic(err)
	}
	return pk, sk
}

func (s *scheme) SeedSize() int {
	return SeedSize
}
