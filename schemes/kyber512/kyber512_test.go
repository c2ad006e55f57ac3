package kyber512

import (
	"bytes"
	"testing"

	"github.com/katzenpost/hpqc/kem"
	"github.com/katzenpost/hpqc/kem/pem"
	"github.com/stretchr/testify/require"
)

func TestScheme(t *testing.T) {

	s := Scheme()

	t.Run("Sizes", func(t *testing.T) {
		require.Equal(t, "Kyber512-CPA", s.Name())
		require.Equal(t, 1152, s.CiphertextSize())
		require.Equal(t, 32, s.SharedKeySize())
		require.Equal(t, 2304, s.PublicKeySize())
		require.Equal(t, 3072, s.PrivateKeySize())
		require.Equal(t, 32, s.SeedSize())
	})

	t.Run("EncapsulateDecapsulate", func(t *testing.T) {
		pk, sk, err := s.GenerateKeyPair()
		require.NoError(t, err)

		ct, ss, err := s.Encapsulate(pk)
		require.NoError(t, err)
		require.Len(t, ct, s.CiphertextSize())
		require.Len(t, ss, s.SharedKeySize())

		ss2, err := s.Decapsulate(sk, ct)
		require.NoError(t, err)
		require.Equal(t, ss, ss2)

		require.True(t, sk.Public().Equal(pk))
	})

	t.Run("DeriveKeyPair", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0x42}, s.SeedSize())

		pk1, sk1 := s.DeriveKeyPair(seed)
		pk2, sk2 := s.DeriveKeyPair(seed)
		require.True(t, pk1.Equal(pk2))
		require.True(t, sk1.Equal(sk2))

		pk3, _ := s.DeriveKeyPair(bytes.Repeat([]byte{0x43}, s.SeedSize()))
		require.False(t, pk1.Equal(pk3))

		require.PanicsWithValue(t, kem.ErrSeedSize, func() { s.DeriveKeyPair(seed[1:]) })
	})

	t.Run("MarshalBinary", func(t *testing.T) {
		pk, sk, err := s.GenerateKeyPair()
		require.NoError(t, err)

		pkBytes, err := pk.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, pkBytes, s.PublicKeySize())

		pk2, err := s.UnmarshalBinaryPublicKey(pkBytes)
		require.NoError(t, err)
		require.True(t, pk.Equal(pk2))

		skBytes, err := sk.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, skBytes, s.PrivateKeySize())

		sk2, err := s.UnmarshalBinaryPrivateKey(skBytes)
		require.NoError(t, err)
		require.True(t, sk.Equal(sk2))
		require.True(t, sk2.Public().Equal(pk))

		_, err = s.UnmarshalBinaryPublicKey(pkBytes[1:])
		require.ErrorIs(t, err, kem.ErrPubKeySize)
		_, err = s.UnmarshalBinaryPrivateKey(skBytes[1:])
		require.ErrorIs(t, err, kem.ErrPrivKeySize)

		bad := bytes.Clone(pkBytes)
		bad[0], bad[1] = 0xff, 0xff
		_, err = s.UnmarshalBinaryPublicKey(bad)
		require.ErrorIs(t, err, kem.ErrPubKey)
	})

	t.Run("MarshalText", func(t *testing.T) {
		pk, sk, err := s.GenerateKeyPair()
		require.NoError(t, err)

		text, err := pk.MarshalText()
		require.NoError(t, err)
		require.Contains(t, string(text), "KYBER512-CPA PUBLIC KEY")

		pk2, err := s.UnmarshalTextPublicKey(text)
		require.NoError(t, err)
		require.True(t, pk.Equal(pk2))

		skText := pem.ToPrivatePEMBytes(sk)
		sk2, err := s.UnmarshalTextPrivateKey(skText)
		require.NoError(t, err)
		require.True(t, sk.Equal(sk2))

		_, err = s.UnmarshalTextPrivateKey(text)
		require.Error(t, err, "a public key block is not a private key")
	})

	t.Run("Errors", func(t *testing.T) {
		pk, sk, err := s.GenerateKeyPair()
		require.NoError(t, err)

		ct, _, err := s.Encapsulate(pk)
		require.NoError(t, err)

		_, err = s.Decapsulate(sk, ct[1:])
		require.ErrorIs(t, err, kem.ErrCiphertextSize)

		bad := bytes.Clone(ct)
		bad[0], bad[1] = 0xff, 0xff
		_, err = s.Decapsulate(sk, bad)
		require.ErrorIs(t, err, kem.ErrCipherText)
	})
}
