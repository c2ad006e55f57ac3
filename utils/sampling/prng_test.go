package sampling_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/kyber/utils/sampling"
)

func Test_PRNG(t *testing.T) {

	key := []byte{0x49, 0x0a, 0x42, 0x3d, 0x97, 0x9d, 0xc1, 0x07, 0xa1, 0xd7, 0xe9, 0x7b, 0x3b, 0xce, 0xa1, 0xdb,
		0x42, 0xf3, 0xa6, 0xd5, 0x75, 0xd2, 0x0c, 0x92, 0xb7, 0x35, 0xce, 0x0c, 0xee, 0x09, 0x7c, 0x98}

	t.Run("KeyedPRNG", func(t *testing.T) {

		Ha, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		// the stream does not depend on how the reads are split
		sum0 := make([]byte, 512)
		sum1 := make([]byte, 512)

		_, err = Ha.Read(sum0)
		require.NoError(t, err)
		for i := 0; i < 512; i += 32 {
			_, err = Hb.Read(sum1[i : i+32])
			require.NoError(t, err)
		}

		require.Equal(t, sum0, sum1)
	})

	t.Run("KeyedPRNG/KeyCopied", func(t *testing.T) {
		k := append([]byte(nil), key...)
		Ha, err := sampling.NewKeyedPRNG(k)
		require.NoError(t, err)
		k[0] ^= 1
		Hb, err := sampling.NewKeyedPRNG(key)
		require.NoError(t, err)

		sum0 := make([]byte, 64)
		sum1 := make([]byte, 64)
		require.NoError(t, sampling.Read(Ha, sum0))
		require.NoError(t, sampling.Read(Hb, sum1))
		require.Equal(t, sum0, sum1)
	})

	t.Run("KeyedPRNG/DistinctKeys", func(t *testing.T) {
		Ha, err := sampling.NewKeyedPRNG([]byte{1})
		require.NoError(t, err)
		Hb, err := sampling.NewKeyedPRNG([]byte{2})
		require.NoError(t, err)

		sum0 := make([]byte, 64)
		sum1 := make([]byte, 64)
		require.NoError(t, sampling.Read(Ha, sum0))
		require.NoError(t, sampling.Read(Hb, sum1))
		require.NotEqual(t, sum0, sum1)
	})

	t.Run("KeyedPRNG/KeyTooLong", func(t *testing.T) {
		_, err := sampling.NewKeyedPRNG(make([]byte, sampling.MaxKeySize))
		require.NoError(t, err)
		_, err = sampling.NewKeyedPRNG(make([]byte, sampling.MaxKeySize+1))
		require.Error(t, err)
	})

	t.Run("ThreadSafePRNG", func(t *testing.T) {
		prng, err := sampling.NewPRNG()
		require.NoError(t, err)
		sum := make([]byte, 64)
		require.NoError(t, sampling.Read(prng, sum))
		require.NotEqual(t, make([]byte, 64), sum)
	})

	t.Run("Shake128", func(t *testing.T) {
		seed := bytes.Repeat([]byte{0x5a}, 32)

		sum0 := make([]byte, 504)
		sum1 := make([]byte, 504)
		sum2 := make([]byte, 504)

		require.NoError(t, sampling.Read(sampling.NewShake128(seed, 0, 1), sum0))
		require.NoError(t, sampling.Read(sampling.NewShake128(seed, 0, 1), sum1))
		require.NoError(t, sampling.Read(sampling.NewShake128(seed, 1, 0), sum2))

		require.Equal(t, sum0, sum1)
		require.NotEqual(t, sum0, sum2)
	})
}

func TestRead(t *testing.T) {

	t.Run("Exhausted", func(t *testing.T) {
		err := sampling.Read(bytes.NewReader(make([]byte, 10)), make([]byte, 11))
		require.ErrorIs(t, err, sampling.ErrInsufficientEntropy)
	})

	t.Run("Nil", func(t *testing.T) {
		err := sampling.Read(nil, make([]byte, 1))
		require.ErrorIs(t, err, sampling.ErrInsufficientEntropy)
	})

	t.Run("Exact", func(t *testing.T) {
		buf := make([]byte, 10)
		require.NoError(t, sampling.Read(bytes.NewReader(bytes.Repeat([]byte{3}, 10)), buf))
		require.Equal(t, bytes.Repeat([]byte{3}, 10), buf)
	})
}
