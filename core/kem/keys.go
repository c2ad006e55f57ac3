package kem

import (
	"fmt"
	"io"

	"github.com/tuneinsight/kyber/ring"
	"github.com/tuneinsight/kyber/utils/buffer"
)

// PublicKey is a type for KEM public keys: the public matrix A and
// t = A*s + e, both in the NTT domain.
type PublicKey struct {
	A ring.Matrix
	T ring.Vector[ring.NTTPoly]
}

// NewPublicKey returns a new [PublicKey] with zero values.
func NewPublicKey(params Parameters) (pk *PublicKey) {
	return &PublicKey{
		A: ring.NewMatrix(params.K()),
		T: ring.NewVector[ring.NTTPoly](params.K()),
	}
}

// K returns the module rank of the key.
func (pk PublicKey) K() int {
	return len(pk.T)
}

// Equal performs a deep equal.
func (pk PublicKey) Equal(other *PublicKey) bool {
	return pk.A.Equal(other.A) && pk.T.Equal(other.T)
}

// CopyNew creates a deep copy of the object and returns it.
func (pk PublicKey) CopyNew() *PublicKey {
	return &PublicKey{A: pk.A.CopyNew(), T: pk.T.CopyNew()}
}

// BinarySize returns the serialized size of the object in bytes.
func (pk PublicKey) BinarySize() int {
	k := len(pk.T)
	return (k*k + k) * ring.PolyBytes
}

// WriteTo writes the object on an io.Writer: the rows of A followed by t,
// each polynomial packed on ring.PolyBytes bytes.
// It implements the io.WriterTo interface.
func (pk PublicKey) WriteTo(w io.Writer) (n int64, err error) {
	b := make([]byte, pk.BinarySize())
	if err = pk.encode(b); err != nil {
		return
	}
	return writeBytes(w, b)
}

// ReadFrom reads on the object from an io.Reader. The receiver must have
// been allocated with [NewPublicKey].
// It implements the io.ReaderFrom interface.
func (pk *PublicKey) ReadFrom(r io.Reader) (n int64, err error) {
	b := make([]byte, pk.BinarySize())
	if n, err = readBytes(r, b); err != nil {
		return n, fmt.Errorf("cannot PublicKey.ReadFrom: %w", err)
	}
	return n, pk.decode(b)
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (pk PublicKey) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(pk.BinarySize())
	_, err = pk.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (pk *PublicKey) UnmarshalBinary(p []byte) (err error) {
	if err = checkSize("PublicKey.UnmarshalBinary", len(p), pk.BinarySize()); err != nil {
		return
	}
	return pk.decode(p)
}

func (pk PublicKey) encode(b []byte) (err error) {
	k := len(pk.T)
	ptr := 0
	for i := range pk.A {
		if err = ring.EncodeVector(pk.A[i], b[ptr:ptr+k*ring.PolyBytes]); err != nil {
			return fmt.Errorf("cannot encode PublicKey: %w", err)
		}
		ptr += k * ring.PolyBytes
	}
	if err = ring.EncodeVector(pk.T, b[ptr:]); err != nil {
		return fmt.Errorf("cannot encode PublicKey: %w", err)
	}
	return
}

func (pk *PublicKey) decode(b []byte) (err error) {
	k := len(pk.T)
	if err = checkSize("decode PublicKey", len(b), pk.BinarySize()); err != nil {
		return
	}
	if len(pk.A) != k {
		return fmt.Errorf("cannot decode PublicKey: %w: matrix has %d rows, want %d", ring.ErrLengthMismatch, len(pk.A), k)
	}
	ptr := 0
	for i := range pk.A {
		if err = ring.DecodeVector(b[ptr:ptr+k*ring.PolyBytes], pk.A[i]); err != nil {
			return fmt.Errorf("cannot decode PublicKey: matrix row %d: %w", i, err)
		}
		ptr += k * ring.PolyBytes
	}
	if err = ring.DecodeVector(b[ptr:], pk.T); err != nil {
		return fmt.Errorf("cannot decode PublicKey: t: %w", err)
	}
	return
}

// SecretKey is a type for KEM secret keys: the secret vector s in the NTT domain.
type SecretKey struct {
	S ring.Vector[ring.NTTPoly]
}

// NewSecretKey returns a new [SecretKey] with zero values.
func NewSecretKey(params Parameters) (sk *SecretKey) {
	return &SecretKey{S: ring.NewVector[ring.NTTPoly](params.K())}
}

// K returns the module rank of the key.
func (sk SecretKey) K() int {
	return len(sk.S)
}

// Equal performs a deep equal.
func (sk SecretKey) Equal(other *SecretKey) bool {
	return sk.S.Equal(other.S)
}

// CopyNew creates a deep copy of the object and returns it.
func (sk SecretKey) CopyNew() *SecretKey {
	return &SecretKey{S: sk.S.CopyNew()}
}

// BinarySize returns the serialized size of the object in bytes.
func (sk SecretKey) BinarySize() int {
	return len(sk.S) * ring.PolyBytes
}

// WriteTo writes the object on an io.Writer.
// It implements the io.WriterTo interface.
func (sk SecretKey) WriteTo(w io.Writer) (n int64, err error) {
	b := make([]byte, sk.BinarySize())
	if err = ring.EncodeVector(sk.S, b); err != nil {
		return 0, fmt.Errorf("cannot SecretKey.WriteTo: %w", err)
	}
	return writeBytes(w, b)
}

// ReadFrom reads on the object from an io.Reader. The receiver must have
// been allocated with [NewSecretKey].
// It implements the io.ReaderFrom interface.
func (sk *SecretKey) ReadFrom(r io.Reader) (n int64, err error) {
	b := make([]byte, sk.BinarySize())
	if n, err = readBytes(r, b); err != nil {
		return n, fmt.Errorf("cannot SecretKey.ReadFrom: %w", err)
	}
	if err = ring.DecodeVector(b, sk.S); err != nil {
		return n, fmt.Errorf("cannot SecretKey.ReadFrom: %w", err)
	}
	return
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (sk SecretKey) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(sk.BinarySize())
	_, err = sk.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (sk *SecretKey) UnmarshalBinary(p []byte) (err error) {
	if err = checkSize("SecretKey.UnmarshalBinary", len(p), sk.BinarySize()); err != nil {
		return
	}
	if err = ring.DecodeVector(p, sk.S); err != nil {
		return fmt.Errorf("cannot SecretKey.UnmarshalBinary: %w", err)
	}
	return
}
