package kem

import (
	"fmt"
	"io"

	"github.com/tuneinsight/kyber/ring"
	"github.com/tuneinsight/kyber/utils/buffer"
)

// Ciphertext is a type for KEM ciphertexts: u = A^T*r + e1 and
// v = t^T*r + e2 + Encode(m), both in the normal domain.
type Ciphertext struct {
	U ring.Vector[ring.Poly]
	V ring.Poly
}

// NewCiphertext returns a new [Ciphertext] with zero values.
func NewCiphertext(params Parameters) (ct *Ciphertext) {
	return &Ciphertext{U: ring.NewVector[ring.Poly](params.K())}
}

// Equal performs a deep equal.
func (ct Ciphertext) Equal(other *Ciphertext) bool {
	return ct.U.Equal(other.U) && ct.V.Equal(&other.V)
}

// CopyNew creates a deep copy of the object and returns it.
func (ct Ciphertext) CopyNew() *Ciphertext {
	return &Ciphertext{U: ct.U.CopyNew(), V: ct.V}
}

// BinarySize returns the serialized size of the object in bytes.
func (ct Ciphertext) BinarySize() int {
	return (len(ct.U) + 1) * ring.PolyBytes
}

// WriteTo writes the object on an io.Writer: u followed by v.
// It implements the io.WriterTo interface.
func (ct Ciphertext) WriteTo(w io.Writer) (n int64, err error) {
	b := make([]byte, ct.BinarySize())
	ptr := len(ct.U) * ring.PolyBytes
	if err = ring.EncodeVector(ct.U, b[:ptr]); err != nil {
		return 0, fmt.Errorf("cannot Ciphertext.WriteTo: %w", err)
	}
	ring.EncodePoly(&ct.V, b[ptr:])
	return writeBytes(w, b)
}

// ReadFrom reads on the object from an io.Reader. The receiver must have
// been allocated with [NewCiphertext].
// It implements the io.ReaderFrom interface.
func (ct *Ciphertext) ReadFrom(r io.Reader) (n int64, err error) {
	b := make([]byte, ct.BinarySize())
	if n, err = readBytes(r, b); err != nil {
		return n, fmt.Errorf("cannot Ciphertext.ReadFrom: %w", err)
	}
	return n, ct.decode(b)
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (ct Ciphertext) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(ct.BinarySize())
	_, err = ct.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (ct *Ciphertext) UnmarshalBinary(p []byte) (err error) {
	if err = checkSize("Ciphertext.UnmarshalBinary", len(p), ct.BinarySize()); err != nil {
		return
	}
	return ct.decode(p)
}

func (ct *Ciphertext) decode(b []byte) (err error) {
	ptr := len(ct.U) * ring.PolyBytes
	if err = ring.DecodeVector(b[:ptr], ct.U); err != nil {
		return fmt.Errorf("cannot decode Ciphertext: u: %w", err)
	}
	if err = ring.DecodePoly(b[ptr:], &ct.V); err != nil {
		return fmt.Errorf("cannot decode Ciphertext: v: %w", err)
	}
	return
}
