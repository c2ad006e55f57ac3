package ring

import (
	"bufio"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/tuneinsight/kyber/utils/buffer"
)

// Poly is a polynomial in the normal (coefficient) domain.
// Its coefficients are always in [0, Q).
type Poly [N]uint16

// NTTPoly is a polynomial in the NTT domain.
// Its coefficients are always in [0, Q).
type NTTPoly [N]uint16

// Polynomial is the constraint satisfied by both domains.
// Functions parameterized by Polynomial accept operands of a single domain,
// so that mixing a [Poly] with an [NTTPoly] is a compile-time error.
type Polynomial interface {
	~[N]uint16
}

// Element is the run-time view of a polynomial of either domain.
type Element interface {
	Domain() Domain
	Coefficients() []uint16
}

// Domain returns [Normal].
func (pol *Poly) Domain() Domain {
	return Normal
}

// Coefficients returns the coefficients of the polynomial as a slice
// sharing the polynomial's memory.
func (pol *Poly) Coefficients() []uint16 {
	return pol[:]
}

// Domain returns [Evaluation].
func (pol *NTTPoly) Domain() Domain {
	return Evaluation
}

// Coefficients returns the coefficients of the polynomial as a slice
// sharing the polynomial's memory.
func (pol *NTTPoly) Coefficients() []uint16 {
	return pol[:]
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol *Poly) Zero() {
	*pol = Poly{}
}

// Zero sets all coefficients of the target polynomial to 0.
func (pol *NTTPoly) Zero() {
	*pol = NTTPoly{}
}

// Equal returns true if the receiver is equal to other, in constant time.
func (pol *Poly) Equal(other *Poly) bool {
	return equal(pol, other)
}

// Equal returns true if the receiver is equal to other, in constant time.
func (pol *NTTPoly) Equal(other *NTTPoly) bool {
	return equal(pol, other)
}

func equal[T Polynomial](a, b *T) bool {
	var acc uint16
	for i := 0; i < N; i++ {
		acc |= (*a)[i] ^ (*b)[i]
	}
	return subtle.ConstantTimeEq(int32(acc), 0) == 1
}

// Add evaluates p3 = p1 + p2 coefficient-wise mod Q.
func Add[T Polynomial](p1, p2, p3 *T) {
	for i := 0; i < N; i++ {
		(*p3)[i] = CAdd((*p1)[i], (*p2)[i])
	}
}

// Sub evaluates p3 = p1 - p2 coefficient-wise mod Q.
func Sub[T Polynomial](p1, p2, p3 *T) {
	for i := 0; i < N; i++ {
		(*p3)[i] = CSub((*p1)[i], (*p2)[i])
	}
}

// Neg evaluates p2 = -p1 coefficient-wise mod Q.
func Neg[T Polynomial](p1, p2 *T) {
	for i := 0; i < N; i++ {
		(*p2)[i] = CNeg((*p1)[i])
	}
}

// MulScalar evaluates p2 = p1 * scalar coefficient-wise mod Q.
func MulScalar[T Polynomial](p1 *T, scalar uint16, p2 *T) {
	s := uint32(BarrettReduce(uint32(scalar)))
	for i := 0; i < N; i++ {
		(*p2)[i] = BarrettReduce(uint32((*p1)[i]) * s)
	}
}

// AddNew returns p1 + p2 on a newly allocated polynomial.
func AddNew[T Polynomial](p1, p2 *T) (p3 *T) {
	p3 = new(T)
	Add(p1, p2, p3)
	return
}

// SubNew returns p1 - p2 on a newly allocated polynomial.
func SubNew[T Polynomial](p1, p2 *T) (p3 *T) {
	p3 = new(T)
	Sub(p1, p2, p3)
	return
}

// AddElements evaluates p3 = p1 + p2 on polynomials whose domain is only
// known at run time. It returns an error wrapping [ErrDomainMismatch] if the
// three operands are not in the same domain.
func AddElements(p1, p2, p3 Element) (err error) {
	a, b, c, err := checkElements(p1, p2, p3)
	if err != nil {
		return fmt.Errorf("cannot AddElements: %w", err)
	}
	for i := range c {
		c[i] = CAdd(a[i], b[i])
	}
	return
}

// SubElements evaluates p3 = p1 - p2 on polynomials whose domain is only
// known at run time. It returns an error wrapping [ErrDomainMismatch] if the
// three operands are not in the same domain.
func SubElements(p1, p2, p3 Element) (err error) {
	a, b, c, err := checkElements(p1, p2, p3)
	if err != nil {
		return fmt.Errorf("cannot SubElements: %w", err)
	}
	for i := range c {
		c[i] = CSub(a[i], b[i])
	}
	return
}

func checkElements(p1, p2, p3 Element) (a, b, c []uint16, err error) {
	if p1.Domain() != p2.Domain() || p1.Domain() != p3.Domain() {
		return nil, nil, nil, fmt.Errorf("%w: %s, %s, %s", ErrDomainMismatch, p1.Domain(), p2.Domain(), p3.Domain())
	}
	a, b, c = p1.Coefficients(), p2.Coefficients(), p3.Coefficients()
	if len(a) != N || len(b) != N || len(c) != N {
		return nil, nil, nil, fmt.Errorf("%w: %d, %d, %d coefficients", ErrLengthMismatch, len(a), len(b), len(c))
	}
	return
}

// PolyBinarySize is the size in bytes of the binary encoding of a standalone
// polynomial: one domain tag followed by its packed coefficients.
const PolyBinarySize = 1 + PolyBytes

// BinarySize returns the serialized size of the object in bytes.
func (pol *Poly) BinarySize() int {
	return PolyBinarySize
}

// BinarySize returns the serialized size of the object in bytes.
func (pol *NTTPoly) BinarySize() int {
	return PolyBinarySize
}

// WriteTo writes the object on an io.Writer. It implements the io.WriterTo
// interface, and will write exactly object.BinarySize() bytes on w.
// The first byte is the domain tag of the polynomial.
//
// Unless w implements the buffer.Writer interface, it is wrapped into a
// bufio.Writer. Pass a buffer.NewBuffer(b) to write on a pre-allocated slice.
func (pol *Poly) WriteTo(w io.Writer) (n int64, err error) {
	return writeElement(w, pol)
}

// WriteTo writes the object on an io.Writer. See [Poly.WriteTo].
func (pol *NTTPoly) WriteTo(w io.Writer) (n int64, err error) {
	return writeElement(w, pol)
}

// ReadFrom reads the object from an io.Reader. It implements the
// io.ReaderFrom interface. It returns an error wrapping [ErrDomainMismatch]
// if the encoded domain tag is not the domain of the receiver, and an error
// wrapping [ErrInvalidEncoding] if a coefficient is not in [0, Q).
//
// Unless r implements the buffer.Reader interface, it is wrapped into a
// bufio.Reader.
func (pol *Poly) ReadFrom(r io.Reader) (n int64, err error) {
	return readElement(r, pol)
}

// ReadFrom reads the object from an io.Reader. See [Poly.ReadFrom].
func (pol *NTTPoly) ReadFrom(r io.Reader) (n int64, err error) {
	return readElement(r, pol)
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (pol *Poly) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(pol.BinarySize())
	_, err = pol.WriteTo(buf)
	return buf.Bytes(), err
}

// MarshalBinary encodes the object into a binary form on a newly allocated slice of bytes.
func (pol *NTTPoly) MarshalBinary() (p []byte, err error) {
	buf := buffer.NewBufferSize(pol.BinarySize())
	_, err = pol.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (pol *Poly) UnmarshalBinary(p []byte) (err error) {
	if len(p) != pol.BinarySize() {
		return fmt.Errorf("cannot UnmarshalBinary: %w: got %d bytes, want %d", ErrLengthMismatch, len(p), pol.BinarySize())
	}
	_, err = pol.ReadFrom(buffer.NewBuffer(p))
	return
}

// UnmarshalBinary decodes a slice of bytes generated by
// MarshalBinary or WriteTo on the object.
func (pol *NTTPoly) UnmarshalBinary(p []byte) (err error) {
	if len(p) != pol.BinarySize() {
		return fmt.Errorf("cannot UnmarshalBinary: %w: got %d bytes, want %d", ErrLengthMismatch, len(p), pol.BinarySize())
	}
	_, err = pol.ReadFrom(buffer.NewBuffer(p))
	return
}

func writeElement(w io.Writer, pol Element) (n int64, err error) {
	switch w := w.(type) {
	case buffer.Writer:
		var b [PolyBytes]byte
		encodeCoefficients(pol.Coefficients(), b[:])
		if n, err = buffer.WriteTagged(w, uint8(pol.Domain()), b[:]); err != nil {
			return n, fmt.Errorf("cannot WriteTo: %w", err)
		}
		return
	default:
		return writeElement(bufio.NewWriter(w), pol)
	}
}

func readElement(r io.Reader, pol Element) (n int64, err error) {
	switch r := r.(type) {
	case buffer.Reader:

		var b [PolyBytes]byte
		var tag uint8
		if tag, n, err = buffer.ReadTagged(r, b[:]); err != nil {
			return n, fmt.Errorf("cannot ReadFrom: %w", err)
		}

		if Domain(tag) != pol.Domain() {
			return n, fmt.Errorf("cannot ReadFrom: %w: encoded %s, target %s", ErrDomainMismatch, Domain(tag), pol.Domain())
		}

		if err = decodeCoefficients(b[:], pol.Coefficients()); err != nil {
			return n, fmt.Errorf("cannot ReadFrom: %w", err)
		}

		return

	default:
		return readElement(bufio.NewReader(r), pol)
	}
}
