package ring

import (
	"fmt"
)

// Vector is a vector of polynomials of a single domain.
type Vector[T Polynomial] []T

// NewVector allocates a zero vector of k polynomials.
func NewVector[T Polynomial](k int) Vector[T] {
	return make(Vector[T], k)
}

// CopyNew returns a deep copy of the vector.
func (v Vector[T]) CopyNew() Vector[T] {
	c := make(Vector[T], len(v))
	copy(c, v)
	return c
}

// Equal returns true if v and other have the same length and the same
// coefficients.
func (v Vector[T]) Equal(other Vector[T]) bool {
	if len(v) != len(other) {
		return false
	}
	ok := true
	for i := range v {
		ok = equal(&v[i], &other[i]) && ok
	}
	return ok
}

func checkLengths(op string, lens ...int) error {
	for _, l := range lens[1:] {
		if l != lens[0] {
			return fmt.Errorf("cannot %s: %w: dimensions %v", op, ErrLengthMismatch, lens)
		}
	}
	return nil
}

// AddVector evaluates v3 = v1 + v2.
func AddVector[T Polynomial](v1, v2, v3 Vector[T]) (err error) {
	if err = checkLengths("AddVector", len(v1), len(v2), len(v3)); err != nil {
		return
	}
	for i := range v1 {
		Add(&v1[i], &v2[i], &v3[i])
	}
	return
}

// SubVector evaluates v3 = v1 - v2.
func SubVector[T Polynomial](v1, v2, v3 Vector[T]) (err error) {
	if err = checkLengths("SubVector", len(v1), len(v2), len(v3)); err != nil {
		return
	}
	for i := range v1 {
		Sub(&v1[i], &v2[i], &v3[i])
	}
	return
}

// NTTVector evaluates every polynomial of v1 in the NTT domain and writes
// the results on v2.
func NTTVector(v1 Vector[Poly], v2 Vector[NTTPoly]) (err error) {
	if err = checkLengths("NTTVector", len(v1), len(v2)); err != nil {
		return
	}
	for i := range v1 {
		NTT(&v1[i], &v2[i])
	}
	return
}

// INTTVector evaluates every polynomial of v1 in the normal domain and writes
// the results on v2.
func INTTVector(v1 Vector[NTTPoly], v2 Vector[Poly]) (err error) {
	if err = checkLengths("INTTVector", len(v1), len(v2)); err != nil {
		return
	}
	for i := range v1 {
		INTT(&v1[i], &v2[i])
	}
	return
}

// InnerProduct evaluates p = sum_i v1[i] * v2[i] in the NTT domain.
func InnerProduct(v1, v2 Vector[NTTPoly], p *NTTPoly) (err error) {
	if err = checkLengths("InnerProduct", len(v1), len(v2)); err != nil {
		return
	}
	var acc NTTPoly
	for i := range v1 {
		MulCoeffsThenAdd(&v1[i], &v2[i], &acc)
	}
	*p = acc
	return
}

// EncodeVector packs the polynomials of v one after the other into b, which
// must be len(v)*PolyBytes long.
func EncodeVector[T Polynomial](v Vector[T], b []byte) (err error) {
	if err = checkLengths("EncodeVector", len(v)*PolyBytes, len(b)); err != nil {
		return
	}
	for i := range v {
		EncodePoly(&v[i], b[i*PolyBytes:])
	}
	return
}

// DecodeVector unpacks b, as written by [EncodeVector], into v.
func DecodeVector[T Polynomial](b []byte, v Vector[T]) (err error) {
	if err = checkLengths("DecodeVector", len(v)*PolyBytes, len(b)); err != nil {
		return
	}
	for i := range v {
		if err = DecodePoly(b[i*PolyBytes:(i+1)*PolyBytes], &v[i]); err != nil {
			return fmt.Errorf("cannot DecodeVector: polynomial %d: %w", i, err)
		}
	}
	return
}
