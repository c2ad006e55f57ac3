package ring

import (
	"fmt"
)

// Matrix is a square matrix of NTT-domain polynomials, stored by rows.
type Matrix []Vector[NTTPoly]

// NewMatrix allocates a zero k x k matrix.
func NewMatrix(k int) (m Matrix) {
	m = make(Matrix, k)
	for i := range m {
		m[i] = NewVector[NTTPoly](k)
	}
	return
}

// Rows returns the number of rows of the matrix.
func (m Matrix) Rows() int {
	return len(m)
}

// Equal returns true if m and other have the same dimensions and coefficients.
func (m Matrix) Equal(other Matrix) bool {
	if len(m) != len(other) {
		return false
	}
	ok := true
	for i := range m {
		ok = m[i].Equal(other[i]) && ok
	}
	return ok
}

// CopyNew returns a deep copy of the matrix.
func (m Matrix) CopyNew() (c Matrix) {
	c = make(Matrix, len(m))
	for i := range m {
		c[i] = m[i].CopyNew()
	}
	return
}

func (m Matrix) check(op string, in, out int) error {
	for i := range m {
		if len(m[i]) != len(m) {
			return fmt.Errorf("cannot %s: %w: row %d has %d columns, matrix has %d rows", op, ErrLengthMismatch, i, len(m[i]), len(m))
		}
	}
	return checkLengths(op, len(m), in, out)
}

// MulMatrixVector evaluates v2 = m * v1 in the NTT domain.
// v1 and v2 must not share memory.
func MulMatrixVector(m Matrix, v1, v2 Vector[NTTPoly]) (err error) {
	if err = m.check("MulMatrixVector", len(v1), len(v2)); err != nil {
		return
	}
	for i := range m {
		if err = InnerProduct(m[i], v1, &v2[i]); err != nil {
			return
		}
	}
	return
}

// MulMatrixTransposeVector evaluates v2 = m^T * v1 in the NTT domain.
// v1 and v2 must not share memory.
func MulMatrixTransposeVector(m Matrix, v1, v2 Vector[NTTPoly]) (err error) {
	if err = m.check("MulMatrixTransposeVector", len(v1), len(v2)); err != nil {
		return
	}
	for j := range m {
		var acc NTTPoly
		for i := range m {
			MulCoeffsThenAdd(&m[i][j], &v1[i], &acc)
		}
		v2[j] = acc
	}
	return
}

// MatrixVectorMul evaluates v2 = m * v1 for a normal-domain v1 and writes the
// normal-domain result on v2. Every entry of v1 is transformed once, the
// products are accumulated in the NTT domain and every entry of v2 is
// inverse-transformed once.
func MatrixVectorMul(m Matrix, v1, v2 Vector[Poly]) (err error) {
	if err = m.check("MatrixVectorMul", len(v1), len(v2)); err != nil {
		return
	}

	v1NTT := NewVector[NTTPoly](len(v1))
	if err = NTTVector(v1, v1NTT); err != nil {
		return
	}

	var acc NTTPoly
	for i := range m {
		if err = InnerProduct(m[i], v1NTT, &acc); err != nil {
			return
		}
		INTT(&acc, &v2[i])
	}
	return
}
