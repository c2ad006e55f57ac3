package ring

import (
	"fmt"
)

// PolyBytes is the size in bytes of the 12-bit packing of N coefficients.
const PolyBytes = N * 12 / 8

// EncodePoly packs the coefficients of p on 12 bits each into b, two
// coefficients per three bytes, least significant bits first.
// b must be at least PolyBytes long.
func EncodePoly[T Polynomial](p *T, b []byte) {
	encodeCoefficients((*p)[:], b)
}

// DecodePoly unpacks b, as written by [EncodePoly], into p.
// It returns an error wrapping [ErrLengthMismatch] if b is not PolyBytes long,
// and an error wrapping [ErrInvalidEncoding] if a coefficient is not in
// [0, Q); p is left unspecified in that case.
func DecodePoly[T Polynomial](b []byte, p *T) (err error) {
	if len(b) != PolyBytes {
		return fmt.Errorf("cannot DecodePoly: %w: got %d bytes, want %d", ErrLengthMismatch, len(b), PolyBytes)
	}
	if err = decodeCoefficients(b, (*p)[:]); err != nil {
		return fmt.Errorf("cannot DecodePoly: %w", err)
	}
	return
}

func encodeCoefficients(c []uint16, b []byte) {
	_ = b[PolyBytes-1]
	for i, j := 0, 0; i < N; i, j = i+2, j+3 {
		x, y := c[i], c[i+1]
		b[j] = uint8(x)
		b[j+1] = uint8(x>>8) | uint8(y<<4)
		b[j+2] = uint8(y >> 4)
	}
}

func decodeCoefficients(b []byte, c []uint16) error {
	_ = b[PolyBytes-1]
	// bad collects one bit per coefficient >= Q.
	var bad uint16
	for i, j := 0, 0; i < N; i, j = i+2, j+3 {
		x := uint16(b[j]) | uint16(b[j+1]&0x0f)<<8
		y := uint16(b[j+1]>>4) | uint16(b[j+2])<<4
		bad |= ((x - Q) >> 15) ^ 1
		bad |= ((y - Q) >> 15) ^ 1
		c[i], c[i+1] = x, y
	}
	if bad != 0 {
		return fmt.Errorf("%w: coefficient not in [0, %d)", ErrInvalidEncoding, Q)
	}
	return nil
}
