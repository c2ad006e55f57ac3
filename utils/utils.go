// Package utils implements various helper functions.
package utils

import (
	"math/bits"

	"golang.org/x/exp/constraints"
)

// BitReverse returns the bit-reverse value of the input value, within a context of 2^bitLen.
func BitReverse[T constraints.Unsigned](index T, bitLen int) T {
	return T(bits.Reverse64(uint64(index)) >> (64 - bitLen))
}

// PowMod performs the modular exponentiation x^e mod m.
// The modulus m is required to be at most 32 bits to avoid an overflow.
func PowMod[T constraints.Unsigned](x, e, m T) (result T) {
	r, b, mm := uint64(1), uint64(x)%uint64(m), uint64(m)
	for i := uint64(e); i > 0; i >>= 1 {
		if i&1 == 1 {
			r = r * b % mm
		}
		b = b * b % mm
	}
	return T(r)
}

// ModInverse returns x^-1 mod p for a prime modulus p, computed with
// Fermat's little theorem as x^(p-2) mod p.
func ModInverse[T constraints.Unsigned](x, p T) T {
	return PowMod(x, p-2, p)
}

// HammingWeight64 returns the hammingweight if the input value.
func HammingWeight64(x uint64) uint64 {
	x -= (x >> 1) & 0x5555555555555555
	x = (x & 0x3333333333333333) + ((x >> 2) & 0x3333333333333333)
	x = (x + (x >> 4)) & 0x0f0f0f0f0f0f0f0f
	return ((x * 0x0101010101010101) & 0xffffffffffffffff) >> 56
}

// CenterMod returns the representative of x mod q in (-q/2, q/2].
func CenterMod[T constraints.Unsigned](x, q T) int64 {
	v := int64(uint64(x) % uint64(q))
	if v > int64(q)/2 {
		v -= int64(q)
	}
	return v
}
