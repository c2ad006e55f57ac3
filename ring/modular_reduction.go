package ring

import (
	"fmt"
)

const (
	// BRedConstant is floor(2^24 / Q).
	BRedConstant = 5039
	// BRedShift is the radix exponent of the Barrett reduction.
	BRedShift = 24
	// BRedBound is the exclusive upper bound of BarrettReduce's input.
	BRedBound = 1 << BRedShift

	// MRedConstant is -Q^-1 mod 2^16.
	MRedConstant = 3327
	// MRedShift is the radix exponent of the Montgomery reduction, R = 2^16.
	MRedShift = 16
	// MRedBound is the exclusive upper bound of MontgomeryReduce's input.
	MRedBound = Q << MRedShift

	// rModQ is 2^16 mod Q.
	rModQ = (1 << MRedShift) % Q
	// r2ModQ is 2^32 mod Q.
	r2ModQ = (rModQ * rModQ) % Q
)

//=========================
//=== BARRETT REDUCTION ===
//=========================

// BarrettReduce returns a mod Q for a < 2^24.
// The output is in [0, Q) and the running time does not depend on a.
func BarrettReduce(a uint32) uint16 {
	if debugChecks {
		if err := CheckBarrettInput(a); err != nil {
			panic(err)
		}
	}
	quo := (uint64(a) * BRedConstant) >> BRedShift
	return reduceOnce(uint16(a - uint32(quo)*Q))
}

// CheckBarrettInput returns an error wrapping [ErrArithmeticOverflow] if a
// is outside the input range of [BarrettReduce].
func CheckBarrettInput(a uint32) error {
	if a >= BRedBound {
		return fmt.Errorf("cannot BarrettReduce: %w: input %d >= 2^%d", ErrArithmeticOverflow, a, BRedShift)
	}
	return nil
}

//============================
//=== MONTGOMERY REDUCTION ===
//============================

// MontgomeryReduce returns a * 2^-16 mod Q for a < Q * 2^16.
// The output is in [0, Q) and the running time does not depend on a.
func MontgomeryReduce(a uint32) uint16 {
	if debugChecks {
		if err := CheckMontgomeryInput(a); err != nil {
			panic(err)
		}
	}
	t := uint32(uint16(a) * MRedConstant)
	// a + t*Q < 2^17 * Q fits in 32 bits and is divisible by 2^16.
	r := (a + t*Q) >> MRedShift
	return reduceOnce(uint16(r))
}

// CheckMontgomeryInput returns an error wrapping [ErrArithmeticOverflow] if a
// is outside the input range of [MontgomeryReduce].
func CheckMontgomeryInput(a uint32) error {
	if a >= MRedBound {
		return fmt.Errorf("cannot MontgomeryReduce: %w: input %d >= Q*2^%d", ErrArithmeticOverflow, a, MRedShift)
	}
	return nil
}

// MForm returns a * 2^16 mod Q for a in [0, Q).
func MForm(a uint16) uint16 {
	return MontgomeryReduce(uint32(a) * r2ModQ)
}

// InvMForm returns a * 2^-16 mod Q for a in [0, Q).
func InvMForm(a uint16) uint16 {
	return MontgomeryReduce(uint32(a))
}

// MRed returns a * b * 2^-16 mod Q for a, b in [0, Q).
func MRed(a, b uint16) uint16 {
	return MontgomeryReduce(uint32(a) * uint32(b))
}

//=================================
//=== COEFFICIENT-WISE NUMERICS ===
//=================================

// reduceOnce maps a in [0, 2Q) to a mod Q without branching.
func reduceOnce(a uint16) uint16 {
	x := a - Q
	x += (x >> 15) * Q
	return x
}

// CAdd returns a + b mod Q for a, b in [0, Q).
func CAdd(a, b uint16) uint16 {
	return reduceOnce(a + b)
}

// CSub returns a - b mod Q for a, b in [0, Q).
func CSub(a, b uint16) uint16 {
	return reduceOnce(a - b + Q)
}

// CMul returns a * b mod Q for a, b in [0, Q).
func CMul(a, b uint16) uint16 {
	return BarrettReduce(uint32(a) * uint32(b))
}

// CNeg returns -a mod Q for a in [0, Q).
func CNeg(a uint16) uint16 {
	return reduceOnce(Q - a)
}
