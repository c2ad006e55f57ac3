package ring

// MessageBytes is the size in bytes of a message of N bits.
const MessageBytes = N / 8

// HalfQ is round(Q/2), the encoding of a set message bit.
const HalfQ = (Q + 1) / 2

// DecodingBound is the largest b such that every coefficient of
// EncodeMessage(m) + e decodes back to m whenever |e_i| <= b. A set bit
// moved by Q/4 = 832 lands on 2497 and decodes to 0.
const DecodingBound = Q/4 - 1

// EncodeMessage sets coefficient i of p to 0 if bit i of m is 0 and to
// [HalfQ] otherwise. Bit i is bit i%8 of byte i/8.
func EncodeMessage(m *[MessageBytes]byte, p *Poly) {
	for i := 0; i < N; i++ {
		bit := uint16(m[i>>3]>>(i&7)) & 1
		p[i] = -bit & HalfQ
	}
}

// DecodeMessage sets bit i of m to 1 if coefficient i of p is cyclically
// closer to [HalfQ] than to 0, and to 0 otherwise. Ties are decoded to 0.
// The running time does not depend on p.
func DecodeMessage(p *Poly, m *[MessageBytes]byte) {
	*m = [MessageBytes]byte{}
	for i := 0; i < N; i++ {
		m[i>>3] |= decodeBit(p[i]) << (i & 7)
	}
}

// decodeBit returns round(2x/Q) mod 2.
func decodeBit(x uint16) uint8 {
	d := uint32(x)<<1 + Q/2
	quo := uint32((uint64(d) * BRedConstant) >> BRedShift)
	r := d - quo*Q
	quo += (Q - 1 - r) >> 31
	return uint8(quo & 1)
}
