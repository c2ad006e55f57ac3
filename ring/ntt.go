package ring

// NTT evaluates p1 in the NTT domain and writes the result on p2.
// The transform is the 7-layer negacyclic Cooley-Tukey network: Q-1 is not
// divisible by 2N, so the output holds N/2 residues of degree one, modulo
// X^2 - gammas[i], stored as consecutive coefficient pairs.
// p1 and p2 may share the same backing array.
func NTT(p1 *Poly, p2 *NTTPoly) {
	f := (*[N]uint16)(p2)
	if (*[N]uint16)(p1) != f {
		*f = *p1
	}

	k := 1
	for l := N / 2; l >= 2; l >>= 1 {
		for s := 0; s < N; s += 2 * l {
			z := uint32(zetas[k])
			k++
			for j := s; j < s+l; j++ {
				t := MontgomeryReduce(z * uint32(f[j+l]))
				f[j+l] = CSub(f[j], t)
				f[j] = CAdd(f[j], t)
			}
		}
	}
}

// INTT evaluates p1 in the normal domain and writes the result on p2.
// It is the exact inverse of [NTT]: Gentleman-Sande butterflies in reverse
// order followed by a scaling by (N/2)^-1 mod Q.
// p1 and p2 may share the same backing array.
func INTT(p1 *NTTPoly, p2 *Poly) {
	f := (*[N]uint16)(p2)
	if (*[N]uint16)(p1) != f {
		*f = *p1
	}

	k := N/2 - 1
	for l := 2; l <= N/2; l <<= 1 {
		for s := 0; s < N; s += 2 * l {
			z := uint32(zetas[k])
			k--
			for j := s; j < s+l; j++ {
				t := f[j]
				f[j] = CAdd(t, f[j+l])
				f[j+l] = MontgomeryReduce(z * uint32(CSub(f[j+l], t)))
			}
		}
	}

	scale := uint32(nttScale)
	for i := range f {
		f[i] = MontgomeryReduce(scale * uint32(f[i]))
	}
}

// NTTNew returns NTT(p1) on a newly allocated polynomial.
func NTTNew(p1 *Poly) (p2 *NTTPoly) {
	p2 = new(NTTPoly)
	NTT(p1, p2)
	return
}

// INTTNew returns INTT(p1) on a newly allocated polynomial.
func INTTNew(p1 *NTTPoly) (p2 *Poly) {
	p2 = new(Poly)
	INTT(p1, p2)
	return
}

// mulPair returns (a0 + a1 X)(b0 + b1 X) mod X^2 - gamma.
// Each product is reduced on its own: their sum can exceed the Barrett range.
func mulPair(a0, a1, b0, b1, gamma uint16) (c0, c1 uint16) {
	c0 = CAdd(
		BarrettReduce(uint32(a0)*uint32(b0)),
		BarrettReduce(uint32(BarrettReduce(uint32(a1)*uint32(b1)))*uint32(gamma)))
	c1 = CAdd(
		BarrettReduce(uint32(a0)*uint32(b1)),
		BarrettReduce(uint32(a1)*uint32(b0)))
	return
}

// MulCoeffs multiplies p1 by p2 in the NTT domain and writes the result on p3.
// This is the product of the N/2 degree-one residues, each modulo its own
// X^2 - gammas[i].
func MulCoeffs(p1, p2, p3 *NTTPoly) {
	for i := 0; i < N/2; i++ {
		p3[2*i], p3[2*i+1] = mulPair(p1[2*i], p1[2*i+1], p2[2*i], p2[2*i+1], gammas[i])
	}
}

// MulCoeffsThenAdd multiplies p1 by p2 in the NTT domain and adds the result on p3.
func MulCoeffsThenAdd(p1, p2, p3 *NTTPoly) {
	for i := 0; i < N/2; i++ {
		c0, c1 := mulPair(p1[2*i], p1[2*i+1], p2[2*i], p2[2*i+1], gammas[i])
		p3[2*i] = CAdd(p3[2*i], c0)
		p3[2*i+1] = CAdd(p3[2*i+1], c1)
	}
}

// Mul multiplies p1 by p2 in the ring and writes the result on p3.
// It computes INTT(MulCoeffs(NTT(p1), NTT(p2))).
func Mul(p1, p2, p3 *Poly) {
	var a, b NTTPoly
	NTT(p1, &a)
	NTT(p2, &b)
	MulCoeffs(&a, &b, &a)
	INTT(&a, p3)
}

// MulNew returns p1 * p2 in the ring on a newly allocated polynomial.
func MulNew(p1, p2 *Poly) (p3 *Poly) {
	p3 = new(Poly)
	Mul(p1, p2, p3)
	return
}
