package ring

import (
	"bytes"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/kyber/utils"
	"github.com/tuneinsight/kyber/utils/buffer"
	"github.com/tuneinsight/kyber/utils/sampling"
)

func testString(opname string) string {
	return fmt.Sprintf("%s/Q=%d/N=%d", opname, Q, N)
}

type testContext struct {
	prng    sampling.PRNG
	uniform *UniformSampler
}

func genTestContext(t *testing.T) (tc *testContext) {
	prng, err := sampling.NewKeyedPRNG([]byte("ring test"))
	require.NoError(t, err)
	return &testContext{
		prng:    prng,
		uniform: NewUniformSampler(prng),
	}
}

// randomPoly returns a normal-domain polynomial with uniform coefficients.
func (tc *testContext) randomPoly(t *testing.T) *Poly {
	p, err := tc.uniform.ReadNew()
	require.NoError(t, err)
	pol := Poly(*p)
	return &pol
}

func TestRing(t *testing.T) {

	tc := genTestContext(t)

	testModularReduction(t)
	testTables(t)
	testNTT(tc, t)
	testMul(tc, t)
	testAddSub(tc, t)
	testElements(tc, t)
	testMessage(tc, t)
	testMarshalBinary(tc, t)
	testWriterAndReader(tc, t)
	testEncoding(tc, t)
}

func testModularReduction(t *testing.T) {

	t.Run(testString("ModularReduction/Barrett"), func(t *testing.T) {
		for a := uint32(0); a < BRedBound; a += 1 + a>>12 {
			require.Equal(t, uint16(a%Q), BarrettReduce(a), a)
		}
		for _, a := range []uint32{Q - 1, Q, 2*Q - 1, (Q - 1) * (Q - 1), BRedBound - 1} {
			require.Equal(t, uint16(a%Q), BarrettReduce(a), a)
		}
	})

	t.Run(testString("ModularReduction/Montgomery"), func(t *testing.T) {
		// MontgomeryReduce(a) * 2^16 = a mod Q
		check := func(a uint32) {
			r := MontgomeryReduce(a)
			require.Less(t, r, uint16(Q))
			require.Equal(t, uint64(a)%Q, (uint64(r)<<16)%Q, a)
		}
		for a := uint32(0); a < MRedBound; a += 1 + a>>10 {
			check(a)
		}
		check(MRedBound - 1)
	})

	t.Run(testString("ModularReduction/MForm"), func(t *testing.T) {
		for a := uint16(0); a < Q; a++ {
			require.Equal(t, uint16((uint32(a)<<16)%Q), MForm(a))
			require.Equal(t, a, InvMForm(MForm(a)))
		}
	})

	t.Run(testString("ModularReduction/Coefficients"), func(t *testing.T) {
		for a := uint16(0); a < Q; a += 7 {
			for b := uint16(0); b < Q; b += 11 {
				require.Equal(t, (a+b)%Q, CAdd(a, b))
				require.Equal(t, uint16((uint32(a)+Q-uint32(b))%Q), CSub(a, b))
				require.Equal(t, uint16(uint32(a)*uint32(b)%Q), CMul(a, b))
				require.Equal(t, uint16(uint32(a)*uint32(b)%Q), InvMForm(MRed(MForm(a), MForm(b))))
			}
			require.Equal(t, (Q-a)%Q, CNeg(a))
		}
	})

	t.Run(testString("ModularReduction/RangeChecks"), func(t *testing.T) {
		require.NoError(t, CheckBarrettInput(BRedBound-1))
		require.ErrorIs(t, CheckBarrettInput(BRedBound), ErrArithmeticOverflow)
		require.NoError(t, CheckMontgomeryInput(MRedBound-1))
		require.ErrorIs(t, CheckMontgomeryInput(MRedBound), ErrArithmeticOverflow)
	})
}

func testTables(t *testing.T) {

	t.Run(testString("Tables"), func(t *testing.T) {

		require.Equal(t, uint16(Q-1), utils.PowMod[uint16](PrimitiveRoot, N/2, Q))

		z, g := Zetas(), Gammas()
		for i := 0; i < N/2; i++ {
			brv := utils.BitReverse(uint16(i), LogN-1)
			require.Equal(t, MForm(utils.PowMod[uint16](PrimitiveRoot, brv, Q)), z[i], i)
			require.Equal(t, utils.PowMod[uint16](PrimitiveRoot, 2*brv+1, Q), g[i], i)
		}

		require.Equal(t, uint16(1), CMul(InvMForm(nttScale), N/2))
	})
}

func testNTT(tc *testContext, t *testing.T) {

	t.Run(testString("NTT/Constant"), func(t *testing.T) {
		var p Poly
		p[0] = 1234
		pNTT := NTTNew(&p)
		for i := 0; i < N; i += 2 {
			require.Equal(t, uint16(1234), pNTT[i])
			require.Equal(t, uint16(0), pNTT[i+1])
		}
	})

	t.Run(testString("NTT/Monomial"), func(t *testing.T) {
		var p Poly
		p[1] = 1
		pNTT := NTTNew(&p)
		for i := 0; i < N; i += 2 {
			require.Equal(t, uint16(0), pNTT[i])
			require.Equal(t, uint16(1), pNTT[i+1])
		}
	})

	t.Run(testString("NTT/INTT"), func(t *testing.T) {
		var pNTT NTTPoly
		var pHave Poly
		for trial := 0; trial < 1024; trial++ {
			pWant := tc.randomPoly(t)
			NTT(pWant, &pNTT)
			INTT(&pNTT, &pHave)
			require.True(t, pWant.Equal(&pHave), trial)
		}
	})

	t.Run(testString("NTT/InPlace"), func(t *testing.T) {
		pWant := tc.randomPoly(t)
		p := *pWant
		NTT(&p, (*NTTPoly)(&p))
		require.False(t, pWant.Equal(&p))
		INTT((*NTTPoly)(&p), &p)
		require.True(t, pWant.Equal(&p))
	})
}

// mulSchoolbook returns a * b mod (X^N+1, Q) with the quadratic algorithm.
func mulSchoolbook(a, b *Poly) (c Poly) {
	var acc [N]int64
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if p := int64(a[i]) * int64(b[j]); i+j < N {
				acc[i+j] += p
			} else {
				acc[i+j-N] -= p
			}
		}
	}
	for i := range acc {
		c[i] = uint16(((acc[i] % Q) + Q) % Q)
	}
	return
}

func testMul(tc *testContext, t *testing.T) {

	t.Run(testString("Mul/Schoolbook"), func(t *testing.T) {
		for trial := 0; trial < 64; trial++ {
			a, b := tc.randomPoly(t), tc.randomPoly(t)
			want := mulSchoolbook(a, b)
			require.True(t, want.Equal(MulNew(a, b)), trial)
		}
	})

	t.Run(testString("Mul/Negacyclic"), func(t *testing.T) {
		// X^(N-1) * X = X^N = -1
		var a, b Poly
		a[N-1], b[1] = 1, 1
		c := MulNew(&a, &b)
		var want Poly
		want[0] = Q - 1
		require.True(t, want.Equal(c))
	})

	t.Run(testString("MulCoeffsThenAdd"), func(t *testing.T) {
		a, b := NTTNew(tc.randomPoly(t)), NTTNew(tc.randomPoly(t))
		acc := NTTNew(tc.randomPoly(t))
		want := *acc
		var prod NTTPoly
		MulCoeffs(a, b, &prod)
		Add(&want, &prod, &want)
		MulCoeffsThenAdd(a, b, acc)
		require.True(t, want.Equal(acc))
	})
}

func testAddSub(tc *testContext, t *testing.T) {

	t.Run(testString("Add/Identity"), func(t *testing.T) {
		a, b := tc.randomPoly(t), tc.randomPoly(t)
		require.True(t, a.Equal(AddNew(a, SubNew(b, b))))
	})

	t.Run(testString("Add/Associativity"), func(t *testing.T) {
		a, b, c := tc.randomPoly(t), tc.randomPoly(t), tc.randomPoly(t)
		require.True(t, AddNew(AddNew(a, b), c).Equal(AddNew(a, AddNew(b, c))))
	})

	t.Run(testString("Neg"), func(t *testing.T) {
		a := tc.randomPoly(t)
		var na, zero Poly
		Neg(a, &na)
		require.True(t, zero.Equal(AddNew(a, &na)))
	})

	t.Run(testString("MulScalar"), func(t *testing.T) {
		a := tc.randomPoly(t)
		var b, c Poly
		MulScalar(a, 3, &b)
		Add(a, a, &c)
		Add(&c, a, &c)
		require.True(t, b.Equal(&c))
	})

	t.Run(testString("NTT/Linearity"), func(t *testing.T) {
		a, b := tc.randomPoly(t), tc.randomPoly(t)
		require.True(t, NTTNew(AddNew(a, b)).Equal(AddNew(NTTNew(a), NTTNew(b))))
	})
}

func testElements(tc *testContext, t *testing.T) {

	t.Run(testString("Elements/DomainMismatch"), func(t *testing.T) {
		a := tc.randomPoly(t)
		b := NTTNew(tc.randomPoly(t))
		out := new(Poly)

		require.ErrorIs(t, AddElements(a, b, out), ErrDomainMismatch)
		require.ErrorIs(t, SubElements(a, b, out), ErrDomainMismatch)
		require.ErrorIs(t, AddElements(a, a, new(NTTPoly)), ErrDomainMismatch)

		var zero Poly
		require.True(t, zero.Equal(out), "output must not be written on error")
	})

	t.Run(testString("Elements/SameDomain"), func(t *testing.T) {
		a, b := tc.randomPoly(t), tc.randomPoly(t)
		out := new(Poly)
		require.NoError(t, AddElements(a, b, out))
		require.True(t, AddNew(a, b).Equal(out))
		require.NoError(t, SubElements(a, b, out))
		require.True(t, SubNew(a, b).Equal(out))

		aNTT, bNTT := NTTNew(a), NTTNew(b)
		outNTT := new(NTTPoly)
		require.NoError(t, AddElements(aNTT, bNTT, outNTT))
		require.True(t, AddNew(aNTT, bNTT).Equal(outNTT))
	})
}

func testMessage(tc *testContext, t *testing.T) {

	t.Run(testString("Message/RoundTrip"), func(t *testing.T) {
		var m, mHave [MessageBytes]byte
		var p Poly
		for trial := 0; trial < 256; trial++ {
			require.NoError(t, sampling.Read(tc.prng, m[:]))
			EncodeMessage(&m, &p)
			for i := range p {
				require.Contains(t, []uint16{0, HalfQ}, p[i])
			}
			DecodeMessage(&p, &mHave)
			require.Equal(t, m, mHave)
		}
	})

	t.Run(testString("Message/Thresholds"), func(t *testing.T) {
		for x := uint16(0); x < Q; x++ {
			// cyclic distances to 0 and to HalfQ
			d0 := math.Min(float64(x), float64(Q-x))
			d1 := math.Abs(float64(x) - HalfQ)
			want := uint8(0)
			if d1 < d0 {
				want = 1
			}
			require.Equal(t, want, decodeBit(x), x)
		}
		require.Equal(t, uint8(0), decodeBit(832))
		require.Equal(t, uint8(1), decodeBit(833))
		require.Equal(t, uint8(1), decodeBit(2496))
		require.Equal(t, uint8(0), decodeBit(2497))
	})

	t.Run(testString("Message/DecodingBound"), func(t *testing.T) {
		for _, bit := range []uint8{0, 1} {
			enc := uint16(bit) * HalfQ
			for e := uint16(0); e <= DecodingBound; e++ {
				require.Equal(t, bit, decodeBit(CAdd(enc, e)), "bit %d, e = +%d", bit, e)
				require.Equal(t, bit, decodeBit(CSub(enc, e)), "bit %d, e = -%d", bit, e)
			}
		}
		// one past the bound, a set bit pushed upwards flips
		require.Equal(t, uint8(0), decodeBit(CAdd(HalfQ, DecodingBound+1)))
	})
}

func testMarshalBinary(tc *testContext, t *testing.T) {

	t.Run(testString("MarshalBinary/Poly"), func(t *testing.T) {
		p := tc.randomPoly(t)
		data, err := p.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, p.BinarySize())

		pHave := new(Poly)
		require.NoError(t, pHave.UnmarshalBinary(data))
		require.True(t, p.Equal(pHave))

		require.ErrorIs(t, new(NTTPoly).UnmarshalBinary(data), ErrDomainMismatch)
		require.ErrorIs(t, pHave.UnmarshalBinary(data[:len(data)-1]), ErrLengthMismatch)
	})

	t.Run(testString("MarshalBinary/NTTPoly"), func(t *testing.T) {
		p := NTTNew(tc.randomPoly(t))
		data, err := p.MarshalBinary()
		require.NoError(t, err)

		pHave := new(NTTPoly)
		require.NoError(t, pHave.UnmarshalBinary(data))
		require.True(t, p.Equal(pHave))

		require.ErrorIs(t, new(Poly).UnmarshalBinary(data), ErrDomainMismatch)
	})

	t.Run(testString("MarshalBinary/InvalidCoefficient"), func(t *testing.T) {
		data, err := new(Poly).MarshalBinary()
		require.NoError(t, err)
		// first coefficient = 0xfff
		data[1] = 0xff
		data[2] |= 0x0f
		require.ErrorIs(t, new(Poly).UnmarshalBinary(data), ErrInvalidEncoding)
	})
}

func testWriterAndReader(tc *testContext, t *testing.T) {

	t.Run(testString("WriterAndReader"), func(t *testing.T) {

		p := tc.randomPoly(t)

		data := make([]byte, 0, p.BinarySize())
		buf := bytes.NewBuffer(data) // not a buffer.Writer

		n, err := p.WriteTo(buf)
		require.NoError(t, err)
		require.Equal(t, int64(p.BinarySize()), n)

		pHave := new(Poly)
		n, err = pHave.ReadFrom(buf)
		require.NoError(t, err)
		require.Equal(t, int64(p.BinarySize()), n)
		require.True(t, p.Equal(pHave))
	})

	t.Run(testString("WriterAndReader/Buffer"), func(t *testing.T) {

		p := NTTNew(tc.randomPoly(t))

		buf := buffer.NewBufferSize(p.BinarySize())
		_, err := p.WriteTo(buf)
		require.NoError(t, err)

		pHave := new(NTTPoly)
		_, err = pHave.ReadFrom(buf)
		require.NoError(t, err)
		require.True(t, p.Equal(pHave))
	})

	t.Run(testString("WriterAndReader/Truncated"), func(t *testing.T) {
		data, err := tc.randomPoly(t).MarshalBinary()
		require.NoError(t, err)
		_, err = new(Poly).ReadFrom(buffer.NewBuffer(data[:100]))
		require.Error(t, err)
	})
}

func testEncoding(tc *testContext, t *testing.T) {

	t.Run(testString("Encoding/Layout"), func(t *testing.T) {
		var p Poly
		p[0], p[1] = 0xabc, 0x123
		b := make([]byte, PolyBytes)
		EncodePoly(&p, b)
		require.Equal(t, []byte{0xbc, 0x3a, 0x12}, b[:3])
	})

	t.Run(testString("Encoding/RoundTrip"), func(t *testing.T) {
		p := tc.randomPoly(t)
		b := make([]byte, PolyBytes)
		EncodePoly(p, b)
		pHave := new(Poly)
		require.NoError(t, DecodePoly(b, pHave))
		require.True(t, p.Equal(pHave))
	})

	t.Run(testString("Encoding/Rejects"), func(t *testing.T) {
		b := make([]byte, PolyBytes)
		require.ErrorIs(t, DecodePoly(b[:PolyBytes-1], new(Poly)), ErrLengthMismatch)

		// last coefficient = Q
		b[PolyBytes-2] = uint8(Q&0xf) << 4
		b[PolyBytes-1] = uint8(Q >> 4)
		require.ErrorIs(t, DecodePoly(b, new(NTTPoly)), ErrInvalidEncoding)

		// last coefficient = Q-1
		b[PolyBytes-2] = uint8((Q-1)&0xf) << 4
		b[PolyBytes-1] = uint8((Q - 1) >> 4)
		pHave := new(NTTPoly)
		require.NoError(t, DecodePoly(b, pHave))
		require.Equal(t, uint16(Q-1), pHave[N-1])
	})
}
