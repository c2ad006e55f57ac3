package ring

import (
	"github.com/tuneinsight/kyber/utils"
)

// PrimitiveRoot is the primitive 256-th root of unity modulo Q from which the
// NTT tables are derived.
const PrimitiveRoot = 17

// zetas[i] = PrimitiveRoot^BitReverse(i, 7) * 2^16 mod Q.
// These are the twiddle factors of the butterflies, in Montgomery form.
var zetas = [N / 2]uint16{
	2285, 2571, 2970, 1812, 1493, 1422, 287, 202, 3158, 622, 1577, 182, 962, 2127, 1855, 1468,
	573, 2004, 264, 383, 2500, 1458, 1727, 3199, 2648, 1017, 732, 608, 1787, 411, 3124, 1758,
	1223, 652, 2777, 1015, 2036, 1491, 3047, 1785, 516, 3321, 3009, 2663, 1711, 2167, 126, 1469,
	2476, 3239, 3058, 830, 107, 1908, 3082, 2378, 2931, 961, 1821, 2604, 448, 2264, 677, 2054,
	2226, 430, 555, 843, 2078, 871, 1550, 105, 422, 587, 177, 3094, 3038, 2869, 1574, 1653,
	3083, 778, 1159, 3182, 2552, 1483, 2727, 1119, 1739, 644, 2457, 349, 418, 329, 3173, 3254,
	817, 1097, 603, 610, 1322, 2044, 1864, 384, 2114, 3193, 1218, 1994, 2455, 220, 2142, 1670,
	2144, 1799, 2051, 794, 1819, 2475, 2459, 478, 3221, 3021, 996, 991, 958, 1869, 1522, 1628,
}

// gammas[i] = PrimitiveRoot^(2*BitReverse(i, 7)+1) mod Q.
// X^N+1 factors as the product over i of X^2 - gammas[i].
var gammas = [N / 2]uint16{
	17, 3312, 2761, 568, 583, 2746, 2649, 680, 1637, 1692, 723, 2606, 2288, 1041, 1100, 2229,
	1409, 1920, 2662, 667, 3281, 48, 233, 3096, 756, 2573, 2156, 1173, 3015, 314, 3050, 279,
	1703, 1626, 1651, 1678, 2789, 540, 1789, 1540, 1847, 1482, 952, 2377, 1461, 1868, 2687, 642,
	939, 2390, 2308, 1021, 2437, 892, 2388, 941, 733, 2596, 2337, 992, 268, 3061, 641, 2688,
	1584, 1745, 2298, 1031, 2037, 1292, 3220, 109, 375, 2954, 2549, 780, 2090, 1239, 1645, 1684,
	1063, 2266, 319, 3010, 2773, 556, 757, 2572, 2099, 1230, 561, 2768, 2466, 863, 2594, 735,
	2804, 525, 1092, 2237, 403, 2926, 1026, 2303, 1143, 2186, 2150, 1179, 2775, 554, 886, 2443,
	1722, 1607, 1212, 2117, 1874, 1455, 1029, 2300, 2110, 1219, 2935, 394, 885, 2444, 2154, 1175,
}

// nttScale is (N/2)^-1 * 2^16 mod Q, the Montgomery-form factor applied at
// the end of the inverse transform. The inverse of N/2 is obtained once with
// Fermat's little theorem.
var nttScale = MForm(utils.ModInverse[uint16](N/2, Q))

// Zetas returns a copy of the twiddle factors of the NTT, in Montgomery form.
func Zetas() (z [N / 2]uint16) {
	return zetas
}

// Gammas returns a copy of the roots X^2 - gamma of the base multiplication.
func Gammas() (g [N / 2]uint16) {
	return gammas
}
