/*
Package kyber is a pure Go implementation of a Kyber-style key-encapsulation mechanism
over the module lattice Z_q[X]/(X^256+1)^k with q = 3329. The arithmetic lives in the
package ring, the KEM in core/kem, and schemes exposes it through the hpqc KEM interfaces.
*/
package kyber
