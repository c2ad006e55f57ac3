package sampling

import (
	"golang.org/x/crypto/sha3"
)

// Shake128 is a [PRNG] reading the SHAKE128 extendable output of a public
// seed followed by two domain-separation bytes. It is the expansion function
// used to derive a public matrix entry from a short seed.
type Shake128 struct {
	h sha3.ShakeHash
}

// NewShake128 returns the SHAKE128 stream of seed || i || j.
func NewShake128(seed []byte, i, j byte) *Shake128 {
	h := sha3.NewShake128()
	h.Write(seed)
	h.Write([]byte{i, j})
	return &Shake128{h: h}
}

// Read reads the next len(p) bytes of the stream into p. It never fails.
func (x *Shake128) Read(p []byte) (n int, err error) {
	return x.h.Read(p)
}
