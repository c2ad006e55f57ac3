package kem

import (
	"crypto/subtle"
	"encoding/hex"
	"math/bits"
)

// Message is an N-bit message, bit i being bit i%8 of byte i/8.
// The message encapsulated in a ciphertext is the shared secret.
type Message [MessageSize]byte

// Equal returns true if m and other are equal, in constant time.
func (m *Message) Equal(other *Message) bool {
	return subtle.ConstantTimeCompare(m[:], other[:]) == 1
}

// Bit returns bit i of the message.
func (m *Message) Bit(i int) uint8 {
	return (m[i>>3] >> (i & 7)) & 1
}

// Distance returns the number of bits in which m and other differ.
func (m *Message) Distance(other *Message) (d int) {
	for i := range m {
		d += bits.OnesCount8(m[i] ^ other[i])
	}
	return
}

// String returns the hexadecimal encoding of the message.
func (m Message) String() string {
	return hex.EncodeToString(m[:])
}
