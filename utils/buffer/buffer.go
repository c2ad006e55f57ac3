// Package buffer reads and writes the fixed-size binary encodings of the
// ring and kem packages. A polynomial is a one-byte domain tag followed by
// its packed coefficients; keys and ciphertexts are concatenations of
// packed polynomials.
package buffer

import (
	"errors"
	"io"
)

// ErrFull is returned by a [Buffer] written past its capacity.
var ErrFull = errors.New("buffer is full")

// Writer is a buffered writer. The WriteTo methods flush it once the
// object is written. bufio.Writer and [Buffer] implement it.
type Writer interface {
	io.Writer
	Flush() error
}

// Reader is a reader that does not over-read: consecutive ReadFrom calls
// on the same Reader see consecutive objects. bufio.Reader, bytes.Reader,
// bytes.Buffer and [Buffer] implement it.
type Reader interface {
	io.Reader
	io.ByteReader
}

// Buffer is a fixed capacity byte buffer implementing [Writer] and
// [Reader], used to marshal objects of a known binary size without
// reallocation.
type Buffer struct {
	buf []byte
	w   int
	r   int
}

// NewBuffer returns a Buffer whose unread content is p. It cannot be
// written to until it is fully read.
func NewBuffer(p []byte) *Buffer {
	return &Buffer{buf: p, w: len(p)}
}

// NewBufferSize returns an empty Buffer of the given capacity.
func NewBufferSize(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// Write appends p to b. It writes nothing and returns [ErrFull] if p does not
// fit in the remaining capacity.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p) > len(b.buf)-b.w {
		return 0, ErrFull
	}
	n = copy(b.buf[b.w:], p)
	b.w += n
	return n, nil
}

// Flush is a no-op.
func (b *Buffer) Flush() error {
	return nil
}

// Read reads the next unread bytes of b into p.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.r == b.w {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n = copy(p, b.buf[b.r:b.w])
	b.r += n
	return n, nil
}

// ReadByte reads the next unread byte of b.
func (b *Buffer) ReadByte() (byte, error) {
	if b.r == b.w {
		return 0, io.EOF
	}
	c := b.buf[b.r]
	b.r++
	return c, nil
}

// Bytes returns the written bytes of b.
func (b *Buffer) Bytes() []byte {
	return b.buf[:b.w]
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int {
	return b.w - b.r
}
