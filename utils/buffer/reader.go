package buffer

import (
	"fmt"
	"io"
)

// ReadUint8 reads a byte from r and stores the result into c.
func ReadUint8(r Reader, c *uint8) (n int64, err error) {
	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint8: c is nil")
	}
	if *c, err = r.ReadByte(); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return 0, err
	}
	return 1, nil
}

// ReadUint8Slice reads exactly len(c) bytes from r into c. It returns
// io.ErrUnexpectedEOF if r is exhausted before c is filled.
func ReadUint8Slice(r io.Reader, c []uint8) (n int64, err error) {
	nint, err := io.ReadFull(r, c)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return int64(nint), err
}

// ReadTagged reads a tag byte and then exactly len(payload) bytes from r,
// the layout written by [WriteTagged].
func ReadTagged(r Reader, payload []uint8) (tag uint8, n int64, err error) {

	if n, err = ReadUint8(r, &tag); err != nil {
		return tag, n, fmt.Errorf("cannot ReadTagged: tag: %w", err)
	}

	var inc int64
	if inc, err = ReadUint8Slice(r, payload); err != nil {
		return tag, n + inc, fmt.Errorf("cannot ReadTagged: payload: %w", err)
	}

	return tag, n + inc, nil
}
