package buffer

import (
	"fmt"
	"io"
)

// WriteUint8Slice writes c to w. Short writes are reported as
// io.ErrShortWrite.
func WriteUint8Slice(w io.Writer, c []uint8) (n int64, err error) {
	nint, err := w.Write(c)
	if err == nil && nint != len(c) {
		err = io.ErrShortWrite
	}
	return int64(nint), err
}

// WriteTagged writes the tag byte followed by payload to w, then flushes w.
func WriteTagged(w Writer, tag uint8, payload []uint8) (n int64, err error) {

	var inc int64
	if inc, err = WriteUint8Slice(w, []byte{tag}); err != nil {
		return n + inc, fmt.Errorf("cannot WriteTagged: tag: %w", err)
	}
	n += inc

	if inc, err = WriteUint8Slice(w, payload); err != nil {
		return n + inc, fmt.Errorf("cannot WriteTagged: payload: %w", err)
	}
	n += inc

	return n, w.Flush()
}
