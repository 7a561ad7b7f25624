// Package codec implements the binary encoding used for history records.
// Each record is self-describing: strings carry a little-endian u64 byte
// length, variant tags are a u32, and booleans and option tags are a single
// byte. Because every record embeds its own framing, independently encoded
// records can be concatenated back to back and decoded again as a sequence
// with no external index.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrShortBuffer is returned when a record claims more bytes than remain in
// the buffer. A history file that produces it is considered corrupt.
var ErrShortBuffer = errors.New("codec: record truncated")

// AppendUint64 appends v as a little-endian u64.
func AppendUint64(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// AppendUint32 appends v as a little-endian u32.
func AppendUint32(dst []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(dst, v)
}

// AppendBool appends a single 0/1 byte.
func AppendBool(dst []byte, v bool) []byte {
	if v {
		return append(dst, 1)
	}
	return append(dst, 0)
}

// AppendString appends the string's byte length as a u64 followed by its
// bytes.
func AppendString(dst []byte, s string) []byte {
	dst = AppendUint64(dst, uint64(len(s)))
	return append(dst, s...)
}

// Reader consumes encoded records from a byte buffer. Decoding functions
// pull primitive values in field order; any read past the end of the buffer
// fails with ErrShortBuffer.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader over buf. The Reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

func (r *Reader) take(n int) ([]byte, error) {
	if n < 0 || r.Len() < n {
		return nil, ErrShortBuffer
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b, nil
}

// Uint64 reads a little-endian u64.
func (r *Reader) Uint64() (uint64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Uint32 reads a little-endian u32.
func (r *Reader) Uint32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Bool reads a single byte and requires it to be 0 or 1.
func (r *Reader) Bool() (bool, error) {
	b, err := r.take(1)
	if err != nil {
		return false, err
	}
	switch b[0] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("codec: invalid bool byte %#x", b[0])
	}
}

// String reads a u64 length prefix followed by that many bytes.
func (r *Reader) String() (string, error) {
	n, err := r.Uint64()
	if err != nil {
		return "", err
	}
	if n > uint64(r.Len()) {
		return "", ErrShortBuffer
	}
	b, err := r.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}
