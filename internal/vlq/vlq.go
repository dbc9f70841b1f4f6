// Package vlq implements the base-128 variable-length quantity encoding BER
// uses for tag numbers ≥ 31 (the "high tag number form" of Rec. ITU-T X.690,
// Section 8.1.2.4). A VLQ is a big-endian base-128 representation of an
// unsigned integer: every byte but the last has its high bit set to signal
// that another byte follows.
//
// Unlike a general-purpose VLQ codec, this package is narrowed to uint64 —
// the only width the tag codec in package tlv needs — and exposes an
// explicit MaxBytes so callers can reject encodings that could never
// represent a value in [0, 2^63-1] without reading arbitrarily far ahead.
package vlq

import (
	"io"
	"math/bits"

	"github.com/pkg/errors"
)

// MaxBytes is the largest number of continuation bytes a minimally-encoded
// VLQ may have while still fitting a 63-bit value (ceil(63/7) = 9).
const MaxBytes = 9

var (
	// ErrNotMinimal indicates a VLQ whose leading byte is the padding byte
	// 0x80, violating the "no redundant zero padding" rule of spec §3.1.
	ErrNotMinimal = errors.New("vlq: not minimally encoded")
	// ErrOverflow indicates a VLQ that would need more than 63 bits to
	// represent, i.e. more than MaxBytes continuation bytes.
	ErrOverflow = errors.New("vlq: value exceeds 63 bits")
)

// Read parses an unsigned VLQ from r, tolerating redundant leading 0x80
// padding bytes. Read only consumes the bytes that belong to the VLQ. If r
// returns io.EOF on the very first read, the returned error is io.EOF; any
// later EOF is reported as io.ErrUnexpectedEOF.
func Read(r io.ByteReader) (uint64, error) {
	return read(r, false)
}

// ReadMinimal works like Read but rejects a VLQ that starts with the padding
// byte 0x80, returning ErrNotMinimal.
func ReadMinimal(r io.ByteReader) (uint64, error) {
	return read(r, true)
}

func read(r io.ByteReader, minimal bool) (ret uint64, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b == 0x80 && minimal {
		return 0, ErrNotMinimal
	}

	ret = uint64(b & 0x7f)
	numBits := bits.Len8(b & 0x7f)

	for b&0x80 != 0 {
		if b, err = r.ReadByte(); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return 0, err
		}
		ret <<= 7
		ret |= uint64(b & 0x7f)

		if numBits == 0 {
			numBits = bits.Len8(b & 0x7f)
		} else {
			numBits += 7
		}
		if numBits > 63 {
			return 0, ErrOverflow
		}
	}
	return ret, nil
}

// Size returns the number of bytes Write uses to encode n.
func Size(n uint64) int {
	if n == 0 {
		return 1
	}
	l := 0
	for i := n; i > 0; i >>= 7 {
		l++
	}
	return l
}

// Write encodes n as a minimally-encoded VLQ into w, returning the number of
// bytes written.
func Write(w io.ByteWriter, n uint64) (int, error) {
	l := Size(n)
	for j := l - 1; j >= 0; j-- {
		b := byte(n>>(uint(j)*7)) & 0x7f
		if j > 0 {
			b |= 0x80
		}
		if err := w.WriteByte(b); err != nil {
			return l - 1 - j, err
		}
	}
	return l, nil
}
