package tlv

import (
	"io"

	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/internal/vlq"
)

// ReadTag consumes a tag field from r per spec §3.1/§4.1 and returns the
// decoded Tag together with the raw octets that were read (cached so callers
// can reuse them as the node's tag-length prefix, per §3.3).
//
// Errors: *Error with KindMalformedTag for a structurally invalid tag,
// KindTagTooLong if the high-tag-number form would need more than
// vlq.MaxBytes continuation octets, or a *BufferUnderflowError if r is
// exhausted before a complete tag can be read.
func ReadTag(r OctetReader) (asn1.Tag, []byte, error) {
	raw := make([]byte, 0, 2)

	b0, err := r.ReadByte()
	if err != nil {
		return asn1.Tag{}, nil, wrapUnderflow(err)
	}
	raw = append(raw, b0)

	tag := asn1.Tag{
		Class: asn1.Class(b0 >> 6),
		Form:  asn1.Form((b0 >> 5) & 1),
	}

	low5 := b0 & 0x1f
	if low5 != 0x1f {
		tag.Number = uint64(low5)
		return tag, raw, nil
	}

	countingReader := &countingByteReader{r: r}
	n, err := vlq.ReadMinimal(countingReader)
	raw = append(raw, countingReader.read...)
	if err != nil {
		switch err {
		case vlq.ErrNotMinimal:
			return asn1.Tag{}, nil, newErr(KindMalformedTag, int64(len(raw)-1), "redundant zero padding in tag number")
		case vlq.ErrOverflow:
			return asn1.Tag{}, nil, newErr(KindTagTooLong, int64(len(raw)), "tag number exceeds 63 bits")
		case io.EOF, io.ErrUnexpectedEOF:
			return asn1.Tag{}, nil, wrapUnderflow(io.ErrUnexpectedEOF)
		default:
			return asn1.Tag{}, nil, wrapUnderflow(err)
		}
	}
	if countingReader.count > vlq.MaxBytes {
		return asn1.Tag{}, nil, newErr(KindTagTooLong, int64(len(raw)), "tag requires %d continuation bytes, limit is %d", countingReader.count, vlq.MaxBytes)
	}
	if n < 31 {
		return asn1.Tag{}, nil, newErr(KindMalformedTag, int64(len(raw)), "tag number %d does not need the high-tag-number form", n)
	}
	tag.Number = n
	return tag, raw, nil
}

// countingByteReader wraps an OctetReader, recording every byte it yields so
// ReadTag can reconstruct the raw tag octets and enforce the continuation
// byte cap.
type countingByteReader struct {
	r     OctetReader
	read  []byte
	count int
}

func (c *countingByteReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0, err
	}
	c.read = append(c.read, b)
	c.count++
	return b, nil
}

// WriteTag emits the canonical octet encoding of tag to w, per §3.1.
func WriteTag(w OctetWriter, tag asn1.Tag) error {
	raw, err := EncodeTag(tag)
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

// EncodeTag renders tag's canonical octet encoding. It fails with
// KindInvalidTagNumber if tag.Number > asn1.MaxTagNumber.
func EncodeTag(tag asn1.Tag) ([]byte, error) {
	if tag.Number > asn1.MaxTagNumber {
		return nil, newErr(KindInvalidTagNumber, -1, "tag number %d exceeds maximum %d", tag.Number, uint64(asn1.MaxTagNumber))
	}
	b0 := byte(tag.Class)<<6 | byte(tag.Form)<<5
	if tag.Number < 31 {
		return []byte{b0 | byte(tag.Number)}, nil
	}
	raw := make([]byte, 1, 1+vlq.Size(tag.Number))
	raw[0] = b0 | 0x1f
	buf := &byteSliceWriter{}
	_, _ = vlq.Write(buf, tag.Number)
	raw = append(raw, buf.b...)
	return raw, nil
}

// ClassifyTag decodes a Tag from its already-read raw octets (as returned by
// ReadTag or produced by EncodeTag). It is the inverse of EncodeTag and is
// useful when callers already hold the tag bytes (e.g. from a cached
// tag-length prefix).
func ClassifyTag(raw []byte) (asn1.Tag, error) {
	tag, consumed, err := ReadTag(NewBufferReader(raw))
	if err != nil {
		return asn1.Tag{}, err
	}
	if len(consumed) != len(raw) {
		return asn1.Tag{}, newErr(KindMalformedTag, int64(len(consumed)), "trailing bytes after tag field")
	}
	return tag, nil
}

// TagFieldSize returns the number of octets EncodeTag would use for tag,
// without allocating.
func TagFieldSize(tag asn1.Tag) int {
	if tag.Number < 31 {
		return 1
	}
	return 1 + vlq.Size(tag.Number)
}

type byteSliceWriter struct{ b []byte }

func (w *byteSliceWriter) WriteByte(b byte) error {
	w.b = append(w.b, b)
	return nil
}

func (w *byteSliceWriter) Write(p []byte) (int, error) {
	w.b = append(w.b, p...)
	return len(p), nil
}
