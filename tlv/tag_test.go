package tlv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/tlv"
)

func TestTagRoundTrip(t *testing.T) {
	numbers := []uint64{0, 1, 30, 31, 127, 128, 1<<14 - 1, 1 << 14, 1 << 21, 1 << 28,
		1 << 35, 1 << 42, 1 << 49, 1 << 56, 1<<63 - 1}

	for _, class := range []asn1.Class{asn1.ClassUniversal, asn1.ClassApplication, asn1.ClassContextSpecific, asn1.ClassPrivate} {
		for _, form := range []asn1.Form{asn1.Primitive, asn1.Constructed} {
			for _, n := range numbers {
				tag := asn1.NewTag(class, form, n)
				raw, err := tlv.EncodeTag(tag)
				require.NoError(t, err)

				got, err := tlv.ClassifyTag(raw)
				require.NoError(t, err)
				assert.Equal(t, tag, got)

				got2, consumed, err := tlv.ReadTag(tlv.NewBufferReader(raw))
				require.NoError(t, err)
				assert.Equal(t, tag, got2)
				assert.Equal(t, raw, consumed)
				assert.Equal(t, len(raw), tlv.TagFieldSize(tag))
			}
		}
	}
}

func TestTagBoundarySizes(t *testing.T) {
	tests := []struct {
		number uint64
		size   int
	}{
		{30, 1},
		{31, 2},
		{1<<7 - 1, 2},
		{1 << 7, 3},
		{1<<14 - 1, 3},
		{1 << 14, 4},
		{1<<63 - 1, 10},
	}
	for _, tc := range tests {
		tag := asn1.NewTag(asn1.ClassContextSpecific, asn1.Primitive, tc.number)
		assert.Equal(t, tc.size, tlv.TagFieldSize(tag), "number=%d", tc.number)
	}
}

func TestReadTagOneByteNumberMustUseOneByte(t *testing.T) {
	// 0x1F 0x1E: high-tag-number form encoding the number 30, which fits in
	// one byte. This is invalid per spec §4.1.
	_, _, err := tlv.ReadTag(tlv.NewBufferReader([]byte{0x1F, 0x1E}))
	require.Error(t, err)
	var tlvErr *tlv.Error
	require.ErrorAs(t, err, &tlvErr)
	assert.Equal(t, tlv.KindMalformedTag, tlvErr.Kind)
}

func TestReadTagRedundantPadding(t *testing.T) {
	// 0x1F 0x80 0x1F: leading zero byte (0x80) in the high-tag-number form.
	_, _, err := tlv.ReadTag(tlv.NewBufferReader([]byte{0x1F, 0x80, 0x1F}))
	require.Error(t, err)
	var tlvErr *tlv.Error
	require.ErrorAs(t, err, &tlvErr)
	assert.Equal(t, tlv.KindMalformedTag, tlvErr.Kind)
}

func TestReadTagAloneIsUnderflow(t *testing.T) {
	_, _, err := tlv.ReadTag(tlv.NewBufferReader([]byte{0x1F}))
	require.Error(t, err)
	var underflow *tlv.BufferUnderflowError
	require.ErrorAs(t, err, &underflow)
}

func TestReadTagEmptyIsUnderflow(t *testing.T) {
	_, _, err := tlv.ReadTag(tlv.NewBufferReader(nil))
	require.Error(t, err)
	var underflow *tlv.BufferUnderflowError
	require.ErrorAs(t, err, &underflow)
}

func TestEncodeTagInvalidNumber(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.MaxTagNumber+1)
	_, err := tlv.EncodeTag(tag)
	require.Error(t, err)
	var tlvErr *tlv.Error
	require.ErrorAs(t, err, &tlvErr)
	assert.Equal(t, tlv.KindInvalidTagNumber, tlvErr.Kind)
}

func TestReadTagSimpleForms(t *testing.T) {
	// 0x81: context-specific, primitive, number 1.
	tag, raw, err := tlv.ReadTag(tlv.NewBufferReader([]byte{0x81}))
	require.NoError(t, err)
	assert.Equal(t, asn1.NewTag(asn1.ClassContextSpecific, asn1.Primitive, 1), tag)
	assert.Equal(t, []byte{0x81}, raw)
}
