package bertlv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/bertlv"
)

func TestNewPrimitiveRejectsConstructedTag(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Constructed, asn1.TagOctetString)
	_, err := bertlv.NewPrimitive(tag, []byte{0x01})
	require.Error(t, err)
}

func TestNewPrimitiveCopiesInput(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagOctetString)
	src := []byte{0x01, 0x02}
	p, err := bertlv.NewPrimitive(tag, src)
	require.NoError(t, err)
	src[0] = 0xFF
	assert.Equal(t, []byte{0x01, 0x02}, p.RawValue())
}

func TestPrimitiveBytesRoundTrip(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassContextSpecific, asn1.Primitive, 1)
	p, err := bertlv.NewPrimitive(tag, []byte{0xDE, 0xAD})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x81, 0x02, 0xDE, 0xAD}, p.Bytes())
	assert.EqualValues(t, 4, p.TLVSize())
	assert.Nil(t, p.AsRead())
}

func TestNewConstructedRejectsPrimitiveTag(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagSequence)
	_, err := bertlv.NewConstructed(tag, nil)
	require.Error(t, err)
}

func TestConstructedBytesSumsChildren(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Constructed, asn1.TagSequence)
	child1, err := bertlv.NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagBoolean), []byte{0xFF})
	require.NoError(t, err)
	child2, err := bertlv.NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagInteger), []byte{0x05})
	require.NoError(t, err)

	cons, err := bertlv.NewConstructed(tag, []bertlv.BerTlv{child1, child2})
	require.NoError(t, err)
	assert.EqualValues(t, 6, cons.LengthOfValueField())
	assert.Equal(t, []byte{0x30, 0x06, 0x01, 0x01, 0xFF, 0x02, 0x01, 0x05}, cons.Bytes())
}

func TestConstructedAddIsCopyOnWrite(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Constructed, asn1.TagSequence)
	base, err := bertlv.NewConstructed(tag, nil)
	require.NoError(t, err)

	child, err := bertlv.NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagNull), nil)
	require.NoError(t, err)

	grown, err := base.Add(child)
	require.NoError(t, err)

	assert.Empty(t, base.Children())
	assert.Len(t, grown.Children(), 1)
}

func TestFromValueBytesParsesConcatenatedChildren(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Constructed, asn1.TagSequence)
	cons, err := bertlv.FromValueBytes(tag, []byte{0x01, 0x01, 0xFF, 0x02, 0x01, 0x2A})
	require.NoError(t, err)
	require.Len(t, cons.Children(), 2)
	assert.IsType(t, bertlv.Boolean{}, cons.Children()[0])
	assert.IsType(t, bertlv.Integer{}, cons.Children()[1])
}

func TestFromValueBytesRejectsTrailingPartialTLV(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassUniversal, asn1.Constructed, asn1.TagSequence)
	_, err := bertlv.FromValueBytes(tag, []byte{0x01, 0x01, 0xFF, 0x02})
	require.Error(t, err)
}
