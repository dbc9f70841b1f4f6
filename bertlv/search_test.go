package bertlv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/bertlv"
)

func buildSequence(t *testing.T, children ...bertlv.BerTlv) bertlv.Sequence {
	t.Helper()
	seq, err := bertlv.NewSequence(children...)
	require.NoError(t, err)
	return seq
}

func TestGetFindsFirstOccurrence(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassContextSpecific, asn1.Primitive, 1)
	first, err := bertlv.NewPrimitive(tag, []byte{0x01})
	require.NoError(t, err)
	second, err := bertlv.NewPrimitive(tag, []byte{0x02})
	require.NoError(t, err)

	seq := buildSequence(t, first, second)

	got, err := seq.Get(tag)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, got.(bertlv.Primitive).RawValue())

	got, err = seq.GetN(tag, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, got.(bertlv.Primitive).RawValue())

	_, err = seq.GetN(tag, 2)
	assert.Error(t, err)
}

func TestGetMissingTagIsNotFound(t *testing.T) {
	seq := buildSequence(t)
	_, err := seq.Get(asn1.NewTag(asn1.ClassContextSpecific, asn1.Primitive, 9))
	var nf *bertlv.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestGetPrimitiveRejectsConstructedMatch(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassContextSpecific, asn1.Constructed, 1)
	inner, err := bertlv.NewConstructed(tag, nil)
	require.NoError(t, err)
	seq := buildSequence(t, inner)

	_, err = seq.GetPrimitive(tag)
	var mismatch *bertlv.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestGetConstructedRejectsPrimitiveMatch(t *testing.T) {
	tag := asn1.NewTag(asn1.ClassContextSpecific, asn1.Primitive, 1)
	leaf, err := bertlv.NewPrimitive(tag, []byte{0x01})
	require.NoError(t, err)
	seq := buildSequence(t, leaf)

	_, err = seq.GetConstructed(tag)
	var mismatch *bertlv.TypeMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestGetBooleanScansByConcreteType(t *testing.T) {
	octetTag := asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagOctetString)
	octet, err := bertlv.NewPrimitive(octetTag, []byte{0xAA})
	require.NoError(t, err)

	seq := buildSequence(t, octet, bertlv.NewBoolean(true))

	b, err := seq.GetBoolean()
	require.NoError(t, err)
	assert.True(t, b.Value)
}

func TestGetBooleanNIndexesPositionally(t *testing.T) {
	octetTag := asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagOctetString)
	octet, err := bertlv.NewPrimitive(octetTag, []byte{0xAA})
	require.NoError(t, err)

	seq := buildSequence(t, bertlv.NewBoolean(true), octet)

	_, err = seq.GetBooleanN(1)
	var nf *bertlv.NotFoundError
	assert.ErrorAs(t, err, &nf)

	b, err := seq.GetBooleanN(0)
	require.NoError(t, err)
	assert.True(t, b.Value)
}

func TestGetIntegerNotFoundWhenAbsent(t *testing.T) {
	seq := buildSequence(t, bertlv.NewBoolean(false))
	_, err := seq.GetInteger()
	assert.Error(t, err)
}
