package bertlv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/bertlv"
	"github.com/gematik/lib-smartcards-sub000/tlv"
)

func mustDecode(t *testing.T, b []byte) bertlv.BerTlv {
	t.Helper()
	node, err := bertlv.DecodeNode(tlv.NewBufferReader(b))
	require.NoError(t, err)
	return node
}

// Scenario 1: a primitive decodes byte-identically on re-encode.
func TestScenarioPrimitive(t *testing.T) {
	node := mustDecode(t, []byte{0x81, 0x02, 0xAA, 0xBB})
	p, ok := node.(bertlv.Primitive)
	require.True(t, ok)
	assert.Equal(t, []byte{0xAA, 0xBB}, p.RawValue())
	assert.Equal(t, []byte{0x81, 0x02, 0xAA, 0xBB}, node.Bytes())
}

// Scenario 2: nested constructed, definite length.
func TestScenarioNestedConstructedDefinite(t *testing.T) {
	raw := []byte{0xA1, 0x07, 0x87, 0x01, 0x99, 0x81, 0x02, 0x12, 0x34}
	node := mustDecode(t, raw)
	cons, ok := node.(bertlv.Constructed)
	require.True(t, ok)
	assert.EqualValues(t, 7, cons.LengthOfValueField())
	require.Len(t, cons.Children(), 2)
	first := cons.Children()[0].(bertlv.Primitive)
	assert.Equal(t, []byte{0x99}, first.RawValue())
	second := cons.Children()[1].(bertlv.Primitive)
	assert.Equal(t, []byte{0x12, 0x34}, second.RawValue())
	assert.Equal(t, raw, node.Bytes())
}

// Scenario 3: indefinite constructed with a nested indefinite child.
func TestScenarioIndefiniteNested(t *testing.T) {
	raw := []byte{
		0xF1, 0x80,
		0x81, 0x03, 0x05, 0x06, 0x07,
		0xF2, 0x80, 0xC2, 0x01, 0x05, 0xC3, 0x01, 0x50, 0x00, 0x00,
		0x44, 0x02, 0x05, 0x06,
		0x00, 0x00,
	}
	node := mustDecode(t, raw)
	cons, ok := node.(bertlv.Constructed)
	require.True(t, ok)
	assert.EqualValues(t, 17, cons.LengthOfValueField())
	require.Len(t, cons.Children(), 3)

	asRead := cons.AsRead()
	require.NotNil(t, asRead)
	assert.True(t, asRead.IndefiniteForm)

	inner, ok := cons.Children()[1].(bertlv.Constructed)
	require.True(t, ok)
	assert.Len(t, inner.Children(), 2)

	want := []byte{0xF1, 0x11, 0x81, 0x03, 0x05, 0x06, 0x07, 0xF2, 0x06, 0xC2, 0x01, 0x05, 0xC3, 0x01, 0x50, 0x44, 0x02, 0x05, 0x06}
	assert.Equal(t, want, node.Bytes())
}

// Scenario 4: a Boolean with a tolerated length deviation.
func TestScenarioBooleanFindings(t *testing.T) {
	node := mustDecode(t, []byte{0x01, 0x02, 0xFF, 0x00})
	b, ok := node.(bertlv.Boolean)
	require.True(t, ok)
	assert.True(t, b.Value)
	assert.False(t, b.IsValid())
	assert.Equal(t, []string{"length of value-field unequal to 1"}, b.Findings())
	assert.Equal(t, []byte{0x01, 0x01, 0xFF}, node.Bytes())
}

// Scenario 5: a non-minimal length encoding is tolerated with a finding.
func TestScenarioNonMinimalLength(t *testing.T) {
	node := mustDecode(t, []byte{0x04, 0x81, 0x03, 0x11, 0x22, 0x33})
	os, ok := node.(bertlv.OctetString)
	require.True(t, ok)
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, os.Value)
	assert.Equal(t, []string{"non-minimal length encoding"}, os.Findings())
	assert.Equal(t, []byte{0x04, 0x03, 0x11, 0x22, 0x33}, node.Bytes())
}

// A redundant sign-extension octet is tolerated with a finding, and the
// node re-encodes to its canonical minimal-length form, not the as-read
// octets.
func TestIntegerRedundantSignExtensionCanonicalizes(t *testing.T) {
	node := mustDecode(t, []byte{0x02, 0x02, 0x00, 0x05})
	i, ok := node.(bertlv.Integer)
	require.True(t, ok)
	assert.EqualValues(t, 5, i.Value.Int64())
	assert.Equal(t, []string{"redundant leading sign-extension octet"}, i.Findings())
	assert.Equal(t, []byte{0x02, 0x01, 0x05}, node.Bytes())
}

// A missing unused-bits octet is tolerated with a finding, and the node
// re-encodes with the octet restored.
func TestBitStringMissingUnusedBitsOctetCanonicalizes(t *testing.T) {
	node := mustDecode(t, []byte{0x03, 0x00})
	bs, ok := node.(bertlv.BitString)
	require.True(t, ok)
	assert.Equal(t, []string{"value-field is empty, missing unused-bits octet"}, bs.Findings())
	assert.Equal(t, []byte{0x03, 0x01, 0x00}, node.Bytes())
}

// Scenario 6: a length overflow is rejected without building any node.
func TestScenarioOverflowRejected(t *testing.T) {
	raw := append([]byte{0xE1, 0x88, 0x80}, make([]byte, 7)...)
	_, err := bertlv.DecodeNode(tlv.NewBufferReader(raw))
	require.Error(t, err)
	var tlvErr *tlv.Error
	require.ErrorAs(t, err, &tlvErr)
	assert.Equal(t, tlv.KindLengthOverflow, tlvErr.Kind)
}

func TestDecodePrimitiveRejectsIndefiniteLength(t *testing.T) {
	_, err := bertlv.DecodeNode(tlv.NewBufferReader([]byte{0x81, 0x80}))
	require.Error(t, err)
	var tlvErr *tlv.Error
	require.ErrorAs(t, err, &tlvErr)
	assert.Equal(t, tlv.KindMalformedEncoding, tlvErr.Kind)
}

func TestDecodeDefiniteConstructedShortfallIsMalformed(t *testing.T) {
	// Outer claims 4 value bytes: 0x01 0x01 0xFF (a complete Boolean child)
	// leaves one dangling byte (0x00) that cannot start a valid child TLV
	// within the remaining span — a structural mismatch, not a source
	// that simply ran out of bytes.
	_, err := bertlv.DecodeNode(tlv.NewBufferReader([]byte{0xA0, 0x04, 0x01, 0x01, 0xFF, 0x00}))
	require.Error(t, err)
	var tlvErr *tlv.Error
	require.ErrorAs(t, err, &tlvErr)
	assert.Equal(t, tlv.KindMalformedEncoding, tlvErr.Kind)
}

func TestDecodeDefiniteOuterLengthExceedsSourceIsMalformed(t *testing.T) {
	// Outer claims 10 value bytes but the source ends after 3.
	_, err := bertlv.DecodeNode(tlv.NewBufferReader([]byte{0xA0, 0x0A, 0x01, 0x01, 0xFF}))
	require.Error(t, err)
	var tlvErr *tlv.Error
	require.ErrorAs(t, err, &tlvErr)
	assert.Equal(t, tlv.KindMalformedEncoding, tlvErr.Kind)
}

func TestIndefiniteConstructedEmptyIsEmptyConstructed(t *testing.T) {
	node := mustDecode(t, []byte{0xA0, 0x80, 0x00, 0x00})
	cons, ok := node.(bertlv.Constructed)
	require.True(t, ok)
	assert.Empty(t, cons.Children())
	assert.EqualValues(t, 0, cons.LengthOfValueField())
}

func TestIndefiniteConstructedWithoutEoCIsUnderflow(t *testing.T) {
	_, err := bertlv.DecodeNode(tlv.NewBufferReader([]byte{0xA0, 0x80, 0x81, 0x01, 0xAA}))
	require.Error(t, err)
	var underflow *tlv.Error
	require.ErrorAs(t, err, &underflow)
	assert.Equal(t, tlv.KindBufferUnderflow, underflow.Kind)
}

func TestUniversalTagsDispatchToSpecificTypes(t *testing.T) {
	tests := []struct {
		raw  []byte
		want BerTlvKind
	}{
		{[]byte{0x01, 0x01, 0xFF}, KindBoolean},
		{[]byte{0x02, 0x01, 0x05}, KindInteger},
		{[]byte{0x04, 0x02, 0xAA, 0xBB}, KindOctetString},
		{[]byte{0x05, 0x00}, KindNull},
		{[]byte{0x06, 0x03, 0x2A, 0x03, 0x04}, KindOid},
		{[]byte{0x0C, 0x03, 'f', 'o', 'o'}, KindUtf8String},
		{[]byte{0x30, 0x03, 0x01, 0x01, 0x00}, KindSequence},
		{[]byte{0x31, 0x03, 0x01, 0x01, 0x00}, KindSet},
	}
	for _, tc := range tests {
		node := mustDecode(t, tc.raw)
		assert.Equal(t, tc.want, kindOf(node), "raw=% X", tc.raw)
	}
}

type BerTlvKind int

const (
	KindOther BerTlvKind = iota
	KindBoolean
	KindInteger
	KindOctetString
	KindNull
	KindOid
	KindUtf8String
	KindSequence
	KindSet
)

func kindOf(node bertlv.BerTlv) BerTlvKind {
	switch node.(type) {
	case bertlv.Boolean:
		return KindBoolean
	case bertlv.Integer:
		return KindInteger
	case bertlv.OctetString:
		return KindOctetString
	case bertlv.Null:
		return KindNull
	case bertlv.Oid:
		return KindOid
	case bertlv.Utf8String:
		return KindUtf8String
	case bertlv.Sequence:
		return KindSequence
	case bertlv.Set:
		return KindSet
	default:
		return KindOther
	}
}

func TestOidArcDecoding(t *testing.T) {
	// 1.2.840.113549 (PKCS namespace): 2A 86 48 86 F7 0D
	node := mustDecode(t, []byte{0x06, 0x06, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D})
	oid, ok := node.(bertlv.Oid)
	require.True(t, ok)
	assert.Equal(t, []uint64{1, 2, 840, 113549}, oid.Arcs)
	assert.True(t, oid.IsValid())
}

func TestContextSpecificTagsAreNotDecorated(t *testing.T) {
	// Tag 0x80 collides numerically with UNIVERSAL EndOfContent's number
	// (0) but is CONTEXT-SPECIFIC, so it must not be dispatched.
	node := mustDecode(t, []byte{0x80, 0x01, 0x07})
	_, isPrimitive := node.(bertlv.Primitive)
	assert.True(t, isPrimitive)
	assert.Equal(t, asn1.ClassContextSpecific, node.Tag().Class)
}
