package bertlv

import (
	"strconv"

	"github.com/gematik/lib-smartcards-sub000/asn1"
)

// BitString is the UNIVERSAL 3 primitive. The spec restricts it to the
// primitive form; BER's constructed (fragmented) BIT STRING encoding is
// not modeled.
type BitString struct {
	Primitive
	UnusedBits uint8
	Bits       []byte
	findings   []string
}

// NewBitString builds a BitString from its semantic components.
// unusedBits must be in [0,7]; it is clamped to 0 if bits is empty.
func NewBitString(unusedBits uint8, bits []byte) BitString {
	if len(bits) == 0 {
		unusedBits = 0
	}
	value := make([]byte, 0, 1+len(bits))
	value = append(value, unusedBits)
	value = append(value, bits...)
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagBitString), value)
	b := make([]byte, len(bits))
	copy(b, bits)
	return BitString{Primitive: prim, UnusedBits: unusedBits, Bits: b}
}

func decodeBitString(prim Primitive) SpecificType {
	value := prim.RawValue()
	var findings []string

	var unusedBits uint8
	var bits []byte
	if len(value) == 0 {
		findings = append(findings, "value-field is empty, missing unused-bits octet")
	} else {
		unusedBits = value[0]
		bits = value[1:]
		if unusedBits > 7 {
			findings = append(findings, "unused-bits octet out of range [0,7]")
		}
		if len(bits) == 0 && unusedBits != 0 {
			findings = append(findings, "unused-bits must be 0 when bits is empty")
		}
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	return BitString{Primitive: prim, UnusedBits: unusedBits, Bits: bits, findings: findings}
}

func (b BitString) Comment() string {
	return "BIT STRING := " + strconv.Itoa(len(b.Bits)*8-int(b.UnusedBits)) + " bits"
}
func (b BitString) Findings() []string { return b.findings }
func (b BitString) IsValid() bool      { return len(b.findings) == 0 }

// canonicalValue returns the unused-bits octet followed by b.Bits, which
// may differ from the embedded Primitive's as-read value (e.g. a missing
// unused-bits octet tolerated as zero).
func (b BitString) canonicalValue() []byte {
	value := make([]byte, 0, 1+len(b.Bits))
	value = append(value, b.UnusedBits)
	value = append(value, b.Bits...)
	return value
}

// LengthOfValueField, TagLengthPrefix, Bytes and TLVSize are overridden so
// that a BitString always re-encodes to its canonical value, instead of
// inheriting Primitive's verbatim as-read octets.
func (b BitString) LengthOfValueField() int64 { return int64(len(b.canonicalValue())) }
func (b BitString) TagLengthPrefix() []byte   { return tagLengthPrefix(b.tag, b.LengthOfValueField()) }
func (b BitString) Bytes() []byte             { return buildBytes(b.TagLengthPrefix(), b.canonicalValue()) }
func (b BitString) TLVSize() int64 {
	return int64(len(b.TagLengthPrefix())) + b.LengthOfValueField()
}

func init() {
	registerPrimitive(asn1.TagBitString, decodeBitString)
}
