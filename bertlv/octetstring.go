package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// OctetString is the UNIVERSAL 4 primitive: an opaque byte string with no
// validation beyond the length field itself.
type OctetString struct {
	Primitive
	Value    []byte
	findings []string
}

// NewOctetString builds an OctetString from raw bytes.
func NewOctetString(value []byte) OctetString {
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagOctetString), value)
	v := make([]byte, len(value))
	copy(v, value)
	return OctetString{Primitive: prim, Value: v}
}

func decodeOctetString(prim Primitive) SpecificType {
	var findings []string
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))
	return OctetString{Primitive: prim, Value: prim.RawValue(), findings: findings}
}

func (o OctetString) Comment() string   { return "OCTET STRING" }
func (o OctetString) Findings() []string { return o.findings }
func (o OctetString) IsValid() bool     { return len(o.findings) == 0 }

func init() {
	registerPrimitive(asn1.TagOctetString, decodeOctetString)
}
