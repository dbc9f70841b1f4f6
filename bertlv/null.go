package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// Null is the UNIVERSAL 5 primitive: a marker carrying no value.
type Null struct {
	Primitive
	findings []string
}

// NewNull returns the canonical singleton Null value.
func NewNull() Null {
	return nullSingleton
}

func decodeNull(prim Primitive) SpecificType {
	var findings []string
	if len(prim.RawValue()) != 0 {
		findings = append(findings, "value-field present")
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	if len(findings) == 0 {
		s := nullSingleton
		s.Primitive = prim
		return s
	}
	return Null{Primitive: prim, findings: findings}
}

func (n Null) Comment() string   { return "NULL" }
func (n Null) Findings() []string { return n.findings }
func (n Null) IsValid() bool     { return len(n.findings) == 0 }

func init() {
	registerPrimitive(asn1.TagNull, decodeNull)
}
