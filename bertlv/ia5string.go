package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// Ia5String is the UNIVERSAL 22 primitive, restricted to the 7-bit IA5
// (ASCII) repertoire.
type Ia5String struct {
	Primitive
	Value    string
	findings []string
}

// NewIa5String builds an Ia5String from a Go string without validating
// its character set.
func NewIa5String(value string) Ia5String {
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagIA5String), []byte(value))
	return Ia5String{Primitive: prim, Value: value}
}

func decodeIa5String(prim Primitive) SpecificType {
	value := prim.RawValue()
	var findings []string
	for _, b := range value {
		if b > 0x7F {
			findings = append(findings, "value-field contains bytes outside the 7-bit IA5 repertoire")
			break
		}
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))
	return Ia5String{Primitive: prim, Value: string(value), findings: findings}
}

func (s Ia5String) Comment() string   { return "IA5String := " + s.Value }
func (s Ia5String) Findings() []string { return s.findings }
func (s Ia5String) IsValid() bool     { return len(s.findings) == 0 }

func init() {
	registerPrimitive(asn1.TagIA5String, decodeIa5String)
}
