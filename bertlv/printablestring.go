package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// PrintableString is the UNIVERSAL 19 primitive, restricted to the
// PrintableString character set of X.680 §41.4: A-Z, a-z, 0-9, space, and
// '()+,-./:=?
type PrintableString struct {
	Primitive
	Value    string
	findings []string
}

// NewPrintableString builds a PrintableString from a Go string without
// validating its character set; use DecodeNode's findings to validate
// untrusted input instead.
func NewPrintableString(value string) PrintableString {
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagPrintableString), []byte(value))
	return PrintableString{Primitive: prim, Value: value}
}

func isPrintableStringChar(b byte) bool {
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?':
		return true
	}
	return false
}

func decodePrintableString(prim Primitive) SpecificType {
	value := prim.RawValue()
	var findings []string
	for _, b := range value {
		if !isPrintableStringChar(b) {
			findings = append(findings, "value-field contains characters outside the PrintableString set")
			break
		}
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))
	return PrintableString{Primitive: prim, Value: string(value), findings: findings}
}

func (s PrintableString) Comment() string   { return "PrintableString := " + s.Value }
func (s PrintableString) Findings() []string { return s.findings }
func (s PrintableString) IsValid() bool     { return len(s.findings) == 0 }

func init() {
	registerPrimitive(asn1.TagPrintableString, decodePrintableString)
}
