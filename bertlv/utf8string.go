package bertlv

import (
	"unicode/utf8"

	"github.com/gematik/lib-smartcards-sub000/asn1"
)

// replacementChar is substituted for byte sequences a character-string
// specific type cannot map to a character, per spec §9 ("String
// conversions via platform charset tables"). The decode never fails; it
// records a finding instead.
const replacementChar = '•'

// Utf8String is the UNIVERSAL 12 primitive.
type Utf8String struct {
	Primitive
	Value    string
	findings []string
}

// NewUtf8String builds a Utf8String from a Go string (always valid UTF-8).
func NewUtf8String(value string) Utf8String {
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagUTF8String), []byte(value))
	return Utf8String{Primitive: prim, Value: value}
}

func decodeUtf8String(prim Primitive) SpecificType {
	value := prim.RawValue()
	var findings []string

	var sb []rune
	ok := true
	for i := 0; i < len(value); {
		r, size := utf8.DecodeRune(value[i:])
		if r == utf8.RuneError && size <= 1 {
			sb = append(sb, replacementChar)
			ok = false
			i++
			continue
		}
		sb = append(sb, r)
		i += size
	}
	if !ok {
		findings = append(findings, "value-field is not valid UTF-8")
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	return Utf8String{Primitive: prim, Value: string(sb), findings: findings}
}

func (s Utf8String) Comment() string   { return "UTF8String := " + s.Value }
func (s Utf8String) Findings() []string { return s.findings }
func (s Utf8String) IsValid() bool     { return len(s.findings) == 0 }

func init() {
	registerPrimitive(asn1.TagUTF8String, decodeUtf8String)
}
