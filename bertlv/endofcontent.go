package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// EndOfContent is the UNIVERSAL 0 primitive marking the terminator of an
// indefinite-length constructed encoding. A well-formed occurrence has an
// empty value field. The indefinite-length child loop consumes the marker
// itself rather than returning it as a child; an EndOfContent surfaces when
// a caller decodes a bare "00 00" (or a non-empty variant) directly, or
// when one appears among the children of a definite-length constructed
// node.
type EndOfContent struct {
	Primitive
	findings []string
}

// NewEndOfContent returns the canonical singleton End-of-Content value.
func NewEndOfContent() EndOfContent {
	return endOfContentSingleton
}

func decodeEndOfContent(prim Primitive) SpecificType {
	var findings []string
	if len(prim.RawValue()) != 0 {
		findings = append(findings, "value-field present")
	}
	if f := nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()); f != "" {
		findings = appendIfNotEmpty(findings, f)
	}
	if len(findings) == 0 {
		s := endOfContentSingleton
		s.Primitive = prim
		return s
	}
	return EndOfContent{Primitive: prim, findings: findings}
}

func (e EndOfContent) Comment() string   { return "END-OF-CONTENT" }
func (e EndOfContent) Findings() []string { return e.findings }
func (e EndOfContent) IsValid() bool     { return len(e.findings) == 0 }

func init() {
	registerPrimitive(asn1.TagEndOfContents, decodeEndOfContent)
}
