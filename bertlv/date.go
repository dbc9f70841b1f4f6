package bertlv

import (
	"time"

	"github.com/gematik/lib-smartcards-sub000/asn1"
)

// Date is the UNIVERSAL 31 primitive: a calendar date in the format
// yyyymmdd, with no time-of-day or zone component.
type Date struct {
	Primitive
	Value    time.Time
	findings []string
}

// NewDate builds a Date from a time.Time, using only its year/month/day
// components.
func NewDate(value time.Time) Date {
	enc := value.Format("20060102")
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagDate), []byte(enc))
	return Date{Primitive: prim, Value: value}
}

func decodeDate(prim Primitive) SpecificType {
	value := string(prim.RawValue())
	var findings []string

	parsed, err := time.Parse("20060102", value)
	if err != nil {
		findings = append(findings, "wrong format")
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	return Date{Primitive: prim, Value: parsed, findings: findings}
}

func (d Date) Comment() string   { return "DATE := " + d.Value.Format("2006-01-02") }
func (d Date) Findings() []string { return d.findings }
func (d Date) IsValid() bool     { return len(d.findings) == 0 }

// canonicalValue re-encodes d.Value as yyyymmdd, which may differ from the
// embedded Primitive's as-read value when the finding "wrong format" was
// recorded (the as-read value failed to parse at all).
func (d Date) canonicalValue() []byte {
	return []byte(d.Value.Format("20060102"))
}

// LengthOfValueField, TagLengthPrefix, Bytes and TLVSize are overridden so
// that a Date always re-encodes to its canonical value, instead of
// inheriting Primitive's verbatim as-read octets.
func (d Date) LengthOfValueField() int64 { return int64(len(d.canonicalValue())) }
func (d Date) TagLengthPrefix() []byte   { return tagLengthPrefix(d.tag, d.LengthOfValueField()) }
func (d Date) Bytes() []byte             { return buildBytes(d.TagLengthPrefix(), d.canonicalValue()) }
func (d Date) TLVSize() int64 {
	return int64(len(d.TagLengthPrefix())) + d.LengthOfValueField()
}

func init() {
	registerPrimitive(asn1.TagDate, decodeDate)
}
