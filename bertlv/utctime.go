package bertlv

import (
	"fmt"
	"time"

	"github.com/gematik/lib-smartcards-sub000/asn1"
)

// UtcTime is the UNIVERSAL 23 primitive: a zoned date/time in one of the
// formats yymmddHHMM[SS]Z or yymmddHHMM[SS]±HHMM.
type UtcTime struct {
	Primitive
	Value    time.Time
	findings []string
}

// NewUtcTime builds a UtcTime from a time.Time, encoding seconds and
// emitting the zone as "Z" when value is UTC, or ±HHMM otherwise.
// Per spec §9, a local time that falls in a daylight-saving-transition gap
// is advanced by value.Location() to the next valid instant; time.Time
// normalization already does this when the zone offset is resolved.
func NewUtcTime(value time.Time) UtcTime {
	enc := encodeUtcTime(value)
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagUTCTime), []byte(enc))
	return UtcTime{Primitive: prim, Value: value}
}

func encodeUtcTime(t time.Time) string {
	yy := t.Year() % 100
	base := fmt.Sprintf("%02d%02d%02d%02d%02d%02d", yy, int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second())
	if t.Location() == time.UTC {
		return base + "Z"
	}
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%s%02d%02d", base, sign, offset/3600, (offset%3600)/60)
}

var utcTimeLayouts = []string{
	"0601021504Z0700",
	"060102150405Z0700",
}

func decodeUtcTime(prim Primitive) SpecificType {
	value := string(prim.RawValue())
	var findings []string
	var parsed time.Time

	ok := false
	for _, layout := range utcTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			parsed = t
			ok = true
			break
		}
	}
	if !ok {
		findings = append(findings, "wrong format")
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	return UtcTime{Primitive: prim, Value: parsed, findings: findings}
}

func (u UtcTime) Comment() string {
	return "UTCTime := " + u.Value.Format("2006-01-02T15:04Z07:00")
}
func (u UtcTime) Findings() []string { return u.findings }
func (u UtcTime) IsValid() bool      { return len(u.findings) == 0 }

// canonicalValue re-encodes u.Value through encodeUtcTime, which may
// differ from the embedded Primitive's as-read value (e.g. a seconds
// field present in one layout but not the other).
func (u UtcTime) canonicalValue() []byte {
	return []byte(encodeUtcTime(u.Value))
}

// LengthOfValueField, TagLengthPrefix, Bytes and TLVSize are overridden so
// that a UtcTime always re-encodes to its canonical value, instead of
// inheriting Primitive's verbatim as-read octets.
func (u UtcTime) LengthOfValueField() int64 { return int64(len(u.canonicalValue())) }
func (u UtcTime) TagLengthPrefix() []byte   { return tagLengthPrefix(u.tag, u.LengthOfValueField()) }
func (u UtcTime) Bytes() []byte             { return buildBytes(u.TagLengthPrefix(), u.canonicalValue()) }
func (u UtcTime) TLVSize() int64 {
	return int64(len(u.TagLengthPrefix())) + u.LengthOfValueField()
}

func init() {
	registerPrimitive(asn1.TagUTCTime, decodeUtcTime)
}
