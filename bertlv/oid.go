package bertlv

import (
	"strconv"
	"strings"

	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/internal/vlq"
	"github.com/gematik/lib-smartcards-sub000/tlv"
)

// Oid is the UNIVERSAL 6 primitive: a sequence of arcs, the first two of
// which are folded into a single leading octet (40*arc1 + arc2) per
// X.690 §8.19.
type Oid struct {
	Primitive
	Arcs     []uint64
	findings []string
}

// NewOid builds an Oid from its arc sequence. arcs must have at least two
// elements with arcs[0] in {0,1,2} and, when arcs[0] < 2, arcs[1] <= 39.
// NewOid does not validate this. Fewer than two arcs give an empty value
// field; out-of-range first or second arcs give a value that decodes to a
// different arc sequence, and decoding records no finding for that.
func NewOid(arcs ...uint64) Oid {
	value := encodeOidArcs(arcs)
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagOID), value)
	a := make([]uint64, len(arcs))
	copy(a, arcs)
	return Oid{Primitive: prim, Arcs: a}
}

func encodeOidArcs(arcs []uint64) []byte {
	if len(arcs) < 2 {
		return nil
	}
	out := make([]byte, 0, len(arcs)+2)
	first := arcs[0]*40 + arcs[1]
	out = append(out, encodeOidArc(first)...)
	for _, a := range arcs[2:] {
		out = append(out, encodeOidArc(a)...)
	}
	return out
}

func encodeOidArc(v uint64) []byte {
	buf := &oidByteSink{}
	_, _ = vlq.Write(buf, v)
	return buf.b
}

type oidByteSink struct{ b []byte }

func (s *oidByteSink) WriteByte(b byte) error { s.b = append(s.b, b); return nil }
func (s *oidByteSink) Write(p []byte) (int, error) {
	s.b = append(s.b, p...)
	return len(p), nil
}

func decodeOid(prim Primitive) SpecificType {
	value := prim.RawValue()
	var findings []string
	arcs, err := decodeOidArcs(value)
	if err != nil {
		findings = append(findings, err.Error())
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))
	return Oid{Primitive: prim, Arcs: arcs, findings: findings}
}

func decodeOidArcs(value []byte) ([]uint64, error) {
	if len(value) == 0 {
		return nil, tlv.NewError(tlv.KindMalformedEncoding, -1, "OID value-field is empty")
	}
	r := tlv.NewBufferReader(value)
	var raw []uint64
	for {
		n, _ := r.Remaining()
		if n == 0 {
			break
		}
		v, err := vlq.ReadMinimal(r)
		if err != nil {
			if err == vlq.ErrNotMinimal {
				return nil, tlv.NewError(tlv.KindMalformedEncoding, -1, "OID arc uses redundant 0x80 padding")
			}
			return nil, tlv.NewError(tlv.KindMalformedEncoding, -1, "malformed OID arc: %v", err)
		}
		raw = append(raw, v)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	first := raw[0]
	var arc1, arc2 uint64
	switch {
	case first < 40:
		arc1, arc2 = 0, first
	case first < 80:
		arc1, arc2 = 1, first-40
	default:
		arc1, arc2 = 2, first-80
	}
	arcs := append([]uint64{arc1, arc2}, raw[1:]...)
	return arcs, nil
}

func (o Oid) Comment() string {
	parts := make([]string, len(o.Arcs))
	for i, a := range o.Arcs {
		parts[i] = strconv.FormatUint(a, 10)
	}
	return "OID := " + strings.Join(parts, ".")
}
func (o Oid) Findings() []string { return o.findings }
func (o Oid) IsValid() bool      { return len(o.findings) == 0 }

// canonicalValue re-encodes o.Arcs through encodeOidArcs, which always
// produces minimal per-arc VLQs. When the as-read value could not be
// decoded (e.g. an arc with redundant 0x80 padding), Arcs is nil and the
// canonical value is empty.
func (o Oid) canonicalValue() []byte {
	return encodeOidArcs(o.Arcs)
}

// LengthOfValueField, TagLengthPrefix, Bytes and TLVSize are overridden so
// that an Oid always re-encodes to its canonical value, instead of
// inheriting Primitive's verbatim as-read octets.
func (o Oid) LengthOfValueField() int64 { return int64(len(o.canonicalValue())) }
func (o Oid) TagLengthPrefix() []byte   { return tagLengthPrefix(o.tag, o.LengthOfValueField()) }
func (o Oid) Bytes() []byte             { return buildBytes(o.TagLengthPrefix(), o.canonicalValue()) }
func (o Oid) TLVSize() int64 {
	return int64(len(o.TagLengthPrefix())) + o.LengthOfValueField()
}

func init() {
	registerPrimitive(asn1.TagOID, decodeOid)
}
