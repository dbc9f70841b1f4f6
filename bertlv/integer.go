package bertlv

import (
	"math/big"

	"golang.org/x/exp/constraints"

	"github.com/gematik/lib-smartcards-sub000/asn1"
)

// Integer is the UNIVERSAL 2 primitive: a signed, arbitrary-precision,
// big-endian two's-complement integer.
type Integer struct {
	Primitive
	Value    *big.Int
	findings []string
}

// NewInteger builds an Integer from a semantic value, encoding it as the
// minimal-length signed big-endian two's-complement byte string DER
// requires.
func NewInteger(value *big.Int) Integer {
	v := encodeSignedBigEndian(value)
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagInteger), v)
	return Integer{Primitive: prim, Value: new(big.Int).Set(value)}
}

// NewIntegerFromInt64 is a convenience constructor for values that fit in
// an int64; IntegerValue is the reverse conversion.
func NewIntegerFromInt64(value int64) Integer {
	return NewInteger(big.NewInt(value))
}

func decodeInteger(prim Primitive) SpecificType {
	value := prim.RawValue()
	var findings []string

	decoded := decodeSignedBigEndian(value)
	if len(value) == 0 {
		findings = append(findings, "length of value-field is 0")
	} else if isRedundantSignedEncoding(value) {
		findings = append(findings, "redundant leading sign-extension octet")
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	return Integer{Primitive: prim, Value: decoded, findings: findings}
}

func (i Integer) Comment() string {
	if i.Value == nil {
		return "INTEGER"
	}
	return "INTEGER := " + i.Value.String()
}
func (i Integer) Findings() []string { return i.findings }
func (i Integer) IsValid() bool      { return len(i.findings) == 0 }

// canonicalValue returns the minimal-length signed big-endian two's
// complement encoding of i.Value, which may differ from the embedded
// Primitive's as-read value (a redundant sign-extension octet, or an empty
// value field tolerated as zero).
func (i Integer) canonicalValue() []byte {
	if i.Value == nil {
		return []byte{0x00}
	}
	return encodeSignedBigEndian(i.Value)
}

// LengthOfValueField, TagLengthPrefix, Bytes and TLVSize are overridden so
// that an Integer always re-encodes to its canonical minimal-length value,
// instead of inheriting Primitive's verbatim as-read octets.
func (i Integer) LengthOfValueField() int64 { return int64(len(i.canonicalValue())) }
func (i Integer) TagLengthPrefix() []byte   { return tagLengthPrefix(i.tag, i.LengthOfValueField()) }
func (i Integer) Bytes() []byte             { return buildBytes(i.TagLengthPrefix(), i.canonicalValue()) }
func (i Integer) TLVSize() int64 {
	return int64(len(i.TagLengthPrefix())) + i.LengthOfValueField()
}

// IntegerValue extracts i's value into a fixed-width signed integer type,
// reporting ok=false if the value does not fit in T.
func IntegerValue[T constraints.Signed](i Integer) (T, bool) {
	if i.Value == nil {
		return 0, false
	}
	if !i.Value.IsInt64() {
		return 0, false
	}
	v := i.Value.Int64()
	if int64(T(v)) != v {
		return 0, false
	}
	return T(v), true
}

func encodeSignedBigEndian(v *big.Int) []byte {
	if v.Sign() == 0 {
		return []byte{0x00}
	}
	if v.Sign() > 0 {
		b := v.Bytes()
		if b[0]&0x80 != 0 {
			b = append([]byte{0x00}, b...)
		}
		return b
	}
	// Two's complement for a negative value: find the minimal byte width
	// whose MSB, once set, represents v.
	// n bytes hold every value down to -2^(8n-1), so the width is decided by
	// the bit length of |v|-1 plus one sign bit.
	abs := new(big.Int).Abs(v)
	nBytes := (new(big.Int).Sub(abs, big.NewInt(1)).BitLen() + 8) / 8
	if nBytes == 0 {
		nBytes = 1
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(nBytes*8))
	twos := new(big.Int).Add(mod, v)
	b := twos.Bytes()
	for len(b) < nBytes {
		b = append([]byte{0x00}, b...)
	}
	if b[0]&0x80 == 0 {
		b = append([]byte{0xFF}, b...)
	}
	return b
}

func decodeSignedBigEndian(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}
	if b[0]&0x80 == 0 {
		return new(big.Int).SetBytes(b)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
	v := new(big.Int).SetBytes(b)
	return v.Sub(v, mod)
}

func isRedundantSignedEncoding(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	if b[0] == 0x00 && b[1]&0x80 == 0 {
		return true
	}
	if b[0] == 0xFF && b[1]&0x80 != 0 {
		return true
	}
	return false
}

func init() {
	registerPrimitive(asn1.TagInteger, decodeInteger)
}
