package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// Boolean is the UNIVERSAL 1 primitive.
type Boolean struct {
	Primitive
	Value    bool
	findings []string
}

// NewBoolean builds a Boolean from a semantic value, using the canonical
// singletons for true/false so repeated construction of the same value
// shares a single immutable instance.
func NewBoolean(value bool) Boolean {
	if value {
		return booleanTrueSingleton
	}
	return booleanFalseSingleton
}

func decodeBoolean(prim Primitive) SpecificType {
	value := prim.RawValue()
	boolVal := !(len(value) == 1 && value[0] == 0x00)

	var findings []string
	if len(value) != 1 {
		findings = append(findings, "length of value-field unequal to 1")
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	if len(findings) == 0 {
		singleton := booleanFalseSingleton
		if boolVal {
			singleton = booleanTrueSingleton
		}
		singleton.Primitive = prim
		return singleton
	}
	return Boolean{Primitive: prim, Value: boolVal, findings: findings}
}

func (b Boolean) Comment() string {
	if b.Value {
		return "BOOLEAN := true"
	}
	return "BOOLEAN := false"
}
func (b Boolean) Findings() []string { return b.findings }
func (b Boolean) IsValid() bool      { return len(b.findings) == 0 }

// canonicalValue returns the one-octet DER encoding of b.Value, which may
// differ from the embedded Primitive's as-read value (e.g. an extra
// trailing octet tolerated with a finding).
func (b Boolean) canonicalValue() []byte {
	if b.Value {
		return []byte{0xFF}
	}
	return []byte{0x00}
}

// LengthOfValueField, TagLengthPrefix, Bytes and TLVSize are overridden so
// that a Boolean always re-encodes to its canonical one-octet value,
// instead of inheriting Primitive's verbatim as-read octets.
func (b Boolean) LengthOfValueField() int64 { return int64(len(b.canonicalValue())) }
func (b Boolean) TagLengthPrefix() []byte   { return tagLengthPrefix(b.tag, b.LengthOfValueField()) }
func (b Boolean) Bytes() []byte             { return buildBytes(b.TagLengthPrefix(), b.canonicalValue()) }
func (b Boolean) TLVSize() int64 {
	return int64(len(b.TagLengthPrefix())) + b.LengthOfValueField()
}

func init() {
	registerPrimitive(asn1.TagBoolean, decodeBoolean)
}
