package bertlv

// SpecificType is implemented by every decorated UNIVERSAL-tag node: the
// fourteen concrete types registered below, plus EndOfContent. It adds a
// findings surface (§7) on top of the plain BerTlv interface.
type SpecificType interface {
	BerTlv
	// Comment returns a short human-readable description used as the
	// end-of-line comment in tree-mode formatting, e.g. "BOOLEAN := true".
	Comment() string
	// Findings returns the tolerated encoding deviations collected while
	// decoding this node from a byte source. A node built from a semantic
	// value always has an empty Findings list.
	Findings() []string
	// IsValid reports len(Findings()) == 0.
	IsValid() bool
}

// primitiveDecoder decorates an already-built Primitive (tag, value and
// as-read metadata all populated) with a semantic value and findings.
type primitiveDecoder func(prim Primitive) SpecificType

// constructedDecoder decorates an already-built Constructed the same way,
// for Sequence and Set.
type constructedDecoder func(cons Constructed) SpecificType

var primitiveRegistry = map[uint64]primitiveDecoder{}
var constructedRegistry = map[uint64]constructedDecoder{}

func registerPrimitive(tagNumber uint64, dec primitiveDecoder) {
	primitiveRegistry[tagNumber] = dec
}

func registerConstructed(tagNumber uint64, dec constructedDecoder) {
	constructedRegistry[tagNumber] = dec
}
