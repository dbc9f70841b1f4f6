// Package bertlv builds the in-memory TLV tree described by Rec. ITU-T
// X.690: a polymorphic BerTlv node that is either a Primitive (a leaf
// owning raw value octets) or a Constructed (owning an ordered list of
// child nodes). UNIVERSAL-class tags recognized by the registry in
// registry.go decorate the node with a typed decoded value and a list of
// findings describing tolerated deviations from strict encoding — see
// specific.go.
//
// Nodes are immutable once built. Constructed.Add returns a new node
// rather than mutating the receiver; callers that want a deep copy before
// mutating a returned child slice must copy it themselves.
package bertlv

import (
	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/tlv"
)

// BerTlv is the common interface satisfied by every node in the tree,
// whether a bare Primitive/Constructed or one of the specific types in
// registry.go.
type BerTlv interface {
	// Tag returns the node's (class, form, number) triple.
	Tag() asn1.Tag
	// IsConstructed reports whether the node owns children (true) or a raw
	// value (false). Equivalent to Tag().IsConstructed().
	IsConstructed() bool
	// LengthOfValueField returns the number of value octets: len(RawValue())
	// for a Primitive, or the sum of children's TLVSize for a Constructed.
	LengthOfValueField() int64
	// TagLengthPrefix returns the encoded tag field followed by the encoded
	// length field, recomputed from Tag and LengthOfValueField on every
	// call rather than cached — see the Open Questions entry in DESIGN.md
	// on why tag_length_prefix is derived, not stored.
	TagLengthPrefix() []byte
	// Bytes returns the canonical (minimal-length-form) re-encoding of the
	// whole node: TagLengthPrefix followed by the value octets.
	Bytes() []byte
	// TLVSize returns len(Bytes()) without allocating it.
	TLVSize() int64
	// AsRead returns the as-read metadata captured by DecodeNode, or nil
	// for a node built through the semantic constructors.
	AsRead() *AsReadMetadata
}

// AsReadMetadata records how a node looked on the wire when it was
// produced by DecodeNode, per spec §3.3. It is nil for nodes built via the
// semantic constructors (NewPrimitive, NewConstructed, Add, ...).
type AsReadMetadata struct {
	// IndefiniteForm is true if the node's length field was 0x80 (only
	// possible for a Constructed node).
	IndefiniteForm bool
	// LengthOfLengthFieldFromStream is the number of octets the length
	// field occupied on the wire.
	LengthOfLengthFieldFromStream int
	// LengthOfValueFieldFromStream is the number of octets consumed for
	// the value field, including the trailing End-of-Content pair for an
	// indefinite-form constructed node.
	LengthOfValueFieldFromStream int64
}

// Primitive is a leaf node owning a contiguous value.
type Primitive struct {
	tag    asn1.Tag
	value  []byte
	asRead *AsReadMetadata
}

// NewPrimitive builds a Primitive from a semantic value. It fails with
// *tlv.Error(KindMalformedEncoding) if tag uses the constructed form, and
// with *tlv.Error(KindInvalidTagNumber) if tag.Number exceeds
// asn1.MaxTagNumber.
func NewPrimitive(tag asn1.Tag, value []byte) (Primitive, error) {
	if tag.IsConstructed() {
		return Primitive{}, tlv.NewError(tlv.KindMalformedEncoding, -1, "constructed tag used for primitive node")
	}
	if tag.Number > asn1.MaxTagNumber {
		return Primitive{}, tlv.NewError(tlv.KindInvalidTagNumber, -1, "tag number %d exceeds maximum %d", tag.Number, uint64(asn1.MaxTagNumber))
	}
	v := make([]byte, len(value))
	copy(v, value)
	return Primitive{tag: tag, value: v}, nil
}

func (p Primitive) Tag() asn1.Tag           { return p.tag }
func (p Primitive) IsConstructed() bool     { return false }
func (p Primitive) RawValue() []byte        { return p.value }
func (p Primitive) LengthOfValueField() int64 { return int64(len(p.value)) }
func (p Primitive) AsRead() *AsReadMetadata { return p.asRead }

func (p Primitive) TagLengthPrefix() []byte {
	return tagLengthPrefix(p.tag, p.LengthOfValueField())
}

func (p Primitive) Bytes() []byte {
	prefix := p.TagLengthPrefix()
	out := make([]byte, 0, len(prefix)+len(p.value))
	out = append(out, prefix...)
	out = append(out, p.value...)
	return out
}

func (p Primitive) TLVSize() int64 {
	return int64(len(p.TagLengthPrefix())) + p.LengthOfValueField()
}

// Constructed is an interior node owning an ordered sequence of children.
type Constructed struct {
	tag      asn1.Tag
	children []BerTlv
	valueLen int64
	asRead   *AsReadMetadata
}

// NewConstructed builds a Constructed from an explicit child list, per
// spec §4.8's Constructed::from. It fails with
// *tlv.Error(KindMalformedEncoding) if tag uses the primitive form, and
// with *tlv.Error(KindLengthOverflow) if the children's cumulative TLV
// size exceeds tlv.MaxLength.
func NewConstructed(tag asn1.Tag, children []BerTlv) (Constructed, error) {
	if !tag.IsConstructed() {
		return Constructed{}, tlv.NewError(tlv.KindMalformedEncoding, -1, "primitive tag used for constructed node")
	}
	if tag.Number > asn1.MaxTagNumber {
		return Constructed{}, tlv.NewError(tlv.KindInvalidTagNumber, -1, "tag number %d exceeds maximum %d", tag.Number, uint64(asn1.MaxTagNumber))
	}
	cp := make([]BerTlv, len(children))
	copy(cp, children)
	sum, err := sumTLVSizes(cp)
	if err != nil {
		return Constructed{}, err
	}
	return Constructed{tag: tag, children: cp, valueLen: sum}, nil
}

func sumTLVSizes(children []BerTlv) (int64, error) {
	var sum int64
	for _, ch := range children {
		s := ch.TLVSize()
		if sum > tlv.MaxLength-s {
			return 0, tlv.NewError(tlv.KindLengthOverflow, -1, "children's cumulative size exceeds %d", tlv.MaxLength)
		}
		sum += s
	}
	return sum, nil
}

func (c Constructed) Tag() asn1.Tag              { return c.tag }
func (c Constructed) IsConstructed() bool         { return true }
func (c Constructed) LengthOfValueField() int64   { return c.valueLen }
func (c Constructed) AsRead() *AsReadMetadata     { return c.asRead }

// Children returns the node's direct children in insertion order. Callers
// must not mutate the returned slice; it is shared with the node's
// internal representation (see spec §3.3 on read-only child views).
func (c Constructed) Children() []BerTlv { return c.children }

func (c Constructed) TagLengthPrefix() []byte {
	return tagLengthPrefix(c.tag, c.valueLen)
}

func (c Constructed) Bytes() []byte {
	prefix := c.TagLengthPrefix()
	out := make([]byte, 0, int64(len(prefix))+c.valueLen)
	out = append(out, prefix...)
	for _, ch := range c.children {
		out = append(out, ch.Bytes()...)
	}
	return out
}

func (c Constructed) TLVSize() int64 {
	return int64(len(c.TagLengthPrefix())) + c.valueLen
}

// Add returns a new Constructed with child appended to the end of the
// child list; the receiver is unmodified. The new node's as-read metadata
// is cleared, since it no longer reflects any single decode.
func (c Constructed) Add(child BerTlv) (Constructed, error) {
	s := child.TLVSize()
	if c.valueLen > tlv.MaxLength-s {
		return Constructed{}, tlv.NewError(tlv.KindLengthOverflow, -1, "children's cumulative size exceeds %d", tlv.MaxLength)
	}
	newChildren := make([]BerTlv, len(c.children)+1)
	copy(newChildren, c.children)
	newChildren[len(c.children)] = child
	return Constructed{tag: c.tag, children: newChildren, valueLen: c.valueLen + s}, nil
}

// FromValueBytes parses b as a concatenation of TLVs (with no surrounding
// tag of its own) and builds a Constructed from the results, per spec
// §4.8. Each child is decoded through DecodeNode, so UNIVERSAL tags are
// dispatched to their specific types the same way a nested child of a
// decoded tree would be. Any trailing partial TLV fails with
// *tlv.Error(KindMalformedEncoding).
func FromValueBytes(tag asn1.Tag, b []byte) (Constructed, error) {
	if !tag.IsConstructed() {
		return Constructed{}, tlv.NewError(tlv.KindMalformedEncoding, -1, "primitive tag used for constructed node")
	}
	children, err := decodeAll(b)
	if err != nil {
		return Constructed{}, err
	}
	return NewConstructed(tag, children)
}

// AddValueBytes parses b the same way FromValueBytes does and appends the
// resulting children one at a time via Add.
func (c Constructed) AddValueBytes(b []byte) (Constructed, error) {
	children, err := decodeAll(b)
	if err != nil {
		return Constructed{}, err
	}
	out := c
	for _, ch := range children {
		var err error
		out, err = out.Add(ch)
		if err != nil {
			return Constructed{}, err
		}
	}
	return out, nil
}

func decodeAll(b []byte) ([]BerTlv, error) {
	r := tlv.NewBufferReader(b)
	var children []BerTlv
	for {
		n, _ := r.Remaining()
		if n == 0 {
			break
		}
		node, err := DecodeNode(r)
		if err != nil {
			return nil, tlv.NewError(tlv.KindMalformedEncoding, -1, "trailing partial TLV: %v", err)
		}
		children = append(children, node)
	}
	return children, nil
}

func tagLengthPrefix(tag asn1.Tag, valueLen int64) []byte {
	tagBytes, err := tlv.EncodeTag(tag)
	if err != nil {
		// Tag validity is enforced at construction; this path is
		// unreachable for nodes built through this package's constructors.
		panic(err)
	}
	lengthBytes, err := tlv.EncodeLength(valueLen)
	if err != nil {
		panic(err)
	}
	out := make([]byte, 0, len(tagBytes)+len(lengthBytes))
	out = append(out, tagBytes...)
	out = append(out, lengthBytes...)
	return out
}
