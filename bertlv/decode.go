package bertlv

import (
	"github.com/pkg/errors"

	"github.com/gematik/lib-smartcards-sub000/asn1"
	"github.com/gematik/lib-smartcards-sub000/tlv"
)

// Decode parses b as a concatenation of top-level TLVs and returns them in
// order. It is the multi-object counterpart of DecodeNode.
func Decode(b []byte) ([]BerTlv, error) {
	return decodeAll(b)
}

// DecodeNode reads exactly one TLV from r per spec §4.3: a tag field, a
// length field, and then either a raw value (primitive form) or a
// recursively decoded child list (constructed form). When the tag belongs
// to the UNIVERSAL-class registry (§4.6), the resulting node is one of the
// specific types in registry.go; otherwise a bare Primitive or Constructed
// is returned.
func DecodeNode(r tlv.OctetReader) (BerTlv, error) {
	node, _, err := decodeOne(r)
	return node, err
}

// decodeOne decodes a single TLV from r and also reports the total number
// of octets read from r for it (tag + length + value fields, including a
// trailing End-of-Content for an indefinite-form constructed node). The
// byte count is needed, rather than node.TLVSize(), because a tolerated
// non-minimal length encoding makes the as-read byte count and the
// canonical re-encoded size diverge (spec §8 scenario 5).
func decodeOne(r tlv.OctetReader) (BerTlv, int64, error) {
	tag, tagBytes, err := tlv.ReadTag(r)
	if err != nil {
		return nil, 0, err
	}
	length, llConsumed, err := tlv.ReadLength(r)
	if err != nil {
		return nil, 0, err
	}
	return decodeBody(r, tag, length, llConsumed, len(tagBytes))
}

// decodeBody decodes the value field of a TLV whose tag and length have
// already been read from r, and returns the node together with the total
// octet count (tag + length + value-as-read) it occupied on the wire.
func decodeBody(r tlv.OctetReader, tag asn1.Tag, length int64, llConsumed int, tagLen int) (BerTlv, int64, error) {
	if !tag.IsConstructed() {
		if length == tlv.Indefinite {
			return nil, 0, tlv.NewError(tlv.KindMalformedEncoding, -1, "indefinite length is not permitted on a primitive tag")
		}
		value := make([]byte, length)
		if err := r.ReadFull(value); err != nil {
			return nil, 0, wrapUnderflow(err)
		}
		prim, err := NewPrimitive(tag, value)
		if err != nil {
			return nil, 0, err
		}
		prim.asRead = &AsReadMetadata{
			LengthOfLengthFieldFromStream: llConsumed,
			LengthOfValueFieldFromStream:  length,
		}
		total := int64(tagLen) + int64(llConsumed) + length
		return decoratePrimitive(prim), total, nil
	}

	var children []BerTlv
	var valueConsumed int64
	var err error
	indefinite := length == tlv.Indefinite
	if indefinite {
		children, valueConsumed, err = decodeIndefiniteChildren(r)
	} else {
		children, err = decodeDefiniteChildren(r, length)
		valueConsumed = length
	}
	if err != nil {
		return nil, 0, err
	}

	cons, err := NewConstructed(tag, children)
	if err != nil {
		return nil, 0, err
	}
	cons.asRead = &AsReadMetadata{
		IndefiniteForm:                indefinite,
		LengthOfLengthFieldFromStream: llConsumed,
		LengthOfValueFieldFromStream:  valueConsumed,
	}
	total := int64(tagLen) + int64(llConsumed) + valueConsumed
	return decorateConstructed(cons), total, nil
}

func decoratePrimitive(prim Primitive) BerTlv {
	if prim.tag.Class == asn1.ClassUniversal {
		if dec, ok := primitiveRegistry[prim.tag.Number]; ok {
			return dec(prim)
		}
	}
	return prim
}

func decorateConstructed(cons Constructed) BerTlv {
	if cons.tag.Class == asn1.ClassUniversal {
		if dec, ok := constructedRegistry[cons.tag.Number]; ok {
			return dec(cons)
		}
	}
	return cons
}

// decodeDefiniteChildren decodes children from r until exactly length
// value-bytes have been consumed. A definite length that the source itself
// cannot supply, or that a child's own tag/length overruns before the span
// is exhausted, is a structural mismatch between the declared length and
// the actual child octets — reported as MalformedEncoding rather than
// BufferUnderflow, which is reserved for a source that runs out with no
// indication of how many more bytes the current field needs (see
// decodeIndefiniteChildren's missing End-of-Content case).
func decodeDefiniteChildren(r tlv.OctetReader, length int64) ([]BerTlv, error) {
	span := make([]byte, length)
	if err := r.ReadFull(span); err != nil {
		return nil, tlv.NewError(tlv.KindMalformedEncoding, -1, "definite length %d exceeds the available source octets: %v", length, err)
	}
	sub := tlv.NewBufferReader(span)

	var children []BerTlv
	for {
		remaining, _ := sub.Remaining()
		if remaining == 0 {
			break
		}
		node, consumed, err := decodeOne(sub)
		if err != nil {
			var underflow *tlv.BufferUnderflowError
			if errors.As(err, &underflow) {
				return nil, tlv.NewError(tlv.KindMalformedEncoding, -1, "child TLV overruns the constructed node's definite length: %v", err)
			}
			return nil, err
		}
		if consumed <= 0 {
			return nil, tlv.NewError(tlv.KindMalformedEncoding, -1, "child TLV consumed no bytes")
		}
		children = append(children, node)
	}
	return children, nil
}

// decodeIndefiniteChildren decodes children from r until an End-of-Content
// marker (tag 0x00, length 0x00) is found. It returns the children plus
// the number of octets consumed for them, including the terminating EoC's
// two octets. Exhausting a source with a known remaining count before the
// EoC is found fails with KindBufferUnderflow.
func decodeIndefiniteChildren(r tlv.OctetReader) ([]BerTlv, int64, error) {
	var children []BerTlv
	var consumed int64
	for {
		n, known := r.Remaining()
		if known && n == 0 {
			return nil, 0, tlv.NewError(tlv.KindBufferUnderflow, -1, "indefinite-length constructed node has no End-of-Content")
		}

		tag, tagBytes, err := tlv.ReadTag(r)
		if err != nil {
			return nil, 0, err
		}
		length, llConsumed, err := tlv.ReadLength(r)
		if err != nil {
			return nil, 0, err
		}

		if tag.Class == asn1.ClassUniversal && tag.Number == asn1.TagEndOfContents && !tag.IsConstructed() {
			if length != 0 {
				return nil, 0, tlv.NewError(tlv.KindMalformedEncoding, -1, "tag 0 with non-zero length is not a valid End-of-Content marker")
			}
			consumed += int64(len(tagBytes)) + int64(llConsumed)
			return children, consumed, nil
		}

		node, nodeConsumed, err := decodeBody(r, tag, length, llConsumed, len(tagBytes))
		if err != nil {
			return nil, 0, err
		}
		children = append(children, node)
		consumed += nodeConsumed
	}
}
