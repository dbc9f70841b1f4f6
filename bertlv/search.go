package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// Get returns the first child (in insertion order) whose tag equals tag,
// or a *NotFoundError if none matches.
func (c Constructed) Get(tag asn1.Tag) (BerTlv, error) {
	return c.GetN(tag, 0)
}

// GetN returns the (n+1)-th child whose tag equals tag; n < 0 is treated
// as 0. It fails with *NotFoundError if fewer than n+1 children match.
func (c Constructed) GetN(tag asn1.Tag, n int) (BerTlv, error) {
	if n < 0 {
		n = 0
	}
	count := 0
	for _, ch := range c.children {
		if ch.Tag() != tag {
			continue
		}
		if count == n {
			return ch, nil
		}
		count++
	}
	return nil, notFound("no child with tag %s at occurrence %d", tag, n)
}

// GetPrimitive is like Get but requires the matching child to be a
// Primitive; it fails with *TypeMismatchError if a matching child exists
// but is constructed.
func (c Constructed) GetPrimitive(tag asn1.Tag) (Primitive, error) {
	return c.GetPrimitiveN(tag, 0)
}

// GetPrimitiveN is the occurrence-indexed counterpart of GetPrimitive.
func (c Constructed) GetPrimitiveN(tag asn1.Tag, n int) (Primitive, error) {
	child, err := c.GetN(tag, n)
	if err != nil {
		return Primitive{}, err
	}
	if child.IsConstructed() {
		return Primitive{}, typeMismatch("child with tag %s is constructed, not primitive", tag)
	}
	if p, ok := child.(Primitive); ok {
		return p, nil
	}
	return asPrimitive(child), nil
}

// GetConstructed is like Get but requires the matching child to be a
// Constructed; it fails with *TypeMismatchError if a matching child
// exists but is primitive.
func (c Constructed) GetConstructed(tag asn1.Tag) (Constructed, error) {
	return c.GetConstructedN(tag, 0)
}

// GetConstructedN is the occurrence-indexed counterpart of GetConstructed.
func (c Constructed) GetConstructedN(tag asn1.Tag, n int) (Constructed, error) {
	child, err := c.GetN(tag, n)
	if err != nil {
		return Constructed{}, err
	}
	if !child.IsConstructed() {
		return Constructed{}, typeMismatch("child with tag %s is primitive, not constructed", tag)
	}
	if cc, ok := child.(Constructed); ok {
		return cc, nil
	}
	return asConstructed(child), nil
}

// asPrimitive unwraps a specific type's embedded Primitive, for when a
// generic Get found a decorated node (e.g. a Boolean) rather than a bare
// Primitive.
func asPrimitive(node BerTlv) Primitive {
	switch v := node.(type) {
	case EndOfContent:
		return v.Primitive
	case Boolean:
		return v.Primitive
	case Integer:
		return v.Primitive
	case BitString:
		return v.Primitive
	case OctetString:
		return v.Primitive
	case Null:
		return v.Primitive
	case Oid:
		return v.Primitive
	case Utf8String:
		return v.Primitive
	case PrintableString:
		return v.Primitive
	case TeletexString:
		return v.Primitive
	case Ia5String:
		return v.Primitive
	case UtcTime:
		return v.Primitive
	case Date:
		return v.Primitive
	default:
		return Primitive{}
	}
}

func asConstructed(node BerTlv) Constructed {
	switch v := node.(type) {
	case Sequence:
		return v.Constructed
	case Set:
		return v.Constructed
	default:
		return Constructed{}
	}
}

// getTyped returns the first child of concrete type T, scanning by
// insertion order irrespective of tag (T's own implicit tag already
// constrains which children can match).
func getTyped[T BerTlv](c Constructed) (T, error) {
	var zero T
	for _, ch := range c.children {
		if v, ok := ch.(T); ok {
			return v, nil
		}
	}
	return zero, notFound("no child of the requested type")
}

// getTypedN returns the child at ordinal position n (not filtered by
// tag) if it is of concrete type T, per spec §4.5's example
// (get_bit_string(1) returns whichever child at position 1 is a
// BitString, else NotFound — wrong type at a valid position is NotFound,
// not TypeMismatch, since no tag is being matched at all).
func getTypedN[T BerTlv](c Constructed, n int) (T, error) {
	var zero T
	if n < 0 {
		n = 0
	}
	if n >= len(c.children) {
		return zero, notFound("no child at position %d", n)
	}
	if v, ok := c.children[n].(T); ok {
		return v, nil
	}
	return zero, notFound("child at position %d is not of the requested type", n)
}

func (c Constructed) GetBoolean() (Boolean, error)          { return getTyped[Boolean](c) }
func (c Constructed) GetBooleanN(n int) (Boolean, error)    { return getTypedN[Boolean](c, n) }
func (c Constructed) GetInteger() (Integer, error)          { return getTyped[Integer](c) }
func (c Constructed) GetIntegerN(n int) (Integer, error)    { return getTypedN[Integer](c, n) }
func (c Constructed) GetOid() (Oid, error)                  { return getTyped[Oid](c) }
func (c Constructed) GetOidN(n int) (Oid, error)             { return getTypedN[Oid](c, n) }
func (c Constructed) GetOctetString() (OctetString, error)  { return getTyped[OctetString](c) }
func (c Constructed) GetOctetStringN(n int) (OctetString, error) {
	return getTypedN[OctetString](c, n)
}
func (c Constructed) GetBitString() (BitString, error)       { return getTyped[BitString](c) }
func (c Constructed) GetBitStringN(n int) (BitString, error) { return getTypedN[BitString](c, n) }
func (c Constructed) GetSequence() (Sequence, error)         { return getTyped[Sequence](c) }
func (c Constructed) GetSequenceN(n int) (Sequence, error)   { return getTypedN[Sequence](c, n) }
func (c Constructed) GetSet() (Set, error)                   { return getTyped[Set](c) }
func (c Constructed) GetSetN(n int) (Set, error)              { return getTypedN[Set](c, n) }
func (c Constructed) GetNull() (Null, error)                  { return getTyped[Null](c) }
func (c Constructed) GetNullN(n int) (Null, error)            { return getTypedN[Null](c, n) }
func (c Constructed) GetEndOfContent() (EndOfContent, error) { return getTyped[EndOfContent](c) }
func (c Constructed) GetEndOfContentN(n int) (EndOfContent, error) {
	return getTypedN[EndOfContent](c, n)
}
func (c Constructed) GetDate() (Date, error)       { return getTyped[Date](c) }
func (c Constructed) GetDateN(n int) (Date, error) { return getTypedN[Date](c, n) }
func (c Constructed) GetUtcTime() (UtcTime, error) { return getTyped[UtcTime](c) }
func (c Constructed) GetUtcTimeN(n int) (UtcTime, error) {
	return getTypedN[UtcTime](c, n)
}
func (c Constructed) GetUtf8String() (Utf8String, error) { return getTyped[Utf8String](c) }
func (c Constructed) GetUtf8StringN(n int) (Utf8String, error) {
	return getTypedN[Utf8String](c, n)
}
func (c Constructed) GetIa5String() (Ia5String, error) { return getTyped[Ia5String](c) }
func (c Constructed) GetIa5StringN(n int) (Ia5String, error) {
	return getTypedN[Ia5String](c, n)
}
func (c Constructed) GetPrintableString() (PrintableString, error) {
	return getTyped[PrintableString](c)
}
func (c Constructed) GetPrintableStringN(n int) (PrintableString, error) {
	return getTypedN[PrintableString](c, n)
}
func (c Constructed) GetTeletexString() (TeletexString, error) {
	return getTyped[TeletexString](c)
}
func (c Constructed) GetTeletexStringN(n int) (TeletexString, error) {
	return getTypedN[TeletexString](c, n)
}
