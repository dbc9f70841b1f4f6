package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// Cached canonical singletons, initialized once at package load and never
// mutated afterward (spec §3.3/§5/§9). DecodeNode returns one of these
// directly (its Primitive embedding swapped to the as-read one) whenever a
// decoded node of that type has no findings; otherwise it returns a fresh,
// unshared node that carries its findings.
var (
	endOfContentSingleton = EndOfContent{Primitive: mustPrimitive(asn1.TagEndOfContents, nil)}
	booleanTrueSingleton  = Boolean{Primitive: mustPrimitive(asn1.TagBoolean, []byte{0xFF}), Value: true}
	booleanFalseSingleton = Boolean{Primitive: mustPrimitive(asn1.TagBoolean, []byte{0x00}), Value: false}
	nullSingleton         = Null{Primitive: mustPrimitive(asn1.TagNull, nil)}
)

func mustPrimitive(tagNumber uint64, value []byte) Primitive {
	prim, err := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, tagNumber), value)
	if err != nil {
		panic(err)
	}
	return prim
}
