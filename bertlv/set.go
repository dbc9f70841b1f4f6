package bertlv

import (
	"strconv"

	"github.com/gematik/lib-smartcards-sub000/asn1"
)

// Set is the UNIVERSAL 17 constructed type: an unordered list of children.
// The library preserves insertion order for round-tripping but does not
// attach any meaning to it.
type Set struct {
	Constructed
}

// NewSet builds a Set from an explicit child list.
func NewSet(children ...BerTlv) (Set, error) {
	cons, err := NewConstructed(asn1.NewTag(asn1.ClassUniversal, asn1.Constructed, asn1.TagSet), children)
	if err != nil {
		return Set{}, err
	}
	return Set{Constructed: cons}, nil
}

func decodeSet(cons Constructed) SpecificType {
	return Set{Constructed: cons}
}

func (s Set) Comment() string {
	return "SET with " + strconv.Itoa(len(s.Children())) + " elements"
}
func (s Set) Findings() []string { return nil }
func (s Set) IsValid() bool      { return true }

func init() {
	registerConstructed(asn1.TagSet, decodeSet)
}
