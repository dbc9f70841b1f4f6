package bertlv

import (
	"strconv"

	"github.com/gematik/lib-smartcards-sub000/asn1"
)

// Sequence is the UNIVERSAL 16 constructed type: an ordered list of
// children whose order is semantically significant.
type Sequence struct {
	Constructed
}

// NewSequence builds a Sequence from an explicit, ordered child list.
func NewSequence(children ...BerTlv) (Sequence, error) {
	cons, err := NewConstructed(asn1.NewTag(asn1.ClassUniversal, asn1.Constructed, asn1.TagSequence), children)
	if err != nil {
		return Sequence{}, err
	}
	return Sequence{Constructed: cons}, nil
}

func decodeSequence(cons Constructed) SpecificType {
	return Sequence{Constructed: cons}
}

func (s Sequence) Comment() string {
	return "SEQUENCE with " + strconv.Itoa(len(s.Children())) + " elements"
}
func (s Sequence) Findings() []string { return nil }
func (s Sequence) IsValid() bool      { return true }

func init() {
	registerConstructed(asn1.TagSequence, decodeSequence)
}
