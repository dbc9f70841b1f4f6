package bertlv

import "github.com/gematik/lib-smartcards-sub000/asn1"

// TeletexString is the UNIVERSAL 20 primitive, historically encoded per
// ITU-T Rec. T.61. teletexTable below is a deliberately simplified
// byte-to-rune mapping covering the printable ASCII range and a handful of
// the Latin-1 supplement code points T.61 shares with it; it does not
// reproduce the full legacy control/diacritic repertoire of T.61.
type TeletexString struct {
	Primitive
	Value    string
	findings []string
}

// NewTeletexString builds a TeletexString from a Go string, encoding each
// rune through teletexTable's inverse where possible.
func NewTeletexString(value string) TeletexString {
	b := make([]byte, 0, len(value))
	for _, r := range value {
		if r < 0x80 {
			b = append(b, byte(r))
			continue
		}
		if bb, ok := teletexReverse[r]; ok {
			b = append(b, bb)
			continue
		}
		b = append(b, '?')
	}
	prim, _ := NewPrimitive(asn1.NewTag(asn1.ClassUniversal, asn1.Primitive, asn1.TagTeletexString), b)
	return TeletexString{Primitive: prim, Value: value}
}

// teletexTable maps the non-ASCII T.61 bytes this package recognizes to
// their Unicode rune. Bytes in [0x20,0x7E] decode as ASCII.
var teletexTable = map[byte]rune{
	0xA1: 'À', 0xA2: 'Â', 0xA3: 'È', 0xA4: 'Ê', 0xA5: 'Ë', 0xA6: 'Î', 0xA7: 'Ï',
	0xA8: 'Ô', 0xA9: 'Ù', 0xAA: 'Û', 0xAB: 'Ü', 0xAC: '€', 0xAD: 'ß',
	0xB1: 'à', 0xB2: 'â', 0xB3: 'è', 0xB4: 'ê', 0xB5: 'ë', 0xB6: 'î', 0xB7: 'ï',
	0xB8: 'ô', 0xB9: 'ù', 0xBA: 'û', 0xBB: 'ü',
}

var teletexReverse = func() map[rune]byte {
	m := make(map[rune]byte, len(teletexTable))
	for b, r := range teletexTable {
		m[r] = b
	}
	return m
}()

func decodeTeletexString(prim Primitive) SpecificType {
	value := prim.RawValue()
	var findings []string

	runes := make([]rune, 0, len(value))
	unmapped := false
	for _, b := range value {
		switch {
		case b >= 0x20 && b <= 0x7E:
			runes = append(runes, rune(b))
		default:
			if r, ok := teletexTable[b]; ok {
				runes = append(runes, r)
			} else {
				runes = append(runes, replacementChar)
				unmapped = true
			}
		}
	}
	if unmapped {
		findings = append(findings, "value-field contains bytes with no T.61 mapping")
	}
	findings = appendIfNotEmpty(findings, nonMinimalLengthFinding(prim.asRead, prim.LengthOfValueField()))

	return TeletexString{Primitive: prim, Value: string(runes), findings: findings}
}

func (s TeletexString) Comment() string   { return "TeletexString := " + s.Value }
func (s TeletexString) Findings() []string { return s.findings }
func (s TeletexString) IsValid() bool     { return len(s.findings) == 0 }

func init() {
	registerPrimitive(asn1.TagTeletexString, decodeTeletexString)
}
