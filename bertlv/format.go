package bertlv

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/gematik/lib-smartcards-sub000/tlv"
)

// FormatOptions configures Format's tree mode. The zero value renders a
// single-space field separator, a two-space indentation unit, and no
// comments.
type FormatOptions struct {
	// IndentUnit is repeated once per tree depth. Defaults to "  ".
	IndentUnit string
	// FieldSeparator is written between the tag, length and value octets
	// of a node's own line. Defaults to " ".
	FieldSeparator string
	// Comments enables the "# <human readable>" suffix specific types
	// contribute (e.g. "# BOOLEAN := true").
	Comments bool
}

func (o FormatOptions) indentUnit() string {
	if o.IndentUnit == "" {
		return "  "
	}
	return o.IndentUnit
}

func (o FormatOptions) fieldSeparator() string {
	if o.FieldSeparator == "" {
		return " "
	}
	return o.FieldSeparator
}

// Compact renders node as "TT LL VV" hexadecimal, with sep between the
// tag, length and value fields; a constructed node's value is the
// concatenation of its children's own compact encodings (recursively).
func Compact(node BerTlv, sep string) string {
	prefix := node.TagLengthPrefix()
	tagLen := tlv.TagFieldSize(node.Tag())

	parts := []string{
		strings.ToUpper(hex.EncodeToString(prefix[:tagLen])),
		strings.ToUpper(hex.EncodeToString(prefix[tagLen:])),
	}
	if node.IsConstructed() {
		if c, ok := node.(interface{ Children() []BerTlv }); ok {
			var b strings.Builder
			for i, ch := range c.Children() {
				if i > 0 {
					b.WriteString(sep)
				}
				b.WriteString(Compact(ch, sep))
			}
			parts = append(parts, b.String())
		}
	} else {
		parts = append(parts, strings.ToUpper(hex.EncodeToString(node.Bytes()[len(prefix):])))
	}
	return strings.Join(parts, sep)
}

// Format renders node in tree mode: one line per node, indented by depth,
// with an optional trailing comment contributed by a specific type's
// Comment() and a findings suffix when the node is invalid.
func Format(node BerTlv, opts FormatOptions) string {
	var b strings.Builder
	formatNode(&b, node, 0, opts)
	return strings.TrimRight(b.String(), "\n")
}

func formatNode(b *strings.Builder, node BerTlv, depth int, opts FormatOptions) {
	b.WriteString(strings.Repeat(opts.indentUnit(), depth))
	b.WriteString(node.Tag().String())
	b.WriteString(opts.fieldSeparator())
	b.WriteString(strconv.FormatInt(node.LengthOfValueField(), 10))
	if !node.IsConstructed() {
		prefix := node.TagLengthPrefix()
		b.WriteString(opts.fieldSeparator())
		b.WriteString(strings.ToUpper(hex.EncodeToString(node.Bytes()[len(prefix):])))
	}

	if opts.Comments {
		if st, ok := node.(SpecificType); ok {
			b.WriteString("  # ")
			b.WriteString(st.Comment())
			if !st.IsValid() {
				b.WriteString(" [")
				b.WriteString(strings.Join(st.Findings(), "; "))
				b.WriteString("]")
			}
		}
	}
	b.WriteString("\n")

	if node.IsConstructed() {
		if c, ok := node.(interface{ Children() []BerTlv }); ok {
			for _, ch := range c.Children() {
				formatNode(b, ch, depth+1, opts)
			}
		}
	}
}
