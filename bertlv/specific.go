package bertlv

import "github.com/gematik/lib-smartcards-sub000/tlv"

// nonMinimalLengthFinding reports the finding text for a tolerated
// non-minimal length-field encoding, or "" if the as-read length field was
// already minimal (or the node was built from a semantic value and has no
// as-read metadata at all).
//
// Every specific type shares this check: spec §8 scenario 5 decodes
// "04 81 03 11 22 33" (a long-form length field for a value that fits in
// one byte) to an OctetString with exactly this finding text.
func nonMinimalLengthFinding(asRead *AsReadMetadata, length int64) string {
	if asRead == nil || asRead.IndefiniteForm {
		return ""
	}
	if asRead.LengthOfLengthFieldFromStream != tlv.LengthFieldSize(length) {
		return "non-minimal length encoding"
	}
	return ""
}

func appendIfNotEmpty(findings []string, s string) []string {
	if s == "" {
		return findings
	}
	return append(findings, s)
}

// buildBytes concatenates a tag-length prefix and a value into a single TLV
// encoding, shared by every decorated type below that re-encodes from its
// semantic value rather than its as-read octets (see each type's
// canonicalValue).
func buildBytes(prefix, value []byte) []byte {
	out := make([]byte, 0, len(prefix)+len(value))
	out = append(out, prefix...)
	out = append(out, value...)
	return out
}
