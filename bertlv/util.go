package bertlv

import (
	"io"

	"github.com/gematik/lib-smartcards-sub000/tlv"
)

// wrapUnderflow converts an io.EOF/io.ErrUnexpectedEOF from a
// tlv.OctetReader's ReadFull into a *tlv.BufferUnderflowError, matching how
// the tlv package itself reports exhausted sources (see tlv.ReadTag /
// tlv.ReadLength).
func wrapUnderflow(err error) error {
	if err == nil {
		return nil
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return &tlv.BufferUnderflowError{Err: err}
	}
	return err
}
