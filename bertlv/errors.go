package bertlv

import "fmt"

// NotFoundError is returned by the search/accessor operations of §4.5 when
// no child matches the requested tag, type or ordinal position.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return "bertlv: not found: " + e.Reason }

// TypeMismatchError is returned when a matching child exists but has the
// wrong form (primitive vs. constructed) or concrete type for the
// accessor used to look it up.
type TypeMismatchError struct {
	Reason string
}

func (e *TypeMismatchError) Error() string { return "bertlv: type mismatch: " + e.Reason }

func notFound(format string, args ...any) error {
	return &NotFoundError{Reason: fmt.Sprintf(format, args...)}
}

func typeMismatch(format string, args ...any) error {
	return &TypeMismatchError{Reason: fmt.Sprintf(format, args...)}
}
