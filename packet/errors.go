package packet

import (
	"fmt"
)

// FormatError reports malformed or truncated OpenPGP binary input.
// Offset is the position in the input where parsing failed.
type FormatError struct {
	Offset int
	Reason string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("openpgp format error at offset %d: %s", e.Offset, e.Reason)
}

func formatErr(offset int, format string, args ...any) *FormatError {
	return &FormatError{
		Offset: offset,
		Reason: fmt.Sprintf(format, args...),
	}
}
