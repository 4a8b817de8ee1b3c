package apperr

import (
	"errors"
	"fmt"
)

// ErrNotFound reports an unknown template, color scheme or font identifier.
var ErrNotFound = errors.New("not found")

// ValidationError reports bad or missing user input. The message is safe to
// surface verbatim.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// UnknownFontError reports a font id that does not resolve in the catalog.
type UnknownFontError struct {
	ID string
}

func (e *UnknownFontError) Error() string {
	return fmt.Sprintf("unknown font %q", e.ID)
}

// EncodingError reports a QR payload or raster buffer failure.
type EncodingError struct {
	Cause error
}

func (e *EncodingError) Error() string {
	return "encoding: " + e.Cause.Error()
}

func (e *EncodingError) Unwrap() error { return e.Cause }

// AdapterError reports an export adapter failure. Stage names the step that
// failed; Cause is logged but never surfaced to clients.
type AdapterError struct {
	Stage string
	Cause error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Stage, e.Cause)
}

func (e *AdapterError) Unwrap() error { return e.Cause }

// FatalParseError reports unreadable batch input. It aborts the whole batch
// since no rows are safely interpretable.
type FatalParseError struct {
	Reason string
}

func (e *FatalParseError) Error() string {
	return "batch parse: " + e.Reason
}
