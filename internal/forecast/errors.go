package forecast

import (
	"errors"
	"fmt"
)

// User-facing messages
const (
	SchemaMessage   = "Dataset must contain 'Date' and 'Energy' columns."
	NotReadyMessage = "Please upload dataset first!"
)

// ErrNotReady is returned by the predictor before any successful ingest
var ErrNotReady = errors.New(NotReadyMessage)

// ErrorKind classifies ingest and predict failures
type ErrorKind string

const (
	KindNone             ErrorKind = ""
	KindParse            ErrorKind = "parse"
	KindSchema           ErrorKind = "schema"
	KindInsufficientData ErrorKind = "insufficient_data"
	KindNotReady         ErrorKind = "not_ready"
	KindOther            ErrorKind = "other"
)

// ParseError means the upload is not valid for the reader its name selected
type ParseError struct {
	Filename string
	Format   string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s as %s: %v", e.Filename, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError means the required columns are missing
type SchemaError struct {
	Columns []string
}

func (e *SchemaError) Error() string {
	return SchemaMessage
}

// InsufficientDataError means too few usable rows remain to fit a line
type InsufficientDataError struct {
	Rows     int
	Required int
	Err      error
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: %d usable rows, at least %d required", e.Rows, e.Required)
}

func (e *InsufficientDataError) Unwrap() error { return e.Err }

// OtherError wraps any unanticipated ingest failure
type OtherError struct {
	Message string
	Err     error
}

func (e *OtherError) Error() string {
	return e.Message
}

func (e *OtherError) Unwrap() error { return e.Err }

// Kind reports which failure class err belongs to
func Kind(err error) ErrorKind {
	var (
		parseErr  *ParseError
		schemaErr *SchemaError
		dataErr   *InsufficientDataError
	)

	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNotReady):
		return KindNotReady
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &schemaErr):
		return KindSchema
	case errors.As(err, &dataErr):
		return KindInsufficientData
	default:
		return KindOther
	}
}
