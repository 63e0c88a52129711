package domain

import (
	"errors"
	"fmt"
)

var (
	// Latitude outside [-80, 84].
	ErrInvalidLatitude = errors.New("invalid latitude")
	// Longitude that is not a finite decimal number.
	ErrInvalidLongitude = errors.New("invalid longitude")
	// Header or row arity does not fit the transform.
	ErrTableShape = errors.New("invalid table shape")
	// Input held no header row.
	ErrEmptyTable = errors.New("empty table")
	// Input could not be decoded as the declared format (bad quoting, not a workbook).
	ErrMalformedTable = errors.New("malformed table")
	// No table codec for the given path or content type.
	ErrUnsupportedFormat = errors.New("unsupported table format")
)

// ParseError reports a field that was expected to be numeric but is not.
// Row is 1-based over data rows (the header is not counted).
type ParseError struct {
	Row    int
	Column int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("row %d: %s (column %d): not a number: %q", e.Row, e.Field, e.Column, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// RowError attaches a row and column to a domain sentinel such as ErrInvalidLatitude.
type RowError struct {
	Row    int
	Column int
	Field  string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: %s (column %d) %q: %v", e.Row, e.Field, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ConfigError reports a run parameter that is missing or malformed.
type ConfigError struct {
	Param  string
	Value  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config: %s: %s", e.Param, e.Reason)
	}
	return fmt.Sprintf("config: %s=%q: %s", e.Param, e.Value, e.Reason)
}

// Position returns the row and column carried by a transform error, if any.
func Position(err error) (row, col int, ok bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Row, pe.Column, true
	}
	var re *RowError
	if errors.As(err, &re) {
		return re.Row, re.Column, true
	}
	return 0, 0, false
}
