package domain

import "fmt"

// Row is one ordered record of a Table. Fields the transforms do not
// interpret are carried verbatim.
type Row []string

// Table is a header plus ordered rows of the same arity.
// Transforms never mutate a Table; they build a new one.
type Table struct {
	Header []string
	Rows   []Row
}

// Width returns the header arity.
func (t *Table) Width() int { return len(t.Header) }

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Validate checks the arity invariant and a minimum width required by a transform.
func (t *Table) Validate(minWidth int) error {
	if t == nil {
		return fmt.Errorf("validate table: %w: table is nil", ErrTableShape)
	}
	if len(t.Header) < minWidth {
		return fmt.Errorf("validate table: %w: need at least %d columns, header has %d", ErrTableShape, minWidth, len(t.Header))
	}
	for i, r := range t.Rows {
		if len(r) != len(t.Header) {
			return fmt.Errorf("validate table: %w: row %d has %d fields, header has %d", ErrTableShape, i+1, len(r), len(t.Header))
		}
	}
	return nil
}
