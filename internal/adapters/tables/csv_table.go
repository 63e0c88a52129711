package tables

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/platform/obs"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVTable reads and writes delimited text tables: one header row followed
// by data rows of uniform column count.
type CSVTable struct {
	Comma rune
}

func NewCSVTable() *CSVTable {
	return &CSVTable{Comma: ','}
}

func (c *CSVTable) Name() string { return "csv" }

func (c *CSVTable) comma() rune {
	if c.Comma == 0 {
		return ','
	}
	return c.Comma
}

// Decode a header and data rows. Blank lines are skipped and a leading
// UTF-8 byte order mark is dropped.
func (c *CSVTable) ReadTable(ctx context.Context, r io.Reader) (_ *domain.Table, err error) {
	defer obs.Time(ctx, "table.csv.Read")(&err)

	br := bufio.NewReader(r)
	if head, _ := br.Peek(len(utf8BOM)); bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.Comma = c.comma()
	cr.FieldsPerRecord = 0

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read csv table: %w", domain.ErrEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv table: header: %w", malformed(err))
	}

	t := &domain.Table{Header: header, Rows: make([]domain.Row, 0, 64)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) && errors.Is(pe.Err, csv.ErrFieldCount) {
				return nil, fmt.Errorf("read csv table: line %d: %w: %v", pe.Line, domain.ErrTableShape, err)
			}
			return nil, fmt.Errorf("read csv table: %w", malformed(err))
		}
		t.Rows = append(t.Rows, domain.Row(rec))
	}

	return t, nil
}

// malformed tags csv syntax errors with ErrMalformedTable; read errors pass through.
func malformed(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %w", domain.ErrMalformedTable, err)
	}
	return err
}

// Encode the header then every row. Header cells are written as-is, with
// no comment marker.
func (c *CSVTable) WriteTable(ctx context.Context, w io.Writer, t *domain.Table) (err error) {
	defer obs.Time(ctx, "table.csv.Write")(&err)

	if t == nil {
		return errors.New("write csv table: table is nil")
	}

	cw := csv.NewWriter(w)
	cw.Comma = c.comma()

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv table: header: %w", err)
	}
	for i, r := range t.Rows {
		if err := cw.Write(r); err != nil {
			return fmt.Errorf("write csv table: row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv table: flush: %w", err)
	}
	return nil
}
