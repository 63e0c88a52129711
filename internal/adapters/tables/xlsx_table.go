package tables

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/platform/obs"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// XLSXTable reads and writes tables held in one worksheet of an Excel
// workbook. The first row is the header.
type XLSXTable struct {
	// Sheet to read; empty means the first sheet in the workbook.
	Sheet string
}

func NewXLSXTable() *XLSXTable {
	return &XLSXTable{}
}

func (x *XLSXTable) Name() string { return "xlsx" }

// Decode the worksheet. Excel drops trailing empty cells, so short rows are
// padded to the header width; longer rows are a shape error.
func (x *XLSXTable) ReadTable(ctx context.Context, r io.Reader) (_ *domain.Table, err error) {
	defer obs.Time(ctx, "table.xlsx.Read")(&err)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read xlsx table: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("read xlsx table: open workbook: %w: %w", domain.ErrMalformedTable, err)
	}
	defer f.Close()

	sheet := x.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("read xlsx table: %w", domain.ErrEmptyTable)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read xlsx table: sheet %q: %w", sheet, err)
	}

	// Skip leading blank rows so the first populated row is the header.
	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read xlsx table: %w", domain.ErrEmptyTable)
	}

	header := rows[0]
	t := &domain.Table{Header: header, Rows: make([]domain.Row, 0, len(rows)-1)}
	for i, rec := range rows[1:] {
		if len(rec) == 0 {
			continue
		}
		if len(rec) > len(header) {
			return nil, fmt.Errorf("read xlsx table: row %d: %w: %d cells, header has %d", i+1, domain.ErrTableShape, len(rec), len(header))
		}
		row := make(domain.Row, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}

// Encode the table into a new single-sheet workbook. Cells are written as
// text so numeric formatting chosen by the transform survives.
func (x *XLSXTable) WriteTable(ctx context.Context, w io.Writer, t *domain.Table) (err error) {
	defer obs.Time(ctx, "table.xlsx.Write")(&err)

	if t == nil {
		return errors.New("write xlsx table: table is nil")
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := x.Sheet
	if sheet == "" {
		sheet = defaultSheet
	}
	if sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, sheet); err != nil {
			return fmt.Errorf("write xlsx table: rename sheet: %w", err)
		}
	}

	if err := f.SetSheetRow(sheet, "A1", &t.Header); err != nil {
		return fmt.Errorf("write xlsx table: header: %w", err)
	}
	for i, r := range t.Rows {
		cells := []string(r)
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("write xlsx table: row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("write xlsx table: row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx table: %w", err)
	}
	return nil
}
