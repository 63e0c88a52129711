package services

import (
	"fmt"
	"math"
	"strconv"
	"survey-transform-service/internal/domain"

	"github.com/golang/geo/s1"
)

// Column layout of a rotation table.
const (
	rotXColumn       = 1
	rotYColumn       = 2
	rotClearedColumn = 4

	rotMinWidth = 4
)

// ClearedField is written to the cleared column of a rotated table.
const ClearedField = "nan"

var rotFieldNames = [rotMinWidth]string{"id", "easting", "northing", "value"}

// RotatePoint rotates p counter-clockwise about the pivot by pivot.Angle degrees.
func RotatePoint(p domain.Projected, pivot domain.Pivot) domain.Projected {
	theta := (s1.Angle(pivot.Angle) * s1.Degree).Radians()
	sin, cos := math.Sincos(theta)

	dx := p.Easting - pivot.X0
	dy := p.Northing - pivot.Y0
	return domain.Projected{
		Easting:  dx*cos - dy*sin + pivot.X0,
		Northing: dx*sin + dy*cos + pivot.Y0,
	}
}

// RotateTable rotates the (easting, northing) pair held in columns 1 and 2
// of every row about the pivot.
//
// Columns 0 to 3 are rewritten as numbers in %.18e notation, column 4 is
// cleared and any further columns are copied verbatim. The header is kept.
// A non-numeric value in columns 0 to 3 aborts the whole rotation.
func RotateTable(t *domain.Table, pivot domain.Pivot) (*domain.Table, error) {
	if err := pivot.Validate(); err != nil {
		return nil, fmt.Errorf("rotate table: %w", err)
	}
	if err := t.Validate(rotMinWidth); err != nil {
		return nil, fmt.Errorf("rotate table: %w", err)
	}

	header := make([]string, len(t.Header))
	copy(header, t.Header)

	rows := make([]domain.Row, 0, len(t.Rows))
	for i, r := range t.Rows {
		out, err := rotateRow(i+1, r, pivot)
		if err != nil {
			return nil, fmt.Errorf("rotate table: %w", err)
		}
		rows = append(rows, out)
	}

	return &domain.Table{Header: header, Rows: rows}, nil
}

func rotateRow(rowNum int, r domain.Row, pivot domain.Pivot) (domain.Row, error) {
	var nums [rotMinWidth]float64
	for col := range nums {
		v, err := parseField(rowNum, col, rotFieldNames[col], r[col])
		if err != nil {
			return nil, err
		}
		nums[col] = v
	}

	p := RotatePoint(domain.Projected{Easting: nums[rotXColumn], Northing: nums[rotYColumn]}, pivot)
	nums[rotXColumn], nums[rotYColumn] = p.Easting, p.Northing

	out := make(domain.Row, len(r))
	for col, v := range nums {
		out[col] = formatScientific(v)
	}
	if len(r) > rotClearedColumn {
		out[rotClearedColumn] = ClearedField
		copy(out[rotClearedColumn+1:], r[rotClearedColumn+1:])
	}
	return out, nil
}

// formatScientific writes 18 digits after the decimal point in exponent form.
// Non-finite values are spelled nan, inf and -inf, like the cleared column.
func formatScientific(v float64) string {
	switch {
	case math.IsNaN(v):
		return ClearedField
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'e', 18, 64)
}
