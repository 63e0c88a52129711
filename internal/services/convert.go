package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"survey-transform-service/internal/domain"
)

const (
	latColumn = 0
	lonColumn = 1
)

// Header labels written over the first two columns of a converted table.
var ConvertedHeader = [2]string{"Easting", "Northing"}

// ConvertTable projects the (latitude, longitude) leading columns of every row
// onto the given UTM zone.
//
// Easting and northing are written with exactly three decimals, correctly
// rounded from the binary value (ties to even). Trailing columns are copied
// verbatim. The first failing row aborts the whole conversion.
func ConvertTable(t *domain.Table, zone domain.UtmZone) (*domain.Table, error) {
	if err := zone.Validate(); err != nil {
		return nil, fmt.Errorf("convert table: %w", err)
	}
	if err := t.Validate(2); err != nil {
		return nil, fmt.Errorf("convert table: %w", err)
	}

	header := make([]string, len(t.Header))
	copy(header, t.Header)
	header[latColumn], header[lonColumn] = ConvertedHeader[0], ConvertedHeader[1]

	rows := make([]domain.Row, 0, len(t.Rows))
	for i, r := range t.Rows {
		out, err := convertRow(i+1, r, zone)
		if err != nil {
			return nil, fmt.Errorf("convert table: %w", err)
		}
		rows = append(rows, out)
	}

	return &domain.Table{Header: header, Rows: rows}, nil
}

func convertRow(rowNum int, r domain.Row, zone domain.UtmZone) (domain.Row, error) {
	lat, err := parseField(rowNum, latColumn, "latitude", r[latColumn])
	if err != nil {
		return nil, err
	}

	lon, err := parseField(rowNum, lonColumn, "longitude", r[lonColumn])
	if err != nil {
		pe := err.(*domain.ParseError)
		pe.Err = errors.Join(domain.ErrInvalidLongitude, pe.Err)
		return nil, pe
	}

	p, err := ProjectUTM(domain.Coordinates{Lat: lat, Lon: lon}, zone)
	if err != nil {
		col, field, raw := latColumn, "latitude", r[latColumn]
		if errors.Is(err, domain.ErrInvalidLongitude) {
			col, field, raw = lonColumn, "longitude", r[lonColumn]
		}
		return nil, &domain.RowError{Row: rowNum, Column: col, Field: field, Value: raw, Err: err}
	}

	out := make(domain.Row, len(r))
	out[latColumn] = strconv.FormatFloat(p.Easting, 'f', 3, 64)
	out[lonColumn] = strconv.FormatFloat(p.Northing, 'f', 3, 64)
	copy(out[2:], r[2:])
	return out, nil
}

// parseField reads a numeric cell. Surrounding whitespace is ignored.
func parseField(rowNum, col int, field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, &domain.ParseError{Row: rowNum, Column: col, Field: field, Value: raw, Err: err}
	}
	return v, nil
}
