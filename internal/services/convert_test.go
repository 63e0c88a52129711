package services

import (
	"survey-transform-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var zone32N = domain.UtmZone{Number: 32, Hemisphere: domain.North}

func TestConvertTable(t *testing.T) {
	in := &domain.Table{
		Header: []string{"lat", "lon", "id", "note"},
		Rows: []domain.Row{
			{"45.0", "7.0", "id1", "extra"},
			{" 45 ", "10", "id2", ""},
		},
	}

	out, err := ConvertTable(in, zone32N)
	require.NoError(t, err)

	assert.Equal(t, []string{"Easting", "Northing", "id", "note"}, out.Header)
	require.Len(t, out.Rows, 2)
	assert.Equal(t, domain.Row{"342369.359", "4984896.171", "id1", "extra"}, out.Rows[0])
	assert.Equal(t, domain.Row{"578815.303", "4983436.769", "id2", ""}, out.Rows[1])

	// input is left untouched
	assert.Equal(t, []string{"lat", "lon", "id", "note"}, in.Header)
	assert.Equal(t, domain.Row{"45.0", "7.0", "id1", "extra"}, in.Rows[0])
}

func TestConvertTableReferencePoint(t *testing.T) {
	in := &domain.Table{Header: []string{"lat", "lon"}, Rows: []domain.Row{{"0", "3"}}}

	out, err := ConvertTable(in, domain.UtmZone{Number: 31, Hemisphere: domain.North})
	require.NoError(t, err)
	assert.Equal(t, domain.Row{"500000.000", "0.000"}, out.Rows[0])
}

func TestConvertTableHeaderOnly(t *testing.T) {
	out, err := ConvertTable(&domain.Table{Header: []string{"a", "b", "c"}}, zone32N)
	require.NoError(t, err)
	assert.Equal(t, []string{"Easting", "Northing", "c"}, out.Header)
	assert.Empty(t, out.Rows)
}

func TestConvertTableNonNumericLatitude(t *testing.T) {
	in := &domain.Table{
		Header: []string{"lat", "lon", "id"},
		Rows: []domain.Row{
			{"45", "7", "ok"},
			{"abc", "7", "bad"},
		},
	}

	out, err := ConvertTable(in, zone32N)
	require.Error(t, err)
	assert.Nil(t, out)

	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Row)
	assert.Equal(t, 0, pe.Column)
	assert.Equal(t, "latitude", pe.Field)
	assert.Equal(t, "abc", pe.Value)
	assert.NotErrorIs(t, err, domain.ErrInvalidLongitude)
}

func TestConvertTableNonNumericLongitude(t *testing.T) {
	in := &domain.Table{Header: []string{"lat", "lon"}, Rows: []domain.Row{{"45", "east"}}}

	_, err := ConvertTable(in, zone32N)

	var pe *domain.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Row)
	assert.Equal(t, 1, pe.Column)
	assert.ErrorIs(t, err, domain.ErrInvalidLongitude)
}

func TestConvertTableInvalidLatitude(t *testing.T) {
	in := &domain.Table{
		Header: []string{"lat", "lon"},
		Rows:   []domain.Row{{"45", "7"}, {"85", "7"}},
	}

	out, err := ConvertTable(in, zone32N)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrInvalidLatitude)

	row, col, ok := domain.Position(err)
	require.True(t, ok)
	assert.Equal(t, 2, row)
	assert.Equal(t, 0, col)
}

func TestConvertTableInfiniteLongitude(t *testing.T) {
	in := &domain.Table{Header: []string{"lat", "lon"}, Rows: []domain.Row{{"45", "Inf"}}}

	_, err := ConvertTable(in, zone32N)
	assert.ErrorIs(t, err, domain.ErrInvalidLongitude)

	_, col, ok := domain.Position(err)
	require.True(t, ok)
	assert.Equal(t, 1, col)
}

func TestConvertTableShape(t *testing.T) {
	_, err := ConvertTable(&domain.Table{Header: []string{"lat"}}, zone32N)
	assert.ErrorIs(t, err, domain.ErrTableShape)

	_, err = ConvertTable(&domain.Table{
		Header: []string{"lat", "lon"},
		Rows:   []domain.Row{{"45", "7", "extra"}},
	}, zone32N)
	assert.ErrorIs(t, err, domain.ErrTableShape)

	_, err = ConvertTable(nil, zone32N)
	assert.ErrorIs(t, err, domain.ErrTableShape)
}

func TestConvertTableRejectsBadZone(t *testing.T) {
	in := &domain.Table{Header: []string{"lat", "lon"}}

	_, err := ConvertTable(in, domain.UtmZone{Number: 0, Hemisphere: domain.North})
	var cfgErr *domain.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "zone", cfgErr.Param)

	_, err = ConvertTable(in, domain.UtmZone{Number: 32, Hemisphere: "X"})
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "hemisphere", cfgErr.Param)
}

func TestConvertTableStraddlingEquator(t *testing.T) {
	in := &domain.Table{
		Header: []string{"lat", "lon"},
		Rows:   []domain.Row{{"0", "3"}, {"-10", "3"}, {"10", "3"}},
	}

	for _, h := range []domain.Hemisphere{domain.North, domain.South} {
		out, err := ConvertTable(in, domain.UtmZone{Number: 31, Hemisphere: h})
		require.NoError(t, err, "letter %s", h)
		assert.Equal(t, "0.000", out.Rows[0][1], "letter %s", h)
		assert.Greater(t, parseCell(t, out.Rows[1][1]), 8000000.0, "letter %s", h)
		assert.Less(t, parseCell(t, out.Rows[2][1]), 2000000.0, "letter %s", h)
	}
}
