package ports

import (
	"context"
	"io"
	"survey-transform-service/internal/domain"
)

// Contract for decoding a Table from a delimited or spreadsheet stream.
type TableReader interface {
	// Read a header row followed by data rows of the same arity.
	ReadTable(ctx context.Context, r io.Reader) (*domain.Table, error)
}

// Contract for encoding a Table, header first.
type TableWriter interface {
	WriteTable(ctx context.Context, w io.Writer, t *domain.Table) error
}

// A codec that can do both directions for one format.
type TableCodec interface {
	TableReader
	TableWriter
	// Short format name, e.g. "csv".
	Name() string
}
