package tables

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"survey-transform-service/internal/domain"
	"survey-transform-service/internal/ports"
)

const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ForPath picks a codec from the file extension.
func ForPath(path string) (ports.TableCodec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return NewCSVTable(), nil
	case ".xlsx":
		return NewXLSXTable(), nil
	}
	return nil, fmt.Errorf("table codec for %q: %w", path, domain.ErrUnsupportedFormat)
}

// ForContentType picks a codec from an HTTP Content-Type header.
// An empty header defaults to CSV.
func ForContentType(ct string) (ports.TableCodec, error) {
	if strings.TrimSpace(ct) == "" {
		return NewCSVTable(), nil
	}

	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, fmt.Errorf("table codec for content type %q: %w", ct, domain.ErrUnsupportedFormat)
	}

	switch mt {
	case ContentTypeCSV, "text/plain", "application/csv":
		return NewCSVTable(), nil
	case ContentTypeXLSX:
		return NewXLSXTable(), nil
	}
	return nil, fmt.Errorf("table codec for content type %q: %w", ct, domain.ErrUnsupportedFormat)
}

// ContentType returns the media type a codec writes.
func ContentType(c ports.TableCodec) string {
	if c.Name() == "xlsx" {
		return ContentTypeXLSX
	}
	return ContentTypeCSV + "; charset=utf-8"
}
