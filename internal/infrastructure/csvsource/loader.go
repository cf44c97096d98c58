package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/seed"
)

// Column names of the seed CSV header.
const (
	ColumnID        = "ReviewId"
	ColumnLocation  = "Location"
	ColumnBody      = "ReviewBody"
	ColumnTimestamp = "Timestamp"
)

// Loader reads seed reviews from a CSV file with a header row.
type Loader struct{}

var _ seed.Loader = Loader{}

// NewLoader returns a CSV seed loader.
func NewLoader() Loader {
	return Loader{}
}

// Name identifies the loader inside the registry.
func (Loader) Name() string {
	return "csv"
}

// Load opens req.Path and parses it.
func (l Loader) Load(ctx context.Context, req seed.Request) ([]domain.RawReview, error) {
	f, err := os.Open(req.Path)
	if err != nil {
		return nil, &domain.DataLoadError{Row: -1, Field: "file", Err: err}
	}
	defer f.Close()

	return l.Parse(ctx, f, req)
}

// Parse reads CSV records from r. Row numbers in errors count data rows from zero.
func (Loader) Parse(ctx context.Context, r io.Reader, req seed.Request) ([]domain.RawReview, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.DataLoadError{Row: -1, Field: "header", Err: errors.New("empty file")}
	}
	if err != nil {
		return nil, &domain.DataLoadError{Row: -1, Field: "header", Err: err}
	}

	cols := indexColumns(header)
	for _, required := range []string{ColumnLocation, ColumnBody} {
		if _, ok := cols[required]; !ok {
			return nil, &domain.DataLoadError{Row: -1, Field: required, Err: errors.New("missing column")}
		}
	}

	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	var rows []domain.RawReview
	for row := 0; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.DataLoadError{Row: row, Field: "record", Err: err}
		}

		raw := domain.RawReview{
			ID:       field(record, cols, ColumnID),
			Location: field(record, cols, ColumnLocation),
			Body:     field(record, cols, ColumnBody),
			HasBody:  cols[ColumnBody] < len(record),
		}

		ts := field(record, cols, ColumnTimestamp)
		switch {
		case ts == "":
			raw.Timestamp = req.LoadedAt
		default:
			parsed, err := time.ParseInLocation(domain.TimestampLayout, ts, loc)
			if err != nil {
				return nil, &domain.DataLoadError{Row: row, Field: ColumnTimestamp, Err: fmt.Errorf("parse %q: %w", ts, err)}
			}
			raw.Timestamp = parsed
		}

		rows = append(rows, raw)
	}

	return rows, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
