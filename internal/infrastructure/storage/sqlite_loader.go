package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"ReviewAnalyzer/internal/domain"
	"ReviewAnalyzer/internal/seed"
)

// DefaultTable is read when the request names no table.
const DefaultTable = "reviews"

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLiteLoader reads seed reviews from a SQLite table with
// review_id, location, review_body and timestamp columns.
type SQLiteLoader struct {
	db *sql.DB
}

var _ seed.Loader = (*SQLiteLoader)(nil)

// NewSQLiteLoader wires an open database. With a nil db, Load opens req.Path itself.
func NewSQLiteLoader(db *sql.DB) *SQLiteLoader {
	return &SQLiteLoader{db: db}
}

// Name identifies the loader inside the registry.
func (l *SQLiteLoader) Name() string {
	return "sqlite"
}

// Load selects every row of the seed table in rowid order.
func (l *SQLiteLoader) Load(ctx context.Context, req seed.Request) ([]domain.RawReview, error) {
	db := l.db
	if db == nil {
		opened, err := sql.Open("sqlite", req.Path)
		if err != nil {
			return nil, &domain.DataLoadError{Row: -1, Field: "database", Err: err}
		}
		defer opened.Close()
		db = opened
	}

	table := req.Table
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return nil, &domain.DataLoadError{Row: -1, Field: "table", Err: fmt.Errorf("invalid table name %q", table)}
	}

	query, args, err := sq.Select("review_id", "location", "review_body", "timestamp").
		From(table).
		OrderBy("rowid").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build seed query: %w", err)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &domain.DataLoadError{Row: -1, Field: "table", Err: fmt.Errorf("query seed: %w", err)}
	}

	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}

	var result []domain.RawReview
	for i := 0; rows.Next(); i++ {
		var id, location, body, ts sql.NullString
		if err := rows.Scan(&id, &location, &body, &ts); err != nil {
			_ = rows.Close()
			return nil, &domain.DataLoadError{Row: i, Field: "record", Err: err}
		}

		raw := domain.RawReview{
			ID:        strings.TrimSpace(id.String),
			Location:  strings.TrimSpace(location.String),
			Body:      strings.TrimSpace(body.String),
			HasBody:   body.Valid,
			Timestamp: req.LoadedAt,
		}
		if stamp := strings.TrimSpace(ts.String); stamp != "" {
			parsed, err := time.ParseInLocation(domain.TimestampLayout, stamp, loc)
			if err != nil {
				_ = rows.Close()
				return nil, &domain.DataLoadError{Row: i, Field: "timestamp", Err: fmt.Errorf("parse %q: %w", stamp, err)}
			}
			raw.Timestamp = parsed
		}
		result = append(result, raw)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return result, nil
}

// ErrNoDatabase is returned by Import when the loader has no database.
var ErrNoDatabase = errors.New("sqlite loader has no database")

// Import creates the seed table if needed and inserts rows into it.
func (l *SQLiteLoader) Import(ctx context.Context, table string, rows []domain.RawReview) error {
	if l.db == nil {
		return ErrNoDatabase
	}
	if table == "" {
		table = DefaultTable
	}
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}

	ddl := `CREATE TABLE IF NOT EXISTS ` + table + ` (
		review_id   TEXT,
		location    TEXT,
		review_body TEXT,
		timestamp   TEXT
	)`
	if _, err := l.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create seed table: %w", err)
	}
	if len(rows) == 0 {
		return nil
	}

	insert := sq.Insert(table).Columns("review_id", "location", "review_body", "timestamp")
	for _, r := range rows {
		var body any
		if r.HasBody {
			body = r.Body
		}
		var ts any
		if !r.Timestamp.IsZero() {
			ts = r.Timestamp.Format(domain.TimestampLayout)
		}
		insert = insert.Values(r.ID, r.Location, body, ts)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("build seed insert: %w", err)
	}
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert seed rows: %w", err)
	}
	return nil
}
