// Package builds records the history of site builds.
package builds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cocoindex-io/examples/internal/db"
)

// Status is the outcome of a build.
type Status string

const (
	StatusOK     Status = "ok"
	StatusFailed Status = "failed"
)

// ErrNotFound is returned when no build has the requested id.
var ErrNotFound = errors.New("build not found")

// Build is one recorded site build.
type Build struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Pages          int       `json:"pages"`
	CatalogEntries int       `json:"catalog_entries"`
	Status         Status    `json:"status"`
	Error          string    `json:"error,omitempty"`
}

// Duration is the wall time the build took.
func (b Build) Duration() time.Duration { return b.FinishedAt.Sub(b.StartedAt) }

// Store provides access to the build history.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts a build. If b.ID is empty a UUID is generated. The status
// is derived from buildErr.
func (s *Store) Record(ctx context.Context, b Build, buildErr error) (Build, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.Status = StatusOK
	if buildErr != nil {
		b.Status = StatusFailed
		b.Error = buildErr.Error()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (id, started_at, finished_at, pages, catalog_entries, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		db.FormatTime(b.StartedAt),
		db.FormatTime(b.FinishedAt),
		b.Pages,
		b.CatalogEntries,
		string(b.Status),
		b.Error,
	)
	if err != nil {
		return Build{}, fmt.Errorf("inserting build: %w", err)
	}
	return b, nil
}

// Get retrieves a single build.
func (s *Store) Get(ctx context.Context, id string) (Build, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, pages, catalog_entries, status, error
		FROM builds WHERE id = ?`, id)
	b, err := scanInto(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Build{}, ErrNotFound
	}
	if err != nil {
		return Build{}, fmt.Errorf("reading build %s: %w", id, err)
	}
	return b, nil
}

// Recent returns up to limit builds, newest first. A non-positive limit
// returns every build.
func (s *Store) Recent(ctx context.Context, limit int) ([]Build, error) {
	query := `SELECT id, started_at, finished_at, pages, catalog_entries, status, error
		FROM builds ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying builds: %w", err)
	}
	defer rows.Close()

	var out []Build
	for rows.Next() {
		b, err := scanInto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// scanner is implemented by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanInto(sc scanner) (Build, error) {
	var (
		b                 Build
		started, finished string
		status            string
	)
	if err := sc.Scan(&b.ID, &started, &finished, &b.Pages, &b.CatalogEntries, &status, &b.Error); err != nil {
		return Build{}, err
	}
	b.StartedAt = db.ParseTime(started)
	b.FinishedAt = db.ParseTime(finished)
	b.Status = Status(status)
	return b, nil
}
