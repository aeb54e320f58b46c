package github

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cocoindex-io/examples/internal/db"
)

// Store caches the last successfully fetched star count per repository.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Cached is a stored star count.
type Cached struct {
	Stars     int
	FetchedAt time.Time
}

// Get returns the cached count for repo. ok is false when nothing is cached.
func (s *Store) Get(ctx context.Context, repo string) (Cached, bool, error) {
	var (
		c  Cached
		ts string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT stars, fetched_at FROM star_counts WHERE repo = ?`, repo,
	).Scan(&c.Stars, &ts)
	if errors.Is(err, sql.ErrNoRows) {
		return Cached{}, false, nil
	}
	if err != nil {
		return Cached{}, false, fmt.Errorf("reading star count: %w", err)
	}
	c.FetchedAt = db.ParseTime(ts)
	return c, true, nil
}

// Put stores the count for repo.
func (s *Store) Put(ctx context.Context, repo string, stars int, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO star_counts (repo, stars, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(repo) DO UPDATE SET stars = excluded.stars, fetched_at = excluded.fetched_at`,
		repo, stars, db.FormatTime(at))
	if err != nil {
		return fmt.Errorf("writing star count: %w", err)
	}
	return nil
}

// Fetcher is the lookup Resolve depends on; *Client implements it.
type Fetcher interface {
	Stars(ctx context.Context, repo string) (int, error)
}

// Resolve fetches the current count once. On failure it logs a warning and
// falls back to the cached count, or 0. There is no retry. A nil store
// disables caching.
func Resolve(ctx context.Context, f Fetcher, store *Store, repo string, logger *zap.Logger) int {
	if repo == "" {
		return 0
	}
	log := logger.With(zap.String("repo", repo))

	stars, err := f.Stars(ctx, repo)
	if err == nil {
		if store != nil {
			if perr := store.Put(ctx, repo, stars, time.Now()); perr != nil {
				log.Warn("caching star count", zap.Error(perr))
			}
		}
		log.Debug("fetched star count", zap.Int("stars", stars))
		return stars
	}

	log.Warn("fetching star count failed", zap.Error(err))
	if store == nil {
		return 0
	}
	cached, ok, gerr := store.Get(context.WithoutCancel(ctx), repo)
	if gerr != nil {
		log.Warn("reading cached star count", zap.Error(gerr))
		return 0
	}
	if !ok {
		return 0
	}
	log.Info("using cached star count", zap.Int("stars", cached.Stars), zap.Time("fetched_at", cached.FetchedAt))
	return cached.Stars
}
