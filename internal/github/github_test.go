package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cocoindex-io/examples/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

type fakeFetcher struct {
	stars int
	err   error
	calls int
}

func (f *fakeFetcher) Stars(ctx context.Context, repo string) (int, error) {
	f.calls++
	return f.stars, f.err
}

func TestClientStars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/pipeline", r.URL.Path)
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"stargazers_count": 4321, "name": "pipeline"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second)
	c.Token = "secret"
	stars, err := c.Stars(context.Background(), "acme/pipeline")
	require.NoError(t, err)
	assert.Equal(t, 4321, stars)
}

func TestClientStarsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/repos/acme/broken" {
			w.Write([]byte(`not json`))
			return
		}
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Stars(context.Background(), "acme/pipeline")
	assert.ErrorContains(t, err, "403")

	_, err = c.Stars(context.Background(), "acme/broken")
	assert.ErrorContains(t, err, "decoding")

	for _, bad := range []string{"", "acme", "/acme/x", "a/b/c", "acme/"} {
		_, err = c.Stars(context.Background(), bad)
		assert.Error(t, err, bad)
	}
}

func TestNewClientDefaultURL(t *testing.T) {
	assert.Equal(t, DefaultAPIURL, NewClient("", time.Second).BaseURL)
}

func TestNewClientAlwaysHasTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient("", 0).HTTPClient.Timeout)
	assert.Equal(t, DefaultTimeout, NewClient("", -time.Second).HTTPClient.Timeout)
	assert.Equal(t, 2*time.Second, NewClient("", 2*time.Second).HTTPClient.Timeout)
}

func TestStoreGetPut(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "acme/pipeline")
	require.NoError(t, err)
	assert.False(t, ok)

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, store.Put(ctx, "acme/pipeline", 10, at))
	require.NoError(t, store.Put(ctx, "acme/pipeline", 12, at.Add(time.Hour)))

	got, ok, err := store.Get(ctx, "acme/pipeline")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 12, got.Stars)
	assert.True(t, got.FetchedAt.Equal(at.Add(time.Hour)), "fetched_at = %v", got.FetchedAt)
}

func TestResolveCachesSuccess(t *testing.T) {
	store := setupStore(t)
	f := &fakeFetcher{stars: 99}

	assert.Equal(t, 99, Resolve(context.Background(), f, store, "acme/pipeline", zap.NewNop()))
	cached, ok, err := store.Get(context.Background(), "acme/pipeline")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 99, cached.Stars)
}

func TestResolveFallsBackToCache(t *testing.T) {
	store := setupStore(t)
	require.NoError(t, store.Put(context.Background(), "acme/pipeline", 7, time.Now()))

	f := &fakeFetcher{err: errors.New("offline")}
	assert.Equal(t, 7, Resolve(context.Background(), f, store, "acme/pipeline", zap.NewNop()))
	assert.Equal(t, 1, f.calls, "no retry")
}

func TestResolveDefaultsToZero(t *testing.T) {
	f := &fakeFetcher{err: errors.New("offline")}
	assert.Equal(t, 0, Resolve(context.Background(), f, nil, "acme/pipeline", zap.NewNop()))
	assert.Equal(t, 0, Resolve(context.Background(), f, setupStore(t), "acme/pipeline", zap.NewNop()))
	assert.Equal(t, 0, Resolve(context.Background(), f, nil, "", zap.NewNop()))
}
