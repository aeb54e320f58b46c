package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/components"
	"github.com/cocoindex-io/examples/internal/versions"
)

var testTags = []string{"vector-index", "knowledge-graph"}

func testEntries() []catalog.Entry {
	return []catalog.Entry{
		{Href: "/examples/a.html", Label: "A", ImageRef: "/img/a.png", Tags: catalog.SomeTags("vector-index")},
		{Href: "/examples/b.html", Label: "B", Tags: catalog.SomeTags("knowledge-graph")},
		{Href: "/examples/c.html", Label: "C"},
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	set, err := versions.NewSet([]versions.Option{
		{ID: "v0", Label: "Stable", Enabled: true, Default: true},
		{ID: "v1", Label: "Preview", Marker: "-v1", Enabled: true},
		{ID: "v2", Label: "Next", Marker: "-v2"},
	})
	require.NoError(t, err)
	rw, err := versions.NewRewriter(set, []string{"docs", "examples"})
	require.NoError(t, err)
	renderer, err := components.New(components.Theme{})
	require.NoError(t, err)
	cat, err := NewCatalog(testTags)
	require.NoError(t, err)
	cat.Set(testEntries())
	return New(cfg, rw, renderer, cat, nil, nil)
}

func get(t *testing.T, srv *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{LiveReload: true})

	w := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["live_reload"])
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{AllowAll: true})

	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestSwitchVersion(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		from     string
		to       string
		code     int
		location string
	}{
		{"default to preview", "/docs/getting-started", "", "v1", http.StatusFound, "/docs-v1/getting-started"},
		{"preview to default keeps query", "/examples-v1/foo?x=1", "", "v0", http.StatusFound, "/examples/foo?x=1"},
		{"same version stays", "/docs/a", "", "v0", http.StatusNoContent, ""},
		{"disabled version stays", "/docs/a", "", "v2", http.StatusNoContent, ""},
		{"unknown version stays", "/docs/a", "", "v9", http.StatusNoContent, ""},
		{"unknown root stays", "/blog/post", "", "v1", http.StatusNoContent, ""},
		{"missing to", "/docs/a", "", "", http.StatusBadRequest, ""},
		{"relative path", "docs/a", "", "v1", http.StatusBadRequest, ""},
		{"scheme relative path", "//evil.example/docs", "", "v1", http.StatusBadRequest, ""},
		{"unknown from", "/docs/a", "zz", "v1", http.StatusBadRequest, ""},
		{"known from", "/docs/a", "v0", "v1", http.StatusFound, "/docs-v1/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, Config{})
			q := url.Values{}
			q.Set("path", tt.path)
			if tt.from != "" {
				q.Set("from", tt.from)
			}
			if tt.to != "" {
				q.Set("to", tt.to)
			}

			w := get(t, srv, "/switch-version?"+q.Encode())
			assert.Equal(t, tt.code, w.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, w.Header().Get("Location"))
			}
		})
	}
}

func TestSwitchVersionMetrics(t *testing.T) {
	srv := newTestServer(t, Config{})
	get(t, srv, "/switch-version?path=/docs/a&to=v1")
	get(t, srv, "/switch-version?path=/docs/a&to=v0")

	out, err := testutil.GatherAndCount(srv.Metrics().Registry(), "exsite_version_switch_total")
	require.NoError(t, err)
	assert.Equal(t, 2, out)
}

func TestSwitchVersionMetricsBoundUnknownTargets(t *testing.T) {
	srv := newTestServer(t, Config{})
	for i := 0; i < 50; i++ {
		w := get(t, srv, fmt.Sprintf("/switch-version?path=/docs/x&to=junk%d", i))
		require.Equal(t, http.StatusNoContent, w.Code)
	}

	series, err := testutil.GatherAndCount(srv.Metrics().Registry(), "exsite_version_switch_total")
	require.NoError(t, err)
	assert.Equal(t, 1, series)

	w := get(t, srv, "/metrics")
	assert.Contains(t, w.Body.String(), `exsite_version_switch_total{outcome="stayed",target="unknown"} 50`)
	assert.NotContains(t, w.Body.String(), "junk")
}

func TestCatalogAPI(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/api/catalog")
	require.Equal(t, http.StatusOK, w.Code)
	var all catalog.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all.Entries, 3)
	require.Len(t, all.Options, 3)
	assert.True(t, all.Options[0].Checked)

	w = get(t, srv, "/api/catalog?tag=knowledge-graph")
	require.Equal(t, http.StatusOK, w.Code)
	var kg catalog.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &kg))
	require.Len(t, kg.Entries, 1)
	assert.Equal(t, "B", kg.Entries[0].Label)
	assert.Equal(t, "knowledge-graph", kg.Selected)

	assert.Equal(t, http.StatusBadRequest, get(t, srv, "/api/catalog?tag=nope").Code)
}

func TestCatalogAPIEmptySelection(t *testing.T) {
	srv := newTestServer(t, Config{})
	srv.Catalog().Set(nil)

	w := get(t, srv, "/api/catalog?tag=vector-index")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"entries":[]`)
}

func TestCardsFragmentIsClientPhase(t *testing.T) {
	srv := newTestServer(t, Config{})

	w := get(t, srv, "/api/cards?tag=vector-index")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "data-card-grid")
	assert.Contains(t, body, `<img class="card__image"`)
	assert.NotContains(t, body, "data-src")
	assert.NotContains(t, body, ">B<")
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, Config{})
	get(t, srv, "/api/catalog?tag=vector-index")

	w := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `exsite_catalog_requests_total{tag="vector-index"} 1`)
}

func TestStaticFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "index.html"), []byte("<h1>docs</h1>"), 0o644))

	srv := newTestServer(t, Config{OutputDir: dir})
	w := get(t, srv, "/docs/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<h1>docs</h1>")
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	assert.Equal(t, http.StatusNotFound, get(t, srv, "/missing.html").Code)
}

func TestLiveReloadDisabled(t *testing.T) {
	srv := newTestServer(t, Config{})
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/ws/reload").Code)
}

func TestLiveReloadBroadcast(t *testing.T) {
	srv := newTestServer(t, Config{LiveReload: true})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/reload"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return srv.Hub().Clients() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, srv.Hub().Broadcast(ReloadMessage))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, ReloadMessage, string(msg))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv := newTestServer(t, Config{LiveReload: true})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, ln) }()

	healthURL := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewCatalogRejectsBadTags(t *testing.T) {
	_, err := NewCatalog(nil)
	assert.ErrorIs(t, err, catalog.ErrNoTags)
}
