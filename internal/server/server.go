package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/components"
	"github.com/cocoindex-io/examples/internal/metrics"
	"github.com/cocoindex-io/examples/internal/versions"
)

// shutdownTimeout bounds graceful shutdown once the run context ends.
const shutdownTimeout = 5 * time.Second

// Config holds server configuration.
type Config struct {
	Port       int
	OutputDir  string // directory containing the generated site
	AllowAll   bool   // allow all CORS origins
	LiveReload bool   // expose /ws/reload and advertise it on /healthz
}

// Server is the development server for a generated site.
type Server struct {
	cfg        Config
	rw         *versions.Rewriter
	renderer   *components.Renderer
	catalog    *Catalog
	metrics    *metrics.Recorder
	hub        *Hub
	logger     *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies. A nil logger discards
// output; a nil recorder gets a private one.
func New(cfg Config, rw *versions.Rewriter, renderer *components.Renderer, cat *Catalog, rec *metrics.Recorder, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.New()
	}
	s := &Server{
		cfg:      cfg,
		rw:       rw,
		renderer: renderer,
		catalog:  cat,
		metrics:  rec,
		hub:      NewHub(logger),
		logger:   logger,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The reload socket is long-lived and stays outside the timeout.
	if s.cfg.LiveReload {
		r.Get("/ws/reload", s.hub.ServeHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))

		r.Get("/healthz", s.handleHealth)
		r.Get("/switch-version", s.handleSwitchVersion)
		r.Get("/api/catalog", s.handleCatalog)
		r.Get("/api/cards", s.handleCards)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

		if s.cfg.OutputDir != "" {
			r.Handle("/*", noCache(http.FileServer(http.Dir(s.cfg.OutputDir))))
		}
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the live reload hub.
func (s *Server) Hub() *Hub { return s.hub }

// Catalog returns the catalog served by /api endpoints.
func (s *Server) Catalog() *Catalog { return s.catalog }

// Metrics returns the server's recorder.
func (s *Server) Metrics() *metrics.Recorder { return s.metrics }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.cfg.Port, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.logger.Info("server listening", zap.String("addr", ln.Addr().String()))
	if err := s.httpServer.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, ln net.Listener) error {
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errc
}

// Shutdown gracefully shuts down the server and closes reload sockets,
// which the HTTP server does not track once hijacked.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.Close()
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"live_reload": s.cfg.LiveReload,
	})
}

// handleSwitchVersion performs the version switch as a hard navigation.
// The response is a redirect to the target path, or 204 when the caller
// should stay where it is.
func (s *Server) handleSwitchVersion(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	current := q.Get("path")
	to := q.Get("to")
	if !strings.HasPrefix(current, "/") || strings.HasPrefix(current, "//") {
		http.Error(w, "path must be an absolute site path", http.StatusBadRequest)
		return
	}
	if to == "" {
		http.Error(w, "to is required", http.StatusBadRequest)
		return
	}
	if from := q.Get("from"); from != "" {
		if _, ok := s.rw.Set().Lookup(from); !ok {
			http.Error(w, "unknown version "+from, http.StatusBadRequest)
			return
		}
	}

	label := to
	if _, ok := s.rw.Set().Lookup(to); !ok {
		label = metrics.UnknownTarget
	}

	var target string
	sel := versions.NewSelector(s.rw, versions.NavigatorFunc(func(p string) { target = p }), current)
	if !sel.Select(to) {
		s.metrics.VersionSwitch(label, metrics.OutcomeStayed)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.metrics.VersionSwitch(label, metrics.OutcomeNavigated)
	s.logger.Debug("version switch",
		zap.String("from", sel.Current()),
		zap.String("to", to),
		zap.String("target", target))
	http.Redirect(w, r, target, http.StatusFound)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	snap, err := s.catalog.Snapshot(tag)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	s.metrics.CatalogRequest(tag)
	writeJSON(w, http.StatusOK, snap)
}

// handleCards returns the client-phase card grid for a tag selection.
func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	snap, err := s.catalog.Snapshot(tag)
	if err != nil {
		writeCatalogError(w, err)
		return
	}
	s.metrics.CatalogRequest(tag)

	cards := make([]components.Card, 0, len(snap.Entries))
	for _, e := range snap.Entries {
		cards = append(cards, components.CardFromEntry(e))
	}
	html, err := s.renderer.CardGrid(cards, components.PhaseClient)
	if err != nil {
		s.logger.Error("rendering cards", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

func writeCatalogError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrUnknownTag) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if errors.Is(err, catalog.ErrNoTags) {
		http.Error(w, "catalog not configured", http.StatusServiceUnavailable)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
