package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cocoindex-io/examples/internal/builds"
	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/components"
	"github.com/cocoindex-io/examples/internal/config"
	"github.com/cocoindex-io/examples/internal/db"
	"github.com/cocoindex-io/examples/internal/github"
	"github.com/cocoindex-io/examples/internal/logging"
	"github.com/cocoindex-io/examples/internal/metrics"
	"github.com/cocoindex-io/examples/internal/progress"
	"github.com/cocoindex-io/examples/internal/site"
	"github.com/cocoindex-io/examples/internal/versions"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `exsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w\nRun `exsite init` to create a config file", cfgFile, err)
	}
	return cfg, nil
}

// builder holds everything a site build needs. It is shared by the build
// and serve commands so rebuilds reuse the database and the star count.
type builder struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *db.DB
	rw       *versions.Rewriter
	renderer *components.Renderer
	metrics  *metrics.Recorder
	history  *builds.Store
	stars    *int
}

func newBuilder(cfg *config.Config) (*builder, error) {
	logger, err := logging.New(verbose)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	rw, err := cfg.Rewriter()
	if err != nil {
		return nil, fmt.Errorf("versions: %w", err)
	}
	renderer, err := components.New(cfg.Theme)
	if err != nil {
		return nil, fmt.Errorf("loading components: %w", err)
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		return nil, err
	}

	return &builder{
		cfg:      cfg,
		logger:   logger,
		db:       database,
		rw:       rw,
		renderer: renderer,
		metrics:  metrics.New(),
		history:  builds.NewStore(database),
	}, nil
}

func (b *builder) Close() {
	b.db.Close()
	b.logger.Sync()
}

// starCount resolves the navbar star count once per process.
func (b *builder) starCount(ctx context.Context) int {
	if b.stars != nil {
		return *b.stars
	}
	n := 0
	if repo := b.cfg.GitHub.Repo; repo != "" {
		client := github.NewClient(b.cfg.GitHub.APIURL, b.cfg.GitHub.Timeout)
		client.Token = os.Getenv("GITHUB_TOKEN")
		n = github.Resolve(ctx, client, github.NewStore(b.db), repo, b.logger)
	}
	b.stars = &n
	return n
}

// build renders the site, records it in the build history and returns the
// catalog entries for the server.
func (b *builder) build(ctx context.Context, reporter progress.Reporter) (site.Result, []catalog.Entry, error) {
	cfg := b.cfg
	gen, err := site.NewGenerator(site.Options{
		ContentDir:     cfg.ContentDir,
		OutputDir:      cfg.OutputDir,
		Title:          cfg.Title,
		BaseURL:        cfg.BaseURL,
		CatalogRoot:    cfg.Catalog.Root,
		CatalogInclude: cfg.Catalog.Include,
		Tags:           cfg.Catalog.Tags,
		Nav:            cfg.Nav,
		GitHubRepo:     cfg.GitHub.Repo,
		Stars:          b.starCount(ctx),
	}, b.rw, b.renderer, b.logger)
	if err != nil {
		return site.Result{}, nil, err
	}
	gen.Progress = reporter

	res, buildErr := gen.Generate(ctx)
	finished := finishedAt(res)
	b.metrics.Build(finished.Sub(res.StartedAt), buildErr)

	if _, err := b.history.Record(context.WithoutCancel(ctx), builds.Build{
		ID:             res.BuildID,
		StartedAt:      res.StartedAt,
		FinishedAt:     finished,
		Pages:          res.Pages,
		CatalogEntries: res.CatalogEntries,
	}, buildErr); err != nil {
		b.logger.Warn("recording build", zap.Error(err))
	}
	if buildErr != nil {
		return res, nil, buildErr
	}

	entries, err := catalog.Load(cfg.ContentDir, cfg.Catalog.Root, cfg.Catalog.Include)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return res, nil, err
	}

	b.logger.Info("site built",
		zap.String("id", res.BuildID),
		zap.Int("pages", res.Pages),
		zap.String("output", cfg.OutputDir))
	return res, entries, nil
}

// finishedAt returns the finish time of a build, which is unset when the
// build failed early.
func finishedAt(res site.Result) time.Time {
	if res.FinishedAt.IsZero() {
		return time.Now().UTC()
	}
	return res.FinishedAt
}
