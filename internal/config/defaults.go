package config

import (
	"time"

	"github.com/cocoindex-io/examples/internal/components"
	"github.com/cocoindex-io/examples/internal/versions"
)

// DefaultTags is the catalog tag enumeration used when none is configured.
var DefaultTags = []string{
	"vector-index",
	"knowledge-graph",
	"structured-data-extraction",
	"custom-building-blocks",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Title:      "CocoIndex",
		ContentDir: "content",
		OutputDir:  "public",
		DataDir:    ".exsite",
		Catalog: CatalogConfig{
			Root: "examples",
			Tags: append([]string(nil), DefaultTags...),
		},
		Versions: VersionsConfig{
			Roots: []string{"docs", "examples"},
			Options: []versions.Option{
				{ID: "v0", Label: "Stable", Enabled: true, Default: true},
				{ID: "v1", Label: "Preview", Marker: "-v1", Enabled: true},
			},
		},
		Nav: []components.NavItem{
			{Label: "Docs", Href: "/docs/"},
			{Label: "Examples", Href: "/examples/"},
		},
		GitHub: GitHubConfig{
			Repo:    "cocoindex-io/cocoindex",
			Timeout: 5 * time.Second,
		},
		Theme: components.Theme{
			ColorMode:     "light",
			ButtonVariant: "primary",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}
}
