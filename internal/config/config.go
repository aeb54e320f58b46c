package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/versions"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nesting levels: EXSITE_SERVER__PORT sets server.port.
const EnvPrefix = "EXSITE_"

// listKeys are replaced wholesale by a configured value instead of being
// merged element by element into the defaults.
var listKeys = []string{"nav", "catalog.tags", "catalog.include", "versions.roots", "versions.options"}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (EXSITE_*). A .env file next to the
// config file is loaded first when present; it never overrides variables
// that are already set.
func Load(path string) (*Config, error) {
	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if _, err := os.Stat(dotenv); err == nil {
		if err := godotenv.Load(dotenv); err != nil {
			return nil, fmt.Errorf("reading %s: %w", dotenv, err)
		}
	}

	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	for _, key := range listKeys {
		if k.Exists(key) {
			clearList(cfg, key)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func clearList(cfg *Config, key string) {
	switch key {
	case "nav":
		cfg.Nav = nil
	case "catalog.tags":
		cfg.Catalog.Tags = nil
	case "catalog.include":
		cfg.Catalog.Include = nil
	case "versions.roots":
		cfg.Versions.Roots = nil
	case "versions.options":
		cfg.Versions.Options = nil
	}
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("content_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if filepath.Clean(c.ContentDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("output_dir must differ from content_dir")
	}
	if within(c.ContentDir, c.OutputDir) {
		return fmt.Errorf("output_dir %s must not be inside content_dir %s", c.OutputDir, c.ContentDir)
	}

	if c.Catalog.Root == "" {
		return fmt.Errorf("catalog.root is required")
	}
	if _, err := catalog.NewFilter(c.Catalog.Tags); err != nil {
		return fmt.Errorf("catalog.tags: %w", err)
	}

	if _, err := c.Rewriter(); err != nil {
		return fmt.Errorf("versions: %w", err)
	}

	if c.GitHub.Repo != "" && strings.Count(c.GitHub.Repo, "/") != 1 {
		return fmt.Errorf("invalid github.repo %q: want owner/name", c.GitHub.Repo)
	}
	if c.GitHub.Timeout <= 0 {
		return fmt.Errorf("github.timeout must be positive")
	}

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}

	switch c.Theme.ColorMode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("invalid theme.color_mode %q: must be light or dark", c.Theme.ColorMode)
	}

	return nil
}

// within reports whether child lies below parent.
func within(parent, child string) bool {
	p, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	c, err := filepath.Abs(child)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(p, c)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Rewriter builds the version path rewriter described by the config.
func (c *Config) Rewriter() (*versions.Rewriter, error) {
	set, err := versions.NewSet(c.Versions.Options)
	if err != nil {
		return nil, err
	}
	return versions.NewRewriter(set, c.Versions.Roots)
}

// DBPath is the location of the build state database.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "exsite.db")
}
