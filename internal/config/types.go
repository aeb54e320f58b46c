package config

import (
	"time"

	"github.com/cocoindex-io/examples/internal/components"
	"github.com/cocoindex-io/examples/internal/versions"
)

// Config is the top-level site configuration, corresponding to exsite.yml.
type Config struct {
	Title      string               `yaml:"title" koanf:"title"`
	BaseURL    string               `yaml:"base_url" koanf:"base_url"`
	ContentDir string               `yaml:"content_dir" koanf:"content_dir"`
	OutputDir  string               `yaml:"output_dir" koanf:"output_dir"`
	DataDir    string               `yaml:"data_dir" koanf:"data_dir"`
	Catalog    CatalogConfig        `yaml:"catalog" koanf:"catalog"`
	Versions   VersionsConfig       `yaml:"versions" koanf:"versions"`
	Nav        []components.NavItem `yaml:"nav" koanf:"nav"`
	GitHub     GitHubConfig         `yaml:"github" koanf:"github"`
	Theme      components.Theme     `yaml:"theme" koanf:"theme"`
	Server     ServerConfig         `yaml:"server" koanf:"server"`
}

// CatalogConfig describes the tag-filtered example listing.
type CatalogConfig struct {
	Root    string   `yaml:"root" koanf:"root"`
	Include []string `yaml:"include" koanf:"include"`
	Tags    []string `yaml:"tags" koanf:"tags"`
}

// VersionsConfig lists the documentation versions and the path roots
// their markers attach to.
type VersionsConfig struct {
	Roots   []string          `yaml:"roots" koanf:"roots"`
	Options []versions.Option `yaml:"options" koanf:"options"`
}

// GitHubConfig controls the star-count button.
type GitHubConfig struct {
	Repo    string        `yaml:"repo" koanf:"repo"`
	APIURL  string        `yaml:"api_url" koanf:"api_url"`
	Timeout time.Duration `yaml:"timeout" koanf:"timeout"`
}

// ServerConfig holds dev server settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
