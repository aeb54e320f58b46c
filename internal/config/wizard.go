package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manifoldco/promptui"
)

// DefaultPath is where `exsite init` writes the configuration.
const DefaultPath = "exsite.yml"

// detectContentDir looks for a conventional content directory in the
// current directory.
func detectContentDir() string {
	for _, candidate := range []string{"content", "docs", "site"} {
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
	}
	return "content"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to exsite! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()
	cfg.ContentDir = detectContentDir()

	titlePrompt := promptui.Prompt{
		Label:   "Site title",
		Default: cfg.Title,
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}
	cfg.Title = title

	contentPrompt := promptui.Prompt{
		Label:   "Content directory",
		Default: cfg.ContentDir,
	}
	if cfg.ContentDir, err = contentPrompt.Run(); err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}

	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	tagsPrompt := promptui.Prompt{
		Label:   "Catalog tags (comma-separated)",
		Default: strings.Join(cfg.Catalog.Tags, ","),
		Validate: func(s string) error {
			if len(splitAndTrim(s)) == 0 {
				return errors.New("at least one tag is required")
			}
			return nil
		},
	}
	tagsStr, err := tagsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("catalog tags: %w", err)
	}
	cfg.Catalog.Tags = splitAndTrim(tagsStr)

	previewPrompt := promptui.Select{
		Label: "Preview documentation version",
		Items: []string{"enabled", "disabled"},
	}
	idx, _, err := previewPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("preview version: %w", err)
	}
	for i := range cfg.Versions.Options {
		if !cfg.Versions.Options[i].Default {
			cfg.Versions.Options[i].Enabled = idx == 0
		}
	}

	repoPrompt := promptui.Prompt{
		Label:   "GitHub repository (owner/name, blank to hide the star button)",
		Default: cfg.GitHub.Repo,
	}
	if cfg.GitHub.Repo, err = repoPrompt.Run(); err != nil {
		return nil, fmt.Errorf("github repo: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if _, err := os.Stat(filepath.Join(cfg.ContentDir, cfg.Catalog.Root)); os.IsNotExist(err) {
		fmt.Printf("\nNote: create %s before running exsite build.\n", filepath.Join(cfg.ContentDir, cfg.Catalog.Root))
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty items.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
