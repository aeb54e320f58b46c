package catalog

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
)

// FrontMatter is the YAML header recognised on content pages.
type FrontMatter struct {
	Title       string    `yaml:"title"`
	Description string    `yaml:"description"`
	Image       string    `yaml:"image"`
	Tags        *[]string `yaml:"tags"`
	Weight      int       `yaml:"weight"`
	Draft       bool      `yaml:"draft"`
}

// ParsePage splits a Markdown document into its frontmatter and body.
// Documents without frontmatter return a zero FrontMatter and the full
// content.
func ParsePage(content []byte) (FrontMatter, []byte, error) {
	var fm FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(content), &fm)
	if err != nil {
		return FrontMatter{}, nil, err
	}
	return fm, body, nil
}

// IsMarkdown reports whether name has a Markdown extension.
func IsMarkdown(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}

// HTMLPath maps a content-relative Markdown path to its output path.
func HTMLPath(rel string) string {
	rel = filepath.ToSlash(rel)
	if IsMarkdown(rel) {
		return strings.TrimSuffix(rel, path.Ext(rel)) + ".html"
	}
	return rel
}

// Load reads catalog entries from the Markdown pages under
// contentDir/root. include holds doublestar patterns relative to that
// directory; an empty list includes every Markdown page. Index pages and
// drafts are skipped. Entries are ordered by weight, then href.
func Load(contentDir, root string, include []string) ([]Entry, error) {
	dir := filepath.Join(contentDir, filepath.FromSlash(root))
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("catalog dir %s: %w", dir, err)
	}

	var entries []Entry
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !IsMarkdown(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if strings.TrimSuffix(path.Base(rel), path.Ext(rel)) == "index" {
			return nil
		}
		if !matchesAny(rel, include) {
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		fm, body, err := ParsePage(content)
		if err != nil {
			return fmt.Errorf("parsing frontmatter of %s: %w", p, err)
		}
		if fm.Draft {
			return nil
		}

		label := fm.Title
		if label == "" {
			label = FirstHeading(body)
		}
		if label == "" {
			label = strings.TrimSuffix(path.Base(rel), path.Ext(rel))
		}
		entries = append(entries, Entry{
			Href:        "/" + path.Join(root, HTMLPath(rel)),
			Label:       label,
			Description: fm.Description,
			ImageRef:    fm.Image,
			Tags:        TagsFrom(fm.Tags),
			Weight:      fm.Weight,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight < entries[j].Weight
		}
		return entries[i].Href < entries[j].Href
	})
	return entries, nil
}

// FirstHeading returns the text of the first level-one ATX heading.
func FirstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}

func matchesAny(rel string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(filepath.ToSlash(pattern), rel); err == nil && ok {
			return true
		}
	}
	return false
}
