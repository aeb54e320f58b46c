package site

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

// maxSearchContent caps the indexed body text per page.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page.
type SearchEntry struct {
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}

// newSearchEntry builds the index entry for a rendered page. summary wins
// over the first body paragraph when set.
func newSearchEntry(p *page) SearchEntry {
	entry := SearchEntry{
		Path:    p.URL,
		Title:   p.Title,
		Summary: p.Meta.Description,
		Tags:    p.Tags.Values(),
	}

	var clean []string
	for _, line := range strings.Split(string(p.Body), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "```") {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			trimmed = strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if trimmed == p.Title {
				continue
			}
		} else if entry.Summary == "" {
			entry.Summary = trimmed
		}
		clean = append(clean, trimmed)
	}

	content := strings.Join(clean, " ")
	if len(content) > maxSearchContent {
		content = truncateUTF8(content, maxSearchContent)
	}
	entry.Content = content
	return entry
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	if entries == nil {
		entries = []SearchEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding search index: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}
