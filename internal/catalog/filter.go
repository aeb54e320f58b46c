package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrNoTags is returned when a filter is built without any tags.
	ErrNoTags = errors.New("catalog: tag enumeration is empty")
	// ErrDuplicateTag is returned when the enumeration repeats a tag.
	ErrDuplicateTag = errors.New("catalog: duplicate tag")
)

// AllLabel is the display label of the implicit "show everything" option.
const AllLabel = "All"

// Option is one radio choice of the tag control. Value is empty for the
// "all" option.
type Option struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Filter holds the selection state of one rendered catalog list.
type Filter struct {
	tags     []string
	selected string
}

// NewFilter builds a filter over a fixed tag enumeration.
func NewFilter(tags []string) (*Filter, error) {
	if len(tags) == 0 {
		return nil, ErrNoTags
	}
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		if t == "" {
			return nil, fmt.Errorf("catalog: empty tag in enumeration")
		}
		if seen[t] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTag, t)
		}
		seen[t] = true
	}
	return &Filter{tags: append([]string(nil), tags...)}, nil
}

// Tags returns the configured enumeration in order.
func (f *Filter) Tags() []string { return append([]string(nil), f.tags...) }

// Select sets the active tag. The empty string selects all entries.
func (f *Filter) Select(tag string) { f.selected = tag }

// Selected returns the active tag, empty when showing all.
func (f *Filter) Selected() string { return f.selected }

// Options returns the "all" option followed by one option per tag.
// Exactly one option is checked unless the selection is outside the
// enumeration, in which case none is.
func (f *Filter) Options() []Option {
	opts := make([]Option, 0, len(f.tags)+1)
	opts = append(opts, Option{Label: AllLabel, Checked: f.selected == ""})
	for _, t := range f.tags {
		opts = append(opts, Option{Value: t, Label: TagLabel(t), Checked: f.selected == t})
	}
	return opts
}

// Visible applies the current selection to entries.
func (f *Filter) Visible(entries []Entry) []Entry {
	return Visible(entries, f.selected)
}

// Visible returns entries unchanged for an empty tag, otherwise the
// subsequence whose tags contain tag. Input order is kept and the input
// slice is never modified.
func Visible(entries []Entry, tag string) []Entry {
	if tag == "" {
		return entries
	}
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Tags.Contains(tag) {
			out = append(out, e)
		}
	}
	return out
}

// TagLabel turns a tag slug such as "vector-index" into "Vector Index".
// A Caser is stateful, so each call builds its own.
func TagLabel(tag string) string {
	words := strings.FieldsFunc(tag, func(c rune) bool {
		return c == '-' || c == '_'
	})
	return cases.Title(language.English).String(strings.Join(words, " "))
}

// Catalog is the JSON view of a filtered listing.
type Catalog struct {
	Selected string   `json:"selected"`
	Options  []Option `json:"options"`
	Entries  []Entry  `json:"entries"`
}

// Snapshot captures the filter state applied to entries.
func (f *Filter) Snapshot(entries []Entry) Catalog {
	visible := f.Visible(entries)
	if visible == nil {
		visible = []Entry{}
	}
	return Catalog{
		Selected: f.selected,
		Options:  f.Options(),
		Entries:  visible,
	}
}
