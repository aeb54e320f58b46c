package server

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/cocoindex-io/examples/internal/catalog"
)

// ErrUnknownTag is returned for a selection outside the tag enumeration.
var ErrUnknownTag = errors.New("unknown tag")

// Catalog holds the entries served by the catalog endpoints. Rebuilds
// replace the entries while requests are in flight.
type Catalog struct {
	tags []string

	mu      sync.RWMutex
	entries []catalog.Entry
}

// NewCatalog validates the tag enumeration and returns an empty catalog.
func NewCatalog(tags []string) (*Catalog, error) {
	if _, err := catalog.NewFilter(tags); err != nil {
		return nil, err
	}
	return &Catalog{tags: slices.Clone(tags)}, nil
}

// Set replaces the served entries.
func (c *Catalog) Set(entries []catalog.Entry) {
	c.mu.Lock()
	c.entries = slices.Clone(entries)
	c.mu.Unlock()
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot applies a tag selection. The empty tag selects all entries.
func (c *Catalog) Snapshot(tag string) (catalog.Catalog, error) {
	if c == nil {
		return catalog.Catalog{}, catalog.ErrNoTags
	}
	if tag != "" && !slices.Contains(c.tags, tag) {
		return catalog.Catalog{}, fmt.Errorf("%w %q", ErrUnknownTag, tag)
	}
	f, err := catalog.NewFilter(c.tags)
	if err != nil {
		return catalog.Catalog{}, err
	}
	f.Select(tag)

	c.mu.RLock()
	defer c.mu.RUnlock()
	return f.Snapshot(c.entries), nil
}
