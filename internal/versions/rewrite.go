package versions

import (
	"errors"
	"strings"
)

// Rewriter maps paths under a fixed set of root segments between versions.
type Rewriter struct {
	set   *Set
	roots []string
}

// NewRewriter returns a Rewriter for the given roots, e.g. "docs" and
// "examples". Roots are bare segments without slashes.
func NewRewriter(set *Set, roots []string) (*Rewriter, error) {
	if set == nil {
		return nil, ErrEmpty
	}
	if len(roots) == 0 {
		return nil, errors.New("versions: no roots configured")
	}
	clean := make([]string, 0, len(roots))
	for _, r := range roots {
		r = strings.Trim(r, "/")
		if r == "" || strings.Contains(r, "/") {
			return nil, errors.New("versions: root must be a single path segment")
		}
		clean = append(clean, r)
	}
	return &Rewriter{set: set, roots: clean}, nil
}

// Set returns the option set the rewriter was built with.
func (rw *Rewriter) Set() *Set { return rw.set }

// Roots returns the configured root segments.
func (rw *Rewriter) Roots() []string { return append([]string(nil), rw.roots...) }

// location is a path split around its root segment.
type location struct {
	root    string
	version string
	suffix  string
}

// locate splits p into root, version and the untouched remainder. ok is
// false when the first segment is not a known root with a known marker.
func (rw *Rewriter) locate(p string) (location, bool) {
	if !strings.HasPrefix(p, "/") {
		return location{}, false
	}
	end := strings.IndexAny(p[1:], "/?#")
	if end < 0 {
		end = len(p)
	} else {
		end++
	}
	seg, suffix := p[1:end], p[end:]

	for _, root := range rw.roots {
		if !strings.HasPrefix(seg, root) {
			continue
		}
		rest := seg[len(root):]
		for _, o := range rw.set.options {
			if o.Marker == rest {
				return location{root: root, version: o.ID, suffix: suffix}, true
			}
		}
	}
	return location{}, false
}

// Detect returns the version id a path belongs to. Paths outside the
// known roots belong to the default version.
func (rw *Rewriter) Detect(p string) string {
	if loc, ok := rw.locate(p); ok {
		return loc.version
	}
	return rw.set.Default().ID
}

// Known reports whether p lies under one of the rewriter's roots.
func (rw *Rewriter) Known(p string) bool {
	_, ok := rw.locate(p)
	return ok
}

// TargetPath returns current rewritten for version to. from names the
// version the caller believes current is in; the marker actually present
// in the path decides what is stripped. Everything after the root segment
// is preserved. An empty result means there is nothing to navigate to:
// the path is outside the known roots or an id is unknown.
func (rw *Rewriter) TargetPath(current, from, to string) string {
	if _, ok := rw.set.Lookup(from); !ok {
		return ""
	}
	target, ok := rw.set.Lookup(to)
	if !ok {
		return ""
	}
	loc, ok := rw.locate(current)
	if !ok {
		return ""
	}
	return "/" + loc.root + target.Marker + loc.suffix
}

// Link is one rendered entry of the version dropdown.
type Link struct {
	ID       string
	Label    string
	Href     string
	Current  bool
	Disabled bool
}

// Links precomputes the dropdown for a page at p. Disabled options and
// options that cannot be reached from p have an empty Href.
func (rw *Rewriter) Links(p string) []Link {
	current := rw.Detect(p)
	links := make([]Link, 0, len(rw.set.options))
	for _, o := range rw.set.options {
		l := Link{ID: o.ID, Label: o.Label, Current: o.ID == current, Disabled: !o.Enabled}
		switch {
		case l.Current:
			l.Href = p
		case o.Enabled:
			l.Href = rw.TargetPath(p, current, o.ID)
		}
		links = append(links, l)
	}
	return links
}
