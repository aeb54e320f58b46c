// Package versions classifies site paths into documentation versions and
// rewrites them when the reader switches version.
package versions

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty            = errors.New("versions: no options configured")
	ErrNoDefault        = errors.New("versions: no default option")
	ErrMultipleDefaults = errors.New("versions: more than one default option")
	ErrDuplicateID      = errors.New("versions: duplicate option id")
	ErrDuplicateMarker  = errors.New("versions: duplicate marker")
)

// Option is one selectable documentation version. Marker is the suffix
// appended to a root segment, e.g. "-v1" turns /docs into /docs-v1. The
// default version has no marker.
type Option struct {
	ID      string `json:"id" koanf:"id" yaml:"id"`
	Label   string `json:"label" koanf:"label" yaml:"label"`
	Marker  string `json:"marker,omitempty" koanf:"marker" yaml:"marker"`
	Enabled bool   `json:"enabled" koanf:"enabled" yaml:"enabled"`
	Default bool   `json:"default,omitempty" koanf:"default" yaml:"default"`
}

// Set is an ordered, validated list of options.
type Set struct {
	options []Option
	def     int
}

// NewSet validates opts: ids and markers are unique, exactly one option
// is the default, and only the default has an empty marker.
func NewSet(opts []Option) (*Set, error) {
	if len(opts) == 0 {
		return nil, ErrEmpty
	}
	s := &Set{options: append([]Option(nil), opts...), def: -1}
	ids := make(map[string]bool, len(opts))
	markers := make(map[string]bool, len(opts))
	for i, o := range opts {
		if o.ID == "" {
			return nil, fmt.Errorf("versions: option %d has no id", i)
		}
		if ids[o.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, o.ID)
		}
		ids[o.ID] = true

		if o.Default {
			if s.def >= 0 {
				return nil, ErrMultipleDefaults
			}
			s.def = i
			if o.Marker != "" {
				return nil, fmt.Errorf("versions: default option %q must not have a marker", o.ID)
			}
			continue
		}
		if o.Marker == "" {
			return nil, fmt.Errorf("versions: option %q needs a marker", o.ID)
		}
		if markers[o.Marker] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateMarker, o.Marker)
		}
		markers[o.Marker] = true
	}
	if s.def < 0 {
		return nil, ErrNoDefault
	}
	return s, nil
}

// Options returns a copy of the options in display order.
func (s *Set) Options() []Option { return append([]Option(nil), s.options...) }

// Default returns the default option.
func (s *Set) Default() Option { return s.options[s.def] }

// Lookup finds an option by id.
func (s *Set) Lookup(id string) (Option, bool) {
	if i := s.index(id); i >= 0 {
		return s.options[i], true
	}
	return Option{}, false
}

func (s *Set) index(id string) int {
	for i, o := range s.options {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// Step returns the next enabled option after from, moving forward for a
// non-negative dir and backward otherwise, wrapping around at both ends. Disabled options are
// skipped entirely. When from is unknown, stepping forward starts before
// the first option. ok is false when no option is enabled.
func (s *Set) Step(from string, dir int) (Option, bool) {
	n := len(s.options)
	if dir >= 0 {
		dir = 1
	} else {
		dir = -1
	}
	i := s.index(from)
	if i < 0 && dir < 0 {
		i = 0
	}
	for k := 1; k <= n; k++ {
		j := ((i+dir*k)%n + n) % n
		if s.options[j].Enabled {
			return s.options[j], true
		}
	}
	return Option{}, false
}
