package catalog

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Tags is the optional tag list carried by an Entry. The zero value is
// absent, which is distinct from a present but empty list.
type Tags struct {
	values  []string
	present bool
}

// NoTags returns the absent variant.
func NoTags() Tags { return Tags{} }

// SomeTags returns a present tag list. Calling it with no arguments yields
// a present, empty list.
func SomeTags(values ...string) Tags {
	return Tags{values: slices.Clone(values), present: true}
}

// TagsFrom converts a decoded optional slice: nil means the key was absent.
func TagsFrom(p *[]string) Tags {
	if p == nil {
		return NoTags()
	}
	return SomeTags(*p...)
}

// Present reports whether the entry declared a tags field at all.
func (t Tags) Present() bool { return t.present }

// Len returns the number of tags; zero for the absent variant.
func (t Tags) Len() int { return len(t.values) }

// Values returns a copy of the tag list, nil when absent.
func (t Tags) Values() []string {
	if !t.present {
		return nil
	}
	return slices.Clone(t.values)
}

// Contains reports exact, case-sensitive membership. Absent tags contain
// nothing.
func (t Tags) Contains(tag string) bool {
	return t.present && slices.Contains(t.values, tag)
}

// IsZero lets encoding/json omit absent tags with `omitzero`.
func (t Tags) IsZero() bool { return !t.present }

func (t Tags) MarshalJSON() ([]byte, error) {
	if !t.present {
		return []byte("null"), nil
	}
	if t.values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(t.values)
}

func (t *Tags) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = NoTags()
		return nil
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*t = SomeTags(values...)
	return nil
}

// Entry is one linkable item in a catalog listing, such as an example
// pipeline or a guide.
type Entry struct {
	Href        string `json:"href"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	ImageRef    string `json:"image,omitempty"`
	Tags        Tags   `json:"tags,omitzero"`
	Weight      int    `json:"-"`
}
