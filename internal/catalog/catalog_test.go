package catalog

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hrefs(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Href)
	}
	return out
}

func sampleEntries() []Entry {
	return []Entry{
		{Href: "/examples/a.html", Label: "A", Tags: SomeTags("x")},
		{Href: "/examples/b.html", Label: "B", Tags: SomeTags("y")},
		{Href: "/examples/c.html", Label: "C", Tags: SomeTags()},
		{Href: "/examples/d.html", Label: "D"},
	}
}

func TestVisibleSelectsOnlyMatchingEntries(t *testing.T) {
	entries := sampleEntries()

	got := Visible(entries, "x")
	assert.Equal(t, []string{"/examples/a.html"}, hrefs(got))

	all := Visible(entries, "")
	assert.Len(t, all, 4)
}

func TestVisibleEmptyTagIsIdentity(t *testing.T) {
	entries := sampleEntries()
	got := Visible(entries, "")
	if diff := cmp.Diff(hrefs(entries), hrefs(got)); diff != "" {
		t.Errorf("Visible(\"\") changed entries (-want +got):\n%s", diff)
	}
}

func TestVisiblePreservesOrder(t *testing.T) {
	entries := []Entry{
		{Href: "3", Tags: SomeTags("etl", "vector")},
		{Href: "1", Tags: SomeTags("vector")},
		{Href: "2", Tags: SomeTags("etl")},
		{Href: "0", Tags: SomeTags("vector", "graph")},
	}
	got := Visible(entries, "vector")
	if diff := cmp.Diff([]string{"3", "1", "0"}, hrefs(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestVisibleNeverMatchesAbsentOrEmptyTags(t *testing.T) {
	entries := []Entry{
		{Href: "absent"},
		{Href: "empty", Tags: SomeTags()},
	}
	for _, tag := range []string{"x", "y", "absent", " "} {
		assert.Empty(t, Visible(entries, tag), "tag %q", tag)
	}
}

func TestVisibleIsCaseSensitive(t *testing.T) {
	entries := []Entry{{Href: "a", Tags: SomeTags("Vector")}}
	assert.Empty(t, Visible(entries, "vector"))
	assert.Len(t, Visible(entries, "Vector"), 1)
}

func TestVisibleDoesNotMutateInput(t *testing.T) {
	entries := sampleEntries()
	before := hrefs(entries)
	_ = Visible(entries, "y")
	assert.Equal(t, before, hrefs(entries))
}

func TestVisibleUnknownTagYieldsEmpty(t *testing.T) {
	got := Visible(sampleEntries(), "nope")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNewFilterValidation(t *testing.T) {
	_, err := NewFilter(nil)
	require.ErrorIs(t, err, ErrNoTags)

	_, err = NewFilter([]string{"a", "b", "a"})
	require.ErrorIs(t, err, ErrDuplicateTag)

	_, err = NewFilter([]string{"a", ""})
	require.Error(t, err)
}

func TestFilterOptionsRadioSemantics(t *testing.T) {
	f, err := NewFilter([]string{"vector-index", "etl"})
	require.NoError(t, err)

	opts := f.Options()
	require.Len(t, opts, 3)
	assert.Equal(t, Option{Value: "", Label: AllLabel, Checked: true}, opts[0])
	assert.Equal(t, "Vector Index", opts[1].Label)
	assert.Equal(t, "Etl", opts[2].Label)

	f.Select("etl")
	checked := 0
	for _, o := range f.Options() {
		if o.Checked {
			checked++
			assert.Equal(t, "etl", o.Value)
		}
	}
	assert.Equal(t, 1, checked)

	f.Select("")
	assert.True(t, f.Options()[0].Checked)
}

func TestFilterSnapshotWithNoEntries(t *testing.T) {
	f, err := NewFilter([]string{"x"})
	require.NoError(t, err)
	f.Select("x")

	snap := f.Snapshot(nil)
	assert.Equal(t, "x", snap.Selected)
	assert.Len(t, snap.Options, 2)
	assert.NotNil(t, snap.Entries)
	assert.Empty(t, snap.Entries)
}

func TestTagsVariants(t *testing.T) {
	var zero Tags
	assert.False(t, zero.Present())
	assert.Nil(t, zero.Values())
	assert.False(t, zero.Contains(""))

	empty := SomeTags()
	assert.True(t, empty.Present())
	assert.Equal(t, 0, empty.Len())

	src := []string{"a"}
	tags := TagsFrom(&src)
	src[0] = "changed"
	assert.True(t, tags.Contains("a"))
	assert.False(t, TagsFrom(nil).Present())
}

func TestTagsJSON(t *testing.T) {
	data, err := json.Marshal([]Entry{
		{Href: "a", Label: "A"},
		{Href: "b", Label: "B", Tags: SomeTags()},
		{Href: "c", Label: "C", Tags: SomeTags("x")},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"href":"a","label":"A"},
		{"href":"b","label":"B","tags":[]},
		{"href":"c","label":"C","tags":["x"]}
	]`, string(data))

	var back []Entry
	require.NoError(t, json.Unmarshal(data, &back))
	assert.False(t, back[0].Tags.Present())
	assert.True(t, back[1].Tags.Present())
	assert.True(t, back[2].Tags.Contains("x"))
}
