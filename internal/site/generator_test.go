package site

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/components"
	"github.com/cocoindex-io/examples/internal/versions"
)

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

func testRewriter(t *testing.T) *versions.Rewriter {
	t.Helper()
	set, err := versions.NewSet([]versions.Option{
		{ID: "v0", Label: "Stable", Enabled: true, Default: true},
		{ID: "v1", Label: "Preview", Marker: "-v1", Enabled: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	rw, err := versions.NewRewriter(set, []string{"docs", "examples"})
	if err != nil {
		t.Fatal(err)
	}
	return rw
}

func newTestGenerator(t *testing.T, content, out string) *Generator {
	t.Helper()
	r, err := components.New(components.Theme{})
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGenerator(Options{
		ContentDir:  content,
		OutputDir:   out,
		Title:       "CocoIndex",
		CatalogRoot: "examples",
		Tags:        []string{"vector-index", "knowledge-graph"},
		Nav:         []components.NavItem{{Label: "Docs", Href: "/docs/"}},
		GitHubRepo:  "cocoindex-io/cocoindex",
		Stars:       1234,
	}, testRewriter(t), r, nil)
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	fixed := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	g.Now = func() time.Time { return fixed }
	return g
}

func writeFixture(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, "docs/index.md", "---\ntitle: Overview\n---\n# Welcome\n\nStart here.\n")
	writeFile(t, dir, "docs/guide.md", "# Guide\n\nSee [other](other.md) and [anchor](other.md#setup).\n")
	writeFile(t, dir, "docs/draft.md", "---\ndraft: true\n---\n# Draft\n")
	writeFile(t, dir, "examples/index.md", "---\ntitle: Examples\ndescription: Things you can build.\n---\nPick one.\n")
	writeFile(t, dir, "examples/a.md", "---\ntitle: A Title\nimage: /img/a.png\ntags: [vector-index]\n---\nA body.\n")
	writeFile(t, dir, "examples/b.md", "---\ntitle: B Title\ntags: [knowledge-graph]\n---\nB body.\n")
	writeFile(t, dir, "examples/c.md", "# C Title\n\nUntagged.\n")
	writeFile(t, dir, "img/a.png", "png")
}

func TestBuildTree(t *testing.T) {
	paths := []string{
		"docs/setup.md",
		"docs/ops/deploy.md",
		"docs/index.md",
		"docs/faq.md",
	}
	info := map[string]pageInfo{
		"docs/setup.md": {Title: "Setup", Weight: 1},
		"docs/faq.md":   {Title: "FAQ", Weight: 2},
	}

	tree := BuildTree("docs", paths, info)

	if tree.Name != "docs" || !tree.IsDir {
		t.Fatalf("root = %q (dir=%v), want docs dir", tree.Name, tree.IsDir)
	}
	var names []string
	for _, c := range tree.Children {
		names = append(names, c.Name)
	}
	want := []string{"index.md", "setup.md", "faq.md", "ops"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("children = %v, want %v", names, want)
	}
	ops := tree.Children[3]
	if !ops.IsDir || ops.Title != "Ops" || ops.Path != "docs/ops" {
		t.Errorf("ops node = %+v", ops)
	}
	if len(ops.Children) != 1 || ops.Children[0].Path != "docs/ops/deploy.md" {
		t.Errorf("ops children = %+v", ops.Children)
	}
}

func TestTreeToHTML(t *testing.T) {
	tree := BuildTree("docs", []string{"docs/index.md", "docs/ops/deploy.md"}, map[string]pageInfo{
		"docs/ops/deploy.md": {Title: "Deploy <prod>"},
	})
	out := tree.ToHTML("docs/ops/deploy.md")

	if !strings.Contains(out, `<li class="dir expanded">`) {
		t.Error("ancestor dir of the active page should be expanded")
	}
	if !strings.Contains(out, `<a href="/docs/ops/deploy.html" class="active" aria-current="page">Deploy &lt;prod&gt;</a>`) {
		t.Errorf("active link missing or unescaped:\n%s", out)
	}
	if !strings.Contains(out, `<a href="/docs/index.html">index</a>`) {
		t.Errorf("index link missing:\n%s", out)
	}
}

func TestGenerate(t *testing.T) {
	content := t.TempDir()
	out := filepath.Join(t.TempDir(), "public")
	writeFixture(t, content)

	g := newTestGenerator(t, content, out)
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// docs/index, docs/guide, three examples, and three catalog listings.
	if res.Pages != 8 {
		t.Errorf("Pages = %d, want 8", res.Pages)
	}
	if res.CatalogEntries != 3 {
		t.Errorf("CatalogEntries = %d, want 3", res.CatalogEntries)
	}
	if res.BuildID == "" {
		t.Error("BuildID is empty")
	}

	for _, f := range []string{"style.css", "script.js", SearchIndexFile, HydrateFile, ManifestFile, "img/a.png", "examples/a.html"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(f))); err != nil {
			t.Errorf("missing output %s: %v", f, err)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "docs", "draft.html")); !os.IsNotExist(err) {
		t.Error("draft page should not be rendered")
	}

	guide := readFile(t, out, "docs/guide.html")
	for _, want := range []string{
		`href="other.html"`,
		`href="other.html#setup"`,
		`<title>Guide | CocoIndex</title>`,
		`<a href="/docs-v1/guide.html">Preview</a>`,
		`aria-current="page"`,
		`data-stars="1234"`,
		`1.2k`,
		`data-version="v0"`,
	} {
		if !strings.Contains(guide, want) {
			t.Errorf("docs/guide.html missing %q", want)
		}
	}

	all := readFile(t, out, "examples/index.html")
	for _, want := range []string{"A Title", "B Title", "C Title", "Pick one.", `data-src="/img/a.png"`, `aria-checked="true"`} {
		if !strings.Contains(all, want) {
			t.Errorf("examples/index.html missing %q", want)
		}
	}
	if strings.Contains(all, `<img class="card__image"`) {
		t.Error("server phase must not emit card <img> tags")
	}

	tagged := readFile(t, out, "examples/tag/knowledge-graph/index.html")
	if !strings.Contains(tagged, `<h3 class="card__title">B Title</h3>`) {
		t.Error("tag page should list the matching entry")
	}
	for _, absent := range []string{`<h3 class="card__title">A Title</h3>`, `<h3 class="card__title">C Title</h3>`} {
		if strings.Contains(tagged, absent) {
			t.Errorf("tag page should not contain %s", absent)
		}
	}
	if !strings.Contains(tagged, "Examples: Knowledge Graph") {
		t.Error("tag page title missing")
	}

	var hydrate map[string][]components.DeferredImage
	if err := json.Unmarshal([]byte(readFile(t, out, HydrateFile)), &hydrate); err != nil {
		t.Fatalf("decoding hydrate.json: %v", err)
	}
	if imgs := hydrate["/examples/"]; len(imgs) != 1 || imgs[0].Src != "/img/a.png" || imgs[0].Alt != "A Title" {
		t.Errorf("hydrate[/examples/] = %+v", imgs)
	}
	if _, ok := hydrate["/examples/tag/knowledge-graph/"]; ok {
		t.Error("pages without images should not appear in the hydration manifest")
	}

	var manifest Result
	if err := json.Unmarshal([]byte(readFile(t, out, ManifestFile)), &manifest); err != nil {
		t.Fatalf("decoding build.json: %v", err)
	}
	if manifest.BuildID != res.BuildID || manifest.Pages != 8 {
		t.Errorf("manifest = %+v, want id %s and 8 pages", manifest, res.BuildID)
	}

	var search []SearchEntry
	if err := json.Unmarshal([]byte(readFile(t, out, SearchIndexFile)), &search); err != nil {
		t.Fatalf("decoding search index: %v", err)
	}
	paths := make(map[string]SearchEntry)
	for _, e := range search {
		paths[e.Path] = e
	}
	if _, ok := paths["/docs/draft.html"]; ok {
		t.Error("draft in search index")
	}
	if e, ok := paths["/docs/index.html"]; !ok || e.Title != "Overview" {
		t.Errorf("search entry for docs index = %+v", e)
	}
	if e := paths["/examples/a.html"]; len(e.Tags) != 1 || e.Tags[0] != "vector-index" {
		t.Errorf("search entry tags = %v", e.Tags)
	}
}

func TestGenerateWithoutCatalogDir(t *testing.T) {
	content := t.TempDir()
	out := t.TempDir()
	writeFile(t, content, "docs/index.md", "# Docs\n")

	g := newTestGenerator(t, content, out)
	res, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Pages != 1 || res.CatalogEntries != 0 {
		t.Errorf("result = %+v, want 1 page and no catalog", res)
	}
	if _, err := os.Stat(filepath.Join(out, "examples", "index.html")); !os.IsNotExist(err) {
		t.Error("catalog page written without a catalog dir")
	}
}

func TestGenerateSkipsNestedOutputDir(t *testing.T) {
	content := t.TempDir()
	writeFixture(t, content)
	out := filepath.Join(content, "public")

	g := newTestGenerator(t, content, out)
	var res Result
	for i := 0; i < 3; i++ {
		var err error
		if res, err = g.Generate(context.Background()); err != nil {
			t.Fatalf("Generate #%d: %v", i+1, err)
		}
	}
	if res.Pages != 8 {
		t.Errorf("Pages = %d after rebuilds, want 8", res.Pages)
	}
	if _, err := os.Stat(filepath.Join(out, "public")); !os.IsNotExist(err) {
		t.Errorf("previous output was copied into itself (stat err = %v)", err)
	}
	if _, err := os.Stat(filepath.Join(out, "img", "a.png")); err != nil {
		t.Errorf("asset not copied: %v", err)
	}
}

func TestGenerateNoPages(t *testing.T) {
	g := newTestGenerator(t, t.TempDir(), t.TempDir())
	if _, err := g.Generate(context.Background()); !errors.Is(err, ErrNoPages) {
		t.Errorf("err = %v, want ErrNoPages", err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	content := t.TempDir()
	writeFixture(t, content)
	g := newTestGenerator(t, content, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := g.Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewGeneratorRejectsBadTags(t *testing.T) {
	r, _ := components.New(components.Theme{})
	_, err := NewGenerator(Options{ContentDir: "c", OutputDir: "o", Tags: []string{"a", "a"}}, nil, r, nil)
	if !errors.Is(err, catalog.ErrDuplicateTag) {
		t.Errorf("err = %v, want ErrDuplicateTag", err)
	}
}

func TestCatalogURL(t *testing.T) {
	tests := []struct {
		tag, want string
	}{
		{"", "/examples/"},
		{"vector-index", "/examples/tag/vector-index/"},
		{"a b", "/examples/tag/a%20b/"},
	}
	for _, tt := range tests {
		if got := CatalogURL("examples", tt.tag); got != tt.want {
			t.Errorf("CatalogURL(%q) = %q, want %q", tt.tag, got, tt.want)
		}
	}
}

func TestRewriteMDLinks(t *testing.T) {
	in := `<a href="a.md">a</a> <a href="b.mdx#x">b</a> <a href="c.html">c</a>`
	want := `<a href="a.html">a</a> <a href="b.html#x">b</a> <a href="c.html">c</a>`
	if got := rewriteMDLinks(in); got != want {
		t.Errorf("rewriteMDLinks = %q, want %q", got, want)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		fm   catalog.FrontMatter
		body string
		want string
	}{
		{catalog.FrontMatter{Title: "Front"}, "# Heading", "Front"},
		{catalog.FrontMatter{}, "intro\n# Heading\n", "Heading"},
		{catalog.FrontMatter{}, "no heading", "page"},
	}
	for _, tt := range tests {
		if got := extractTitle(tt.fm, []byte(tt.body), "docs/page.md"); got != tt.want {
			t.Errorf("extractTitle = %q, want %q", got, tt.want)
		}
	}
}

func TestNewSearchEntry(t *testing.T) {
	p := &page{
		URL:   "/docs/x.html",
		Title: "X",
		Body:  []byte("# X\n\nFirst paragraph.\n\n```go\ncode\n```\n## Section\nMore."),
	}
	e := newSearchEntry(p)
	if e.Summary != "First paragraph." {
		t.Errorf("Summary = %q", e.Summary)
	}
	if strings.Contains(e.Content, "```") {
		t.Errorf("Content should drop fences: %q", e.Content)
	}
	if !strings.Contains(e.Content, "Section") {
		t.Errorf("Content should keep subheadings: %q", e.Content)
	}

	long := &page{Body: []byte(strings.Repeat("é", maxSearchContent))}
	if got := newSearchEntry(long).Content; len(got) > maxSearchContent || !strings.HasSuffix(got, "é") {
		t.Errorf("truncated content length %d not rune aligned", len(got))
	}
}

func TestScriptHandlesSelectorKeys(t *testing.T) {
	// Enter and Space reach the trigger button as native clicks.
	keys := []string{
		versions.KeyArrowDown, versions.KeyArrowRight,
		versions.KeyArrowUp, versions.KeyArrowLeft,
		versions.KeyEscape,
	}
	for _, key := range keys {
		if !strings.Contains(jsContent, `case "`+key+`":`) {
			t.Errorf("script has no handler for %q", key)
		}
	}
}
