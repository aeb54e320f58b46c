package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"

	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/components"
	"github.com/cocoindex-io/examples/internal/progress"
	"github.com/cocoindex-io/examples/internal/versions"
)

// Output files written next to the pages.
const (
	SearchIndexFile = "search-index.json"
	HydrateFile     = "hydrate.json"
	ManifestFile    = "build.json"
	StyleFile       = "style.css"
	ScriptFile      = "script.js"
)

// ErrNoPages is returned when the content directory holds no Markdown.
var ErrNoPages = errors.New("no markdown files found")

// Options describes what to build.
type Options struct {
	ContentDir     string
	OutputDir      string
	Title          string
	BaseURL        string
	CatalogRoot    string
	CatalogInclude []string
	Tags           []string
	Nav            []components.NavItem
	GitHubRepo     string
	Stars          int
}

// Result summarises a finished build. It is also written as build.json.
type Result struct {
	BuildID        string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Pages          int       `json:"pages"`
	CatalogEntries int       `json:"catalog_entries"`
}

// Generator converts the content tree into a static HTML site.
type Generator struct {
	opts     Options
	rw       *versions.Rewriter
	renderer *components.Renderer
	logger   *zap.Logger
	md       goldmark.Markdown
	tmpl     *template.Template

	// Progress receives per-page updates. Defaults to progress.Nop.
	Progress progress.Reporter
	// Now is the clock used for build timestamps.
	Now func() time.Time
}

// NewGenerator creates a Generator. The tag list is validated up front so a
// bad configuration fails before anything is written.
func NewGenerator(opts Options, rw *versions.Rewriter, renderer *components.Renderer, logger *zap.Logger) (*Generator, error) {
	if opts.ContentDir == "" || opts.OutputDir == "" {
		return nil, errors.New("content and output directories are required")
	}
	if _, err := catalog.NewFilter(opts.Tags); err != nil {
		return nil, fmt.Errorf("catalog tags: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	return &Generator{
		opts:     opts,
		rw:       rw,
		renderer: renderer,
		logger:   logger,
		md:       md,
		tmpl:     tmpl,
		Progress: progress.Nop{},
		Now:      time.Now,
	}, nil
}

// page is one Markdown source file.
type page struct {
	Rel   string // content-relative slash path
	URL   string // absolute site path
	Root  string
	Title string
	Meta  catalog.FrontMatter
	Tags  catalog.Tags
	Body  []byte
}

// pageData holds the data passed to the HTML template for each page.
type pageData struct {
	Title       string
	SiteTitle   string
	Description string
	Canonical   string
	ColorMode   string
	Version     string
	NavBar      template.HTML
	Sidebar     template.HTML
	Content     template.HTML
}

// Generate builds the full static site. The output directory is created
// if needed; existing files are overwritten but never removed.
func (g *Generator) Generate(ctx context.Context) (Result, error) {
	res := Result{BuildID: uuid.New().String(), StartedAt: g.Now().UTC()}

	pages, assets, err := g.collect()
	if err != nil {
		return res, err
	}
	if len(pages) == 0 {
		return res, fmt.Errorf("%w in %s", ErrNoPages, g.opts.ContentDir)
	}

	entries, err := catalog.Load(g.opts.ContentDir, g.opts.CatalogRoot, g.opts.CatalogInclude)
	hasCatalog := true
	if errors.Is(err, fs.ErrNotExist) {
		g.logger.Warn("catalog directory missing, skipping catalog pages",
			zap.String("root", g.opts.CatalogRoot))
		hasCatalog = false
	} else if err != nil {
		return res, err
	}
	res.CatalogEntries = len(entries)

	if err := os.MkdirAll(g.opts.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("creating output dir: %w", err)
	}

	trees := g.buildTrees(pages)

	var catalogIntro *page
	total := len(pages)
	if hasCatalog {
		total += 1 + len(g.opts.Tags)
	}
	g.Progress.Start(total)
	defer g.Progress.Finish()

	search := make([]SearchEntry, 0, len(pages))
	done := 0
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		done++
		g.Progress.Update(done, p.Rel)

		if hasCatalog && g.isCatalogIndex(p) {
			catalogIntro = p
			continue
		}
		if err := g.renderPage(p, trees[p.Root]); err != nil {
			return res, fmt.Errorf("rendering %s: %w", p.Rel, err)
		}
		search = append(search, newSearchEntry(p))
		res.Pages++
	}

	hydrate := make(map[string][]components.DeferredImage)
	if hasCatalog {
		selections := append([]string{""}, g.opts.Tags...)
		for _, tag := range selections {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			done++
			g.Progress.Update(done, "catalog "+catalogLabel(tag))

			url, images, err := g.renderCatalogPage(entries, tag, catalogIntro, trees[g.opts.CatalogRoot])
			if err != nil {
				return res, fmt.Errorf("rendering catalog %q: %w", tag, err)
			}
			if len(images) > 0 {
				hydrate[url] = images
			}
			res.Pages++
		}
		if catalogIntro != nil {
			search = append(search, newSearchEntry(catalogIntro))
		}
	}

	if err := WriteSearchIndex(search, filepath.Join(g.opts.OutputDir, SearchIndexFile)); err != nil {
		return res, fmt.Errorf("writing search index: %w", err)
	}
	if err := writeJSONFile(filepath.Join(g.opts.OutputDir, HydrateFile), hydrate); err != nil {
		return res, fmt.Errorf("writing hydration manifest: %w", err)
	}

	// Write static assets.
	if err := os.WriteFile(filepath.Join(g.opts.OutputDir, StyleFile), []byte(cssContent), 0o644); err != nil {
		return res, err
	}
	if err := os.WriteFile(filepath.Join(g.opts.OutputDir, ScriptFile), []byte(jsContent), 0o644); err != nil {
		return res, err
	}
	for _, rel := range assets {
		if err := copyFile(filepath.Join(g.opts.ContentDir, filepath.FromSlash(rel)), filepath.Join(g.opts.OutputDir, filepath.FromSlash(rel))); err != nil {
			return res, fmt.Errorf("copying %s: %w", rel, err)
		}
	}

	res.FinishedAt = g.Now().UTC()
	if err := writeJSONFile(filepath.Join(g.opts.OutputDir, ManifestFile), res); err != nil {
		return res, fmt.Errorf("writing build manifest: %w", err)
	}

	g.logger.Debug("site generated",
		zap.String("build_id", res.BuildID),
		zap.Int("pages", res.Pages),
		zap.Int("catalog_entries", res.CatalogEntries),
		zap.Duration("elapsed", res.FinishedAt.Sub(res.StartedAt)))
	return res, nil
}

// collect walks the content directory. Markdown files become pages
// (drafts dropped); every other non-hidden file is an asset to copy.
func (g *Generator) collect() ([]*page, []string, error) {
	var (
		pages  []*page
		assets []string
	)
	// A previous build under the content dir must not be read back in.
	outAbs, err := filepath.Abs(g.opts.OutputDir)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving output dir: %w", err)
	}
	err = filepath.WalkDir(g.opts.ContentDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if abs, aerr := filepath.Abs(p); aerr == nil && abs == outAbs {
				return filepath.SkipDir
			}
		}
		if strings.HasPrefix(d.Name(), ".") && p != g.opts.ContentDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(g.opts.ContentDir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !catalog.IsMarkdown(rel) {
			assets = append(assets, rel)
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		fm, body, err := catalog.ParsePage(content)
		if err != nil {
			return fmt.Errorf("parsing frontmatter of %s: %w", rel, err)
		}
		if fm.Draft {
			return nil
		}
		pages = append(pages, &page{
			Rel:   rel,
			URL:   pageURL(rel),
			Root:  rootOf(rel),
			Title: extractTitle(fm, body, rel),
			Meta:  fm,
			Tags:  catalog.TagsFrom(fm.Tags),
			Body:  body,
		})
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking content dir: %w", err)
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].Rel < pages[j].Rel })
	return pages, assets, nil
}

// buildTrees groups pages by root segment and builds one sidebar per root.
func (g *Generator) buildTrees(pages []*page) map[string]*FileTree {
	grouped := make(map[string][]string)
	info := make(map[string]pageInfo, len(pages))
	for _, p := range pages {
		grouped[p.Root] = append(grouped[p.Root], p.Rel)
		info[p.Rel] = pageInfo{Title: p.Title, Weight: p.Meta.Weight}
	}
	trees := make(map[string]*FileTree, len(grouped))
	for root, paths := range grouped {
		trees[root] = BuildTree(root, paths, info)
	}
	return trees
}

func (g *Generator) isCatalogIndex(p *page) bool {
	return p.Root == g.opts.CatalogRoot && path.Dir(p.Rel) == g.opts.CatalogRoot &&
		strings.TrimSuffix(path.Base(p.Rel), path.Ext(p.Rel)) == "index"
}

// renderPage converts a single Markdown page to HTML.
func (g *Generator) renderPage(p *page, tree *FileTree) error {
	content, err := g.markdown(p.Body)
	if err != nil {
		return err
	}
	var sidebar template.HTML
	if tree != nil {
		sidebar = template.HTML(tree.ToHTML(p.Rel))
	}
	return g.writePage(filepath.FromSlash(catalog.HTMLPath(p.Rel)), p.URL, pageData{
		Title:       p.Title,
		Description: p.Meta.Description,
		Sidebar:     sidebar,
		Content:     content,
	})
}

// markdown renders a page body and rewrites relative .md links.
func (g *Generator) markdown(body []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(body, &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(rewriteMDLinks(buf.String())), nil
}

// writePage wraps content in the page chrome and writes it to outRel
// under the output directory. url is the page's site path.
func (g *Generator) writePage(outRel, url string, data pageData) error {
	nav, err := g.chrome(url)
	if err != nil {
		return err
	}
	data.NavBar = nav
	data.SiteTitle = g.opts.Title
	data.ColorMode = g.renderer.Theme().ColorMode
	if g.rw != nil {
		data.Version = g.rw.Detect(url)
	}
	if g.opts.BaseURL != "" {
		data.Canonical = strings.TrimSuffix(g.opts.BaseURL, "/") + url
	}

	outPath := filepath.Join(g.opts.OutputDir, outRel)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := g.tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing page template: %w", err)
	}
	return os.WriteFile(outPath, buf.Bytes(), 0o644)
}

// chrome renders the navigation bar for the page at url, with the version
// selector links computed for that path.
func (g *Generator) chrome(url string) (template.HTML, error) {
	var vs template.HTML
	if g.rw != nil {
		var err error
		vs, err = g.renderer.VersionSelect(components.VersionSelect{Links: g.rw.Links(url)})
		if err != nil {
			return "", err
		}
	}
	var gh template.HTML
	if g.opts.GitHubRepo != "" {
		var err error
		gh, err = g.renderer.GitHubButton(components.GitHubButton{Repo: g.opts.GitHubRepo, Stars: g.opts.Stars})
		if err != nil {
			return "", err
		}
	}
	return g.renderer.NavBar(components.NavBar{
		Brand:         g.opts.Title,
		Items:         g.opts.Nav,
		Path:          url,
		VersionSelect: vs,
		GitHub:        gh,
	})
}

// extractTitle prefers the frontmatter title, then the first # heading,
// then the file name.
func extractTitle(fm catalog.FrontMatter, body []byte, rel string) string {
	if fm.Title != "" {
		return fm.Title
	}
	if h := catalog.FirstHeading(body); h != "" {
		return h
	}
	return strings.TrimSuffix(path.Base(rel), path.Ext(rel))
}

// rewriteMDLinks changes .md links in HTML content to .html links.
func rewriteMDLinks(content string) string {
	r := strings.NewReplacer(
		`.md"`, `.html"`,
		`.md#`, `.html#`,
		`.mdx"`, `.html"`,
		`.mdx#`, `.html#`,
	)
	return r.Replace(content)
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o644)
}
