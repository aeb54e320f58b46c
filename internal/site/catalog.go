package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"path"
	"path/filepath"

	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/components"
)

// CatalogURL is the page listing the catalog filtered by tag; "" is the
// unfiltered listing.
func CatalogURL(root, tag string) string {
	if tag == "" {
		return "/" + root + "/"
	}
	return "/" + root + "/tag/" + url.PathEscape(tag) + "/"
}

func catalogLabel(tag string) string {
	if tag == "" {
		return catalog.AllLabel
	}
	return catalog.TagLabel(tag)
}

type catalogView struct {
	Intro    template.HTML
	Endpoint string
	Filter   template.HTML
	Grid     template.HTML
	Empty    bool
	Reset    template.HTML
}

var catalogTmpl = template.Must(template.New("catalog").Parse(catalogTemplate))

// renderCatalogPage writes the listing for one tag selection and returns
// its URL and the images left for the client phase.
func (g *Generator) renderCatalogPage(entries []catalog.Entry, tag string, intro *page, tree *FileTree) (string, []components.DeferredImage, error) {
	root := g.opts.CatalogRoot
	filter, err := catalog.NewFilter(g.opts.Tags)
	if err != nil {
		return "", nil, err
	}
	filter.Select(tag)

	radio, err := g.renderer.RadioCardGroup(components.RadioCardGroup{
		Name:  "tag",
		Label: "Filter by tag",
		Options: components.RadioOptions(filter.Options(), func(v string) string {
			return CatalogURL(root, v)
		}),
	})
	if err != nil {
		return "", nil, err
	}

	visible := filter.Visible(entries)
	cards := make([]components.Card, 0, len(visible))
	for _, e := range visible {
		cards = append(cards, components.CardFromEntry(e))
	}
	grid, err := g.renderer.CardGrid(cards, components.PhaseServer)
	if err != nil {
		return "", nil, err
	}

	view := catalogView{
		Endpoint: "/api/cards",
		Filter:   radio,
		Grid:     grid,
		Empty:    len(cards) == 0,
	}
	title := catalog.TagLabel(root)
	var sidebar template.HTML
	activeRel := ""
	if intro != nil {
		if view.Intro, err = g.markdown(intro.Body); err != nil {
			return "", nil, err
		}
		title = intro.Title
		activeRel = intro.Rel
	}
	if tree != nil {
		sidebar = template.HTML(tree.ToHTML(activeRel))
	}
	if tag != "" {
		title = fmt.Sprintf("%s: %s", title, catalog.TagLabel(tag))
		if view.Reset, err = g.renderer.Button(components.Button{
			Label:   "Show all",
			Href:    CatalogURL(root, ""),
			Variant: "outline",
			Size:    "sm",
		}); err != nil {
			return "", nil, err
		}
	}

	var buf bytes.Buffer
	if err := catalogTmpl.Execute(&buf, view); err != nil {
		return "", nil, fmt.Errorf("executing catalog template: %w", err)
	}

	listURL := CatalogURL(root, tag)
	outRel := filepath.FromSlash(path.Join(root, "index.html"))
	if tag != "" {
		outRel = filepath.FromSlash(path.Join(root, "tag", url.PathEscape(tag), "index.html"))
	}
	data := pageData{
		Title:   title,
		Sidebar: sidebar,
		Content: template.HTML(buf.String()),
	}
	if intro != nil {
		data.Description = intro.Meta.Description
	}
	if err := g.writePage(outRel, listURL, data); err != nil {
		return "", nil, err
	}
	return listURL, components.DeferredImages(cards), nil
}
