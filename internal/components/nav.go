package components

import (
	"html/template"
	"strings"

	"github.com/cocoindex-io/examples/internal/catalog"
	"github.com/cocoindex-io/examples/internal/versions"
)

// RadioOption is one choice of a RadioCardGroup. Href is the page that
// shows the list with this option applied.
type RadioOption struct {
	Value   string
	Label   string
	Checked bool
	Href    string
}

// RadioCardGroup is a single-select group rendered with radio semantics.
type RadioCardGroup struct {
	Name    string
	Label   string
	Options []RadioOption
}

// RadioOptions adapts the tag filter's options, linking each one to the
// page produced by hrefFor.
func RadioOptions(opts []catalog.Option, hrefFor func(value string) string) []RadioOption {
	out := make([]RadioOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, RadioOption{Value: o.Value, Label: o.Label, Checked: o.Checked, Href: hrefFor(o.Value)})
	}
	return out
}

type radioOptionView struct {
	RadioOption
	Class string
}

type radioGroupView struct {
	Name    string
	Label   string
	Options []radioOptionView
}

func (r *Renderer) RadioCardGroup(g RadioCardGroup) (template.HTML, error) {
	v := radioGroupView{Name: g.Name, Label: g.Label}
	for _, o := range g.Options {
		class := "radio-card"
		if o.Checked {
			class = classes(class, "radio-card--checked")
		}
		v.Options = append(v.Options, radioOptionView{RadioOption: o, Class: class})
	}
	return r.render("radio-group", v)
}

// VersionSelect is the dropdown listing documentation versions.
type VersionSelect struct {
	Links []versions.Link
}

type versionSelectView struct {
	CurrentLabel string
	Links        []versions.Link
}

func (r *Renderer) VersionSelect(vs VersionSelect) (template.HTML, error) {
	v := versionSelectView{Links: vs.Links}
	for _, l := range vs.Links {
		if l.Current {
			v.CurrentLabel = l.Label
		}
	}
	return r.render("version-select", v)
}

// NavItem is one link in the navigation bar.
type NavItem struct {
	Label    string `koanf:"label" yaml:"label"`
	Href     string `koanf:"href" yaml:"href"`
	External bool   `koanf:"external" yaml:"external"`
}

// NavBar is the top navigation of every page.
type NavBar struct {
	Brand         string
	BrandHref     string
	Items         []NavItem
	Path          string
	VersionSelect template.HTML
	GitHub        template.HTML
}

type navItemView struct {
	NavItem
	Active bool
}

type navBarView struct {
	Class         string
	Brand         string
	BrandHref     string
	Items         []navItemView
	VersionSelect template.HTML
	GitHub        template.HTML
}

func (r *Renderer) NavBar(n NavBar) (template.HTML, error) {
	v := navBarView{
		Class:         classes("navbar", modifier("navbar", r.theme.ColorMode)),
		Brand:         n.Brand,
		BrandHref:     n.BrandHref,
		VersionSelect: n.VersionSelect,
		GitHub:        n.GitHub,
	}
	if v.BrandHref == "" {
		v.BrandHref = "/"
	}
	for _, it := range n.Items {
		v.Items = append(v.Items, navItemView{NavItem: it, Active: IsActive(it.Href, n.Path)})
	}
	return r.render("navbar", v)
}

// IsActive reports whether path lies under href. The site root only
// matches itself. Trailing version markers are not considered, so
// /docs matches /docs/x but not /docs-v1/x.
func IsActive(href, path string) bool {
	if href == "" || isExternal(href) {
		return false
	}
	if href == "/" {
		return path == "/" || path == "/index.html"
	}
	href = strings.TrimSuffix(href, "/")
	return path == href || strings.HasPrefix(path, href+"/")
}

// GitHubButton links to the repository and shows its star count.
type GitHubButton struct {
	Repo  string
	Stars int
}

func (r *Renderer) GitHubButton(b GitHubButton) (template.HTML, error) {
	return r.render("github-button", b)
}
