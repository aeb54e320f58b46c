// Package components renders the site's presentational building blocks:
// badges, buttons, cards, the navigation bar, the version selector and the
// radio-card tag filter. Each component maps its props to CSS classes and
// escaped HTML.
package components

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Theme is the site-wide presentation config. It is passed explicitly to
// a Renderer rather than looked up from global state.
type Theme struct {
	ColorMode     string `koanf:"color_mode" yaml:"color_mode"`
	Accent        string `koanf:"accent" yaml:"accent"`
	ButtonVariant string `koanf:"button_variant" yaml:"button_variant"`
}

// Phase selects which half of the two-phase render contract runs.
// PhaseServer output must not depend on browser-only resources;
// PhaseClient output is produced for hydration after the page loads.
type Phase int

const (
	PhaseServer Phase = iota
	PhaseClient
)

func (p Phase) String() string {
	if p == PhaseClient {
		return "client"
	}
	return "server"
}

// Renderer renders components with a fixed theme.
type Renderer struct {
	theme Theme
	tmpl  *template.Template
}

// New parses the component templates once for the given theme.
func New(theme Theme) (*Renderer, error) {
	if theme.ColorMode == "" {
		theme.ColorMode = "light"
	}
	if theme.ButtonVariant == "" {
		theme.ButtonVariant = "primary"
	}
	tmpl, err := template.New("components").Funcs(template.FuncMap{
		"formatStar": FormatStars,
	}).Parse(componentTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing component templates: %w", err)
	}
	return &Renderer{theme: theme, tmpl: tmpl}, nil
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme { return r.theme }

func (r *Renderer) render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// classes joins the non-empty class names.
func classes(names ...string) string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return strings.Join(out, " ")
}

// modifier returns "block--value", or "" when value is empty.
func modifier(block, value string) string {
	if value == "" {
		return ""
	}
	return block + "--" + value
}
