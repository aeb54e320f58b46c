package components

import (
	"html/template"
	"strings"
)

// Badge is a small inline label, used for card tags.
type Badge struct {
	Label   string
	Variant string // e.g. "secondary", "info"; empty for the default look
}

type badgeView struct {
	Class string
	Label string
}

func (r *Renderer) Badge(b Badge) (template.HTML, error) {
	return r.render("badge", badgeView{
		Class: classes("badge", modifier("badge", b.Variant)),
		Label: b.Label,
	})
}

// Button is a link styled as a button.
type Button struct {
	Label    string
	Href     string
	Variant  string // primary, secondary or outline; the theme decides when empty
	Size     string // sm, md or lg
	External bool
}

type buttonView struct {
	Class    string
	Label    string
	Href     string
	External bool
}

var validVariants = map[string]bool{"primary": true, "secondary": true, "outline": true}

func (r *Renderer) Button(b Button) (template.HTML, error) {
	variant := b.Variant
	if !validVariants[variant] {
		variant = r.theme.ButtonVariant
	}
	size := b.Size
	if size == "md" {
		size = ""
	}
	return r.render("button", buttonView{
		Class:    classes("button", modifier("button", variant), modifier("button", size)),
		Label:    b.Label,
		Href:     b.Href,
		External: b.External || isExternal(b.Href),
	})
}

func isExternal(href string) bool {
	return strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://")
}
