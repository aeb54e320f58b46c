package components

import (
	"fmt"
	"hash/fnv"
	"html/template"

	"github.com/cocoindex-io/examples/internal/catalog"
)

// Card links to one catalog entry.
type Card struct {
	Href        string
	Title       string
	Description string
	Image       string
	Tags        []string
}

// CardFromEntry builds the card props for a catalog entry.
func CardFromEntry(e catalog.Entry) Card {
	return Card{
		Href:        e.Href,
		Title:       e.Label,
		Description: e.Description,
		Image:       e.ImageRef,
		Tags:        e.Tags.Values(),
	}
}

// DeferredImage is an image left out of the server phase. The client
// script swaps the placeholder with ID for an <img> pointing at Src.
type DeferredImage struct {
	ID  string `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ImageID is the stable placeholder id of a card image.
func (c Card) ImageID() string {
	h := fnv.New32a()
	h.Write([]byte(c.Href))
	h.Write([]byte{0})
	h.Write([]byte(c.Image))
	return fmt.Sprintf("img-%08x", h.Sum32())
}

type cardView struct {
	Class       string
	Href        string
	Title       string
	Description string
	Image       string
	ImageID     string
	Deferred    bool
	Badges      []template.HTML
}

// Card renders a single card. Images are deferred in the server phase.
func (r *Renderer) Card(c Card, phase Phase) (template.HTML, error) {
	v := cardView{
		Class:       classes("card", modifier("card", r.theme.ColorMode)),
		Href:        c.Href,
		Title:       c.Title,
		Description: c.Description,
		Image:       c.Image,
		ImageID:     c.ImageID(),
		Deferred:    phase == PhaseServer && c.Image != "",
	}
	if c.Image != "" {
		v.Class = classes(v.Class, "card--with-image")
	}
	for _, t := range c.Tags {
		b, err := r.Badge(Badge{Label: catalog.TagLabel(t), Variant: "secondary"})
		if err != nil {
			return "", err
		}
		v.Badges = append(v.Badges, b)
	}
	return r.render("card", v)
}

type gridView struct {
	Cards []template.HTML
}

// CardGrid renders cards in a responsive grid. An empty list renders an
// empty grid; the surrounding layout decides what else to show.
func (r *Renderer) CardGrid(cards []Card, phase Phase) (template.HTML, error) {
	v := gridView{Cards: make([]template.HTML, 0, len(cards))}
	for _, c := range cards {
		h, err := r.Card(c, phase)
		if err != nil {
			return "", err
		}
		v.Cards = append(v.Cards, h)
	}
	return r.render("card-grid", v)
}

// DeferredImages lists the images the server phase leaves for the client.
func DeferredImages(cards []Card) []DeferredImage {
	var out []DeferredImage
	for _, c := range cards {
		if c.Image == "" {
			continue
		}
		out = append(out, DeferredImage{ID: c.ImageID(), Src: c.Image, Alt: c.Title})
	}
	return out
}
