package comps

import (
	"html"

	"github.com/rohanthewiz/element"
)

// SectionHeading is the header row above a group of cards.
type SectionHeading struct {
	Title string
	Icon  string // Font Awesome class, optional
}

func (h SectionHeading) Render(b *element.Builder) (x any) {
	b.DivClass("section-header").R(
		b.H2().R(
			b.Wrap(func() {
				if h.Icon != "" {
					b.Span("class", h.Icon).R()
					b.T(" ")
				}
			}),
			b.T(html.EscapeString(h.Title)),
		),
	)
	return
}
