package shared

import (
	"html"

	"github.com/rohanthewiz/element"
)

// Banner is the hero heading at the top of a page.
type Banner struct {
	Title   string
	Tagline string
}

// Render implements element.Component.
func (bn Banner) Render(b *element.Builder) any {
	b.HeaderClass("hero").R(
		b.H1Class("hero-title").R(
			b.Span("class", "fas fa-film").R(),
			b.Span().T(" "+html.EscapeString(bn.Title)),
		),
		b.PClass("hero-tagline").T(html.EscapeString(bn.Tagline)),
	)
	return nil
}
