package landing

import "github.com/rohanthewiz/element"

// Toolbar is the top navigation bar.
type Toolbar struct{}

// Render implements the element.Component interface
func (t Toolbar) Render(b *element.Builder) any {
	b.HeaderClass("toolbar").R(
		b.DivClass("toolbar-left").R(
			b.A("class", "brand", "href", "/").R(
				b.Span("class", "fas fa-clapperboard").R(),
				b.Span().T(" CineMatch"),
			),
		),
		b.DivClass("toolbar-right").R(
			b.A("class", "toolbar-link", "href", "#search-section").T("Search"),
			b.A("class", "toolbar-link", "href", "#recommendations").T("Results"),
		),
	)
	return nil
}
