package landing

import (
	"html"

	"cinematch/models"

	"github.com/rohanthewiz/element"
)

// Dashboard shows a few trending titles before the first search.
// Tiles call the page's global selectMovie(title).
type Dashboard struct {
	Tiles []models.TrendingTile
}

// Render implements element.Component.
func (d Dashboard) Render(b *element.Builder) (x any) {
	if len(d.Tiles) == 0 {
		return
	}

	b.Div("class", "dashboard", "id", "dashboard-init").R(
		b.DivClass("section-header").R(
			b.H2().R(
				b.Span("class", "fas fa-fire").R(),
				b.T(" Trending Now"),
			),
		),
		b.DivClass("trending-grid").R(
			element.ForEach(d.Tiles, func(tile models.TrendingTile) {
				t := html.EscapeString(tile.Title)
				b.Div("class", "trending-card",
					"data-title", t,
					"onclick", "selectMovie(this.dataset.title)").R(
					b.Img("class", "trending-poster", "src", html.EscapeString(tile.PosterURL), "alt", t, "loading", "lazy",
						"onerror", "this.onerror=null; this.src='"+models.FallbackPosterURL+"';"),
					b.DivClass("trending-title").T(t),
				)
			}),
		),
	)
	return
}
