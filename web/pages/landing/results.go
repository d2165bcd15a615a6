package landing

import (
	"html"
	"strconv"

	"cinematch/models"
	"cinematch/web/pages/comps"

	"github.com/rohanthewiz/element"
)

// Results is the swappable region under the search box: the loading
// indicator, the trending dashboard and the results section. Every
// fetch replaces it as a whole.
type Results struct {
	State    models.ViewState
	Trending []models.TrendingTile
}

// Render implements element.Component.
func (r Results) Render(b *element.Builder) (x any) {
	st := r.State.Results

	loadingClass := "loading htmx-indicator"
	if r.State.Loading {
		loadingClass += " active"
	}

	b.Div("id", "results-area").R(
		b.Div("class", loadingClass, "id", "loading").R(
			b.DivClass("spinner").R(),
			b.P().T("Finding the perfect movies for you..."),
		),

		b.Wrap(func() {
			if r.State.DashboardVisible {
				element.RenderComponents(b, Dashboard{Tiles: r.Trending})
			}
		}),

		b.Div("class", "results", "id", "recommendations", "style", display(st.Visible)).R(
			b.Div("class", "featured-section", "style", display(st.FeaturedVisible)).R(
				element.RenderComponents(b, comps.SectionHeading{Title: "Now Selected", Icon: "fas fa-star"}),
				b.Div("class", "featured-container", "id", "featured-movie-container").R(
					b.Wrap(func() {
						if st.Featured != nil {
							element.RenderComponents(b, MovieCard{Card: *st.Featured})
						}
					}),
				),
			),

			element.RenderComponents(b, comps.SectionHeading{Title: st.Heading, Icon: "fas fa-magic"}),

			b.Div("class", "movies-grid", "id", "movies-grid").R(
				func() (x any) {
					if st.EmptyMessage != "" {
						b.DivClass("no-results").T(html.EscapeString(st.EmptyMessage))
						return
					}
					for _, c := range st.Cards {
						element.RenderComponents(b, MovieCard{Card: c})
					}
					return
				}(),
			),
		),
	)
	return
}

func display(visible bool) string {
	if visible {
		return "display: block"
	}
	return "display: none"
}

func itoa(i int) string { return strconv.Itoa(i) }
