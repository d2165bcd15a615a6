package landing

import (
	"html"

	"cinematch/models"
	"cinematch/web/pages/shared"

	"github.com/rohanthewiz/element"
)

// Page is the single CineMatch screen: search box, dropdown, trending
// dashboard and results, rendered from one controller snapshot.
type Page struct {
	shared.Page
	State    models.ViewState
	Genres   []string
	Trending []models.TrendingTile
}

// NewPage builds the page for the current state of sc.
func NewPage(sc *models.SearchController) Page {
	return Page{
		Page: shared.Page{
			Title:   "CineMatch",
			Tagline: "Discover your next favorite movie",
		},
		State:    sc.State(),
		Genres:   sc.Catalog().Genres(),
		Trending: sc.Trending(),
	}
}

// Render generates the complete HTML document.
func (p Page) Render() string {
	b := element.NewBuilder()

	b.Html("lang", "en").R(
		p.renderHead(b),
		p.renderBody(b),
	)

	return b.String()
}

func (p Page) renderHead(b *element.Builder) any {
	return b.Head().R(
		b.Meta("charset", "UTF-8"),
		b.Meta("name", "viewport", "content", "width=device-width, initial-scale=1.0"),
		b.Title().T(html.EscapeString(p.Title)+" - Movie Recommendations"),
		b.Link("rel", "stylesheet", "href", "/static/css/app.css?v=1"),
		b.Link("rel", "stylesheet", "href", "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.5.1/css/all.min.css"),
		b.Script("src", "https://unpkg.com/htmx.org@1.9.12").R(),
	)
}

func (p Page) renderBody(b *element.Builder) any {
	return b.Body().R(
		b.Div("class", "app-container", "id", "app").R(
			element.RenderComponents(b, Toolbar{}, p.Banner()),

			b.Main("class", "content").R(
				element.RenderComponents(b,
					SearchBar{State: p.State, Genres: p.Genres},
					Results{State: p.State, Trending: p.Trending},
				),
			),

			element.RenderComponents(b, p.Footer()),
		),

		b.Script("src", "/static/js/app.js?v=1").R(),
	)
}
