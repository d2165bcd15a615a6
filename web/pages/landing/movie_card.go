package landing

import (
	"html"

	"cinematch/models"

	"github.com/rohanthewiz/element"
)

// MovieCard renders one result tile. Non-featured cards post their title
// to /ui/card when clicked.
type MovieCard struct {
	Card models.Card
}

// Render implements element.Component.
func (mc MovieCard) Render(b *element.Builder) (x any) {
	c := mc.Card
	title := html.EscapeString(c.Title)

	class := "movie-card"
	if c.Featured {
		class += " featured-card"
	}
	attrs := []string{
		"class", class,
		"data-index", itoa(c.Index),
		"style", "animation: fadeInUp 0.6s ease forwards " + c.DelayCSS() + "; opacity: 0",
	}
	if c.Clickable {
		attrs = append(attrs,
			"hx-post", "/ui/card",
			"hx-vals", hxVals(map[string]string{"title": c.Title}),
			"hx-target", "#results-area",
			"hx-swap", "outerHTML",
			"hx-indicator", "#loading",
			"hx-sync", "#search-form:replace",
		)
	}

	b.Div(attrs...).R(
		b.Img("class", "movie-poster",
			"src", html.EscapeString(c.PosterURL),
			"alt", title,
			"loading", "lazy",
			"onerror", "this.onerror=null; this.src='"+models.FallbackPosterURL+"';"),
		b.DivClass("movie-overlay").R(
			b.H3Class("movie-title").T(title),
			b.DivClass("movie-meta").R(
				b.SpanClass("view-btn").R(
					b.Span("class", "fas fa-plus").R(),
					b.T(" "+html.EscapeString(c.Label)),
				),
			),
		),
	)
	return
}
