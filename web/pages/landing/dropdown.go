package landing

import (
	"html"

	"cinematch/models"

	"github.com/goccy/go-json"
	"github.com/rohanthewiz/element"
)

// Dropdown lists the title matches (or the hint) followed by the genres.
// Clicking an entry posts its type and value to /ui/select.
type Dropdown struct {
	State  models.DropdownState
	Genres []string
	OOB    bool
}

// Render implements element.Component.
func (d Dropdown) Render(b *element.Builder) (x any) {
	class := "dropdown"
	if d.State.Visible {
		class += " show"
	}
	attrs := []string{"class", class, "id", "movie-dropdown"}
	if d.OOB {
		attrs = append(attrs, "hx-swap-oob", "true")
	}

	b.Div(attrs...).R(
		b.DivClass("dropdown-section").R(
			b.Div("class", "dropdown-title", "id", "dropdown-results-title").T(html.EscapeString(d.State.Title)),
			b.Div("class", "dropdown-list", "id", "movie-list-container").R(
				func() (x any) {
					if len(d.State.Matches) == 0 {
						b.DivClass("dropdown-item hint-item").T(html.EscapeString(d.State.Hint))
						return
					}
					for _, title := range d.State.Matches {
						dropdownItem(b, models.ItemTypeMovie, title, "fas fa-play-circle")
					}
					return
				}(),
			),
		),
		b.Wrap(func() {
			if len(d.Genres) == 0 {
				return
			}
			b.DivClass("dropdown-section genres-section").R(
				b.DivClass("dropdown-title").T("Browse by Genre"),
				b.DivClass("dropdown-list genre-list").R(
					element.ForEach(d.Genres, func(genre string) {
						dropdownItem(b, models.ItemTypeGenre, genre, "fas fa-tag")
					}),
				),
			)
		}),
	)
	return
}

func dropdownItem(b *element.Builder, itemType, value, icon string) {
	b.Div("class", "dropdown-item "+itemType+"-item",
		"data-type", itemType,
		"data-value", html.EscapeString(value),
		"hx-post", "/ui/select",
		"hx-vals", hxVals(map[string]string{"type": itemType, "value": value}),
		"hx-target", "#results-area",
		"hx-swap", "outerHTML",
		"hx-indicator", "#loading",
		"hx-sync", "#search-form:replace").R(
		b.Span("class", icon).R(),
		b.T(" "+html.EscapeString(value)),
	)
}

// hxVals encodes values as an attribute-safe hx-vals JSON object.
func hxVals(values map[string]string) string {
	data, err := json.Marshal(values)
	if err != nil {
		return "{}"
	}
	return html.EscapeString(string(data))
}
