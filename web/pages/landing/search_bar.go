package landing

import (
	"html"

	"cinematch/models"

	"github.com/rohanthewiz/element"
)

// SearchBar is the movie search form with its dropdown.
//
// The input posts every change to /ui/search, which answers with a fresh
// dropdown. Enter submits the form to /ui/recommend. Everything inside
// .input-wrapper counts as "inside" for the click-outside dismissal.
type SearchBar struct {
	State  models.ViewState
	Genres []string
}

// Render implements element.Component.
func (s SearchBar) Render(b *element.Builder) (x any) {
	b.Div("class", "search-section", "id", "search-section").R(
		b.Form("id", "search-form", "autocomplete", "off",
			"hx-post", "/ui/recommend",
			"hx-target", "#results-area",
			"hx-swap", "outerHTML",
			"hx-indicator", "#loading",
			"hx-sync", "this:replace").R(
			b.Div("class", "input-wrapper",
				"hx-get", "/ui/focus",
				"hx-trigger", "focusin",
				"hx-target", "#movie-dropdown",
				"hx-swap", "outerHTML").R(
				b.SpanClass("fas fa-search search-icon").R(),
				element.RenderComponents(b, SearchInput{State: s.State}),
				element.RenderComponents(b, Dropdown{State: s.State.Dropdown, Genres: s.Genres}),
			),
		),
	)
	return
}

// SearchInput is the text box plus the hidden selection field. OOB renders
// both for an out-of-band swap, used when a click elsewhere changes them.
type SearchInput struct {
	State models.ViewState
	OOB   bool
}

// Render implements element.Component.
func (si SearchInput) Render(b *element.Builder) (x any) {
	attrs := []string{
		"type", "text",
		"id", "movie-search",
		"name", "q",
		"class", "search-input",
		"placeholder", html.EscapeString(si.State.Placeholder),
		"value", html.EscapeString(si.State.Input),
		"autocomplete", "off",
		"hx-get", "/ui/search",
		"hx-trigger", "input changed delay:150ms",
		"hx-target", "#movie-dropdown",
		"hx-swap", "outerHTML",
		"hx-sync", "this:replace",
	}
	hidden := []string{
		"type", "hidden",
		"id", "movie-select",
		"name", "selected",
		"value", html.EscapeString(si.State.Selected),
	}
	if si.OOB {
		attrs = append(attrs, "hx-swap-oob", "true")
		hidden = append(hidden, "hx-swap-oob", "true")
	}
	b.Input(attrs...)
	b.Input(hidden...)
	return
}
