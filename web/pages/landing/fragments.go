package landing

import (
	"cinematch/models"

	"github.com/rohanthewiz/element"
)

// RenderDropdown renders just the dropdown, for /ui/search and friends.
func RenderDropdown(sc *models.SearchController) string {
	b := element.NewBuilder()
	Dropdown{State: sc.State().Dropdown, Genres: sc.Catalog().Genres()}.Render(b)
	return b.String()
}

// RenderResults renders the results region after a fetch. The dropdown
// is refreshed out of band; so is the search input when withInput is set.
func RenderResults(sc *models.SearchController, withInput bool) string {
	st := sc.State()
	cat := sc.Catalog()

	b := element.NewBuilder()
	element.RenderComponents(b,
		Results{State: st, Trending: sc.Trending()},
		Dropdown{State: st.Dropdown, Genres: cat.Genres(), OOB: true},
	)
	if withInput {
		element.RenderComponents(b, SearchInput{State: st, OOB: true})
	}
	return b.String()
}
