package landing

import (
	"context"
	"strings"
	"testing"

	"cinematch/models"

	"github.com/rohanthewiz/element"
)

type stubBackend struct {
	rec   *models.RecommendResponse
	genre *models.GenreResponse
}

func (s stubBackend) Recommend(ctx context.Context, movie string) (*models.RecommendResponse, error) {
	return s.rec, nil
}

func (s stubBackend) MoviesByGenre(ctx context.Context, genre string) (*models.GenreResponse, error) {
	return s.genre, nil
}

func newTestController(t *testing.T, titles string, backend models.MovieBackend) *models.SearchController {
	t.Helper()
	return models.NewSearchController(models.LoadCatalog([]byte(titles)), backend, models.ControllerOptions{})
}

func TestDropdownHint(t *testing.T) {
	sc := newTestController(t, `["Inception"]`, stubBackend{})
	sc.Focus()
	html := RenderDropdown(sc)

	checks := []string{
		`id="movie-dropdown"`,
		"dropdown show",
		"Suggested Movies",
		"Type to find any of the 4,800+ movies...",
		"hint-item",
		`data-type="genre"`,
		`data-value="Comedy"`,
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("dropdown missing %q", want)
		}
	}
	if strings.Contains(html, `data-type="movie"`) {
		t.Error("hint dropdown should list no movies")
	}
}

func TestDropdownMatches(t *testing.T) {
	sc := newTestController(t, `["Inception", "The Matrix", "inception 2"]`, stubBackend{})
	sc.Input("incep")
	html := RenderDropdown(sc)

	if !strings.Contains(html, "Matches (2)") {
		t.Error("expected match count title")
	}
	if strings.Count(html, `data-type="movie"`) != 2 {
		t.Errorf("expected two movie items in %s", html)
	}
	if strings.Index(html, `data-value="Inception"`) > strings.Index(html, `data-value="inception 2"`) {
		t.Error("expected source order")
	}
	if strings.Contains(html, "4,800+") {
		t.Error("hint should be hidden when there are matches")
	}
}

func TestDropdownEscapesTitles(t *testing.T) {
	sc := newTestController(t, `["<script>alert(1)</script> & \"Friends\""]`, stubBackend{})
	sc.Input("script")
	html := RenderDropdown(sc)

	if strings.Contains(html, "<script>alert(1)") {
		t.Fatal("title rendered unescaped")
	}
	if !strings.Contains(html, "&lt;script&gt;alert(1)&lt;/script&gt; &amp; &#34;Friends&#34;") {
		t.Errorf("expected escaped title in %s", html)
	}
}

func TestResultsAfterRecommendation(t *testing.T) {
	backend := stubBackend{rec: &models.RecommendResponse{
		SearchedMovie: &models.Movie{Title: "Inception", PosterURL: "https://img.example/inception.jpg"},
		Recommendations: []models.Movie{
			{Title: "Interstellar", PosterURL: ""},
			{Title: "Tom & Jerry", PosterURL: "https://img.example/placeholder.png"},
		},
	}}
	sc := newTestController(t, `["Inception"]`, backend)
	sc.SelectMovie(context.Background(), "Inception")
	html := RenderResults(sc, true)

	checks := []string{
		`id="results-area"`,
		"Similar Movies You&#39;ll Love",
		"Currently Selected",
		"Details",
		models.FallbackPosterURL,
		"https://img.example/inception.jpg",
		"Tom &amp; Jerry",
		"forwards 0s",
		"forwards 0.1s",
		"forwards 0.2s",
		`hx-post="/ui/card"`,
		`hx-swap-oob="true"`,
		`id="movie-search"`,
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("results missing %q", want)
		}
	}

	if strings.Count(html, `hx-post="/ui/card"`) != 2 {
		t.Error("only the two recommendation cards should be clickable")
	}
	if strings.Contains(html, `id="dashboard-init"`) {
		t.Error("dashboard should be hidden after a search")
	}
}

func TestResultsNoSimilar(t *testing.T) {
	backend := stubBackend{rec: &models.RecommendResponse{
		SearchedMovie:   &models.Movie{Title: "Solaris"},
		Recommendations: []models.Movie{},
	}}
	sc := newTestController(t, `[]`, backend)
	sc.SelectMovie(context.Background(), "Solaris")
	html := RenderResults(sc, false)

	if !strings.Contains(html, `<div class="no-results">No similar movies found.</div>`) {
		t.Errorf("expected no results placeholder in %s", html)
	}
	if strings.Contains(html, `hx-post="/ui/card"`) {
		t.Error("expected no recommendation cards")
	}
	if strings.Contains(html, `id="movie-search"`) {
		t.Error("input should not be swapped when withInput is false")
	}
}

func TestResultsGenreHidesFeatured(t *testing.T) {
	backend := stubBackend{genre: &models.GenreResponse{Movies: []models.Movie{{Title: "Superbad"}}}}
	sc := newTestController(t, `[]`, backend)
	sc.LoadGenreMovies(context.Background(), "Comedy")
	html := RenderResults(sc, true)

	if !strings.Contains(html, `class="featured-section" style="display: none"`) {
		t.Error("expected featured section hidden")
	}
	if !strings.Contains(html, "Comedy Movies") {
		t.Error("expected genre heading")
	}
	if !strings.Contains(html, `placeholder="Search in Comedy..."`) {
		t.Error("expected genre placeholder on the swapped input")
	}
}

func TestFullPage(t *testing.T) {
	sc := newTestController(t, `["A","B","C","D","E","F","G","H","I","J","K","L","M","N","O","P"]`, stubBackend{})
	html := NewPage(sc).Render()

	checks := []string{
		"<html",
		"htmx.org",
		"/static/js/app.js",
		`id="search-form"`,
		`class="input-wrapper"`,
		`id="movie-select"`,
		`id="dashboard-init"`,
		"selectMovie(this.dataset.title)",
		`id="recommendations" style="display: none"`,
		"CineMatch",
	}
	for _, want := range checks {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestDashboardPosters(t *testing.T) {
	tiles := []models.TrendingTile{
		{Title: "Heat", PosterURL: "https://img.example/heat.jpg"},
		{Title: "Up", PosterURL: models.FallbackPosterURL},
	}
	b := element.NewBuilder()
	Dashboard{Tiles: tiles}.Render(b)
	html := b.String()

	for _, want := range []string{`src="https://img.example/heat.jpg"`, `data-title="Heat"`, `data-title="Up"`, models.FallbackPosterURL} {
		if !strings.Contains(html, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}

	b = element.NewBuilder()
	Dashboard{}.Render(b)
	if strings.Contains(b.String(), "dashboard-init") {
		t.Error("expected no dashboard without tiles")
	}
}
