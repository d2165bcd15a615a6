package models

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// User-facing strings.
const (
	SearchHint           = "Type to find any of the 4,800+ movies..."
	SuggestedTitle       = "Suggested Movies"
	DefaultPlaceholder   = "Search for a movie..."
	RecommendHeading     = "Similar Movies You'll Love"
	NoSimilarMessage     = "No similar movies found."
	NotFoundAlert        = "Sorry, we couldn't find that movie in our database. Try selecting from the dropdown!"
	GenreFailureAlertFmt = "Sorry, we couldn't load %s movies right now. Please try again."

	DefaultMaxRecommendations = 10
)

// Dropdown item types.
const (
	ItemTypeMovie = "movie"
	ItemTypeGenre = "genre"
)

// DropdownState is what the search dropdown shows.
// Hint is set only when Matches is empty.
type DropdownState struct {
	Visible bool     `json:"visible"`
	Title   string   `json:"title"`
	Matches []string `json:"matches"`
	Hint    string   `json:"hint,omitempty"`
}

// ResultsState is the results section below the search box.
type ResultsState struct {
	Visible         bool   `json:"visible"`
	Heading         string `json:"heading"`
	FeaturedVisible bool   `json:"featured_visible"`
	Featured        *Card  `json:"featured,omitempty"`
	Cards           []Card `json:"cards"`
	EmptyMessage    string `json:"empty_message,omitempty"`
}

// ViewState is a snapshot of everything a front end renders.
type ViewState struct {
	Input            string        `json:"input"`
	Selected         string        `json:"selected"`
	Placeholder      string        `json:"placeholder"`
	Dropdown         DropdownState `json:"dropdown"`
	DashboardVisible bool          `json:"dashboard_visible"`
	Loading          bool          `json:"loading"`
	Results          ResultsState  `json:"results"`
	Alert            string        `json:"alert,omitempty"`
}

// Outcome reports the side effects of a fetch so a front end can
// surface them once (alert box, scroll to results).
type Outcome struct {
	Seq    uint64
	Stale  bool   // a newer request superseded this one; nothing changed
	Alert  string // message to show the user, if any
	Scroll bool   // results were shown and should be scrolled into view
}

// ControllerOptions tune a SearchController.
type ControllerOptions struct {
	MaxMatches         int
	MaxRecommendations int
	// GenreFailureAlert shows an alert when a genre listing fails.
	// When false such failures are only logged.
	GenreFailureAlert bool
	// Posters supplies trending dashboard posters; nil shows the fallback.
	Posters *TrendingPosters
}

// SearchController owns the search box, the dropdown and the results of
// one user. Every backend call is tagged with a sequence number; only the
// response to the most recently issued call may change the state.
type SearchController struct {
	catalog *Catalog
	backend MovieBackend
	opts    ControllerOptions

	mu    sync.Mutex
	state ViewState
	seq   uint64
}

// NewSearchController creates a controller over catalog and backend.
func NewSearchController(catalog *Catalog, backend MovieBackend, opts ControllerOptions) *SearchController {
	if opts.MaxMatches <= 0 || opts.MaxMatches > DefaultMaxMatches {
		opts.MaxMatches = DefaultMaxMatches
	}
	if opts.MaxRecommendations <= 0 {
		opts.MaxRecommendations = DefaultMaxRecommendations
	}

	sc := &SearchController{
		catalog: catalog,
		backend: backend,
		opts:    opts,
	}
	sc.state = ViewState{
		Placeholder:      DefaultPlaceholder,
		DashboardVisible: true,
		Results: ResultsState{
			Heading:         RecommendHeading,
			FeaturedVisible: true,
		},
	}
	sc.renderSearchResults(nil)
	return sc
}

// Catalog returns the title list the controller searches.
func (sc *SearchController) Catalog() *Catalog { return sc.catalog }

// Trending returns the dashboard tiles.
func (sc *SearchController) Trending() []TrendingTile {
	return sc.opts.Posters.Tiles(sc.catalog.Trending())
}

// State returns a copy of the current view state.
func (sc *SearchController) State() ViewState {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.snapshot()
}

func (sc *SearchController) snapshot() ViewState {
	st := sc.state
	st.Dropdown.Matches = append([]string(nil), sc.state.Dropdown.Matches...)
	st.Results.Cards = append([]Card(nil), sc.state.Results.Cards...)
	if sc.state.Results.Featured != nil {
		f := *sc.state.Results.Featured
		st.Results.Featured = &f
	}
	return st
}

// Focus opens the dropdown, showing the hint when the box is empty.
func (sc *SearchController) Focus() {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.state.Dropdown.Visible = true
	if strings.TrimSpace(sc.state.Input) == "" {
		sc.renderSearchResults(nil)
	}
}

// Input records typed text. Typing drops any dropdown selection so a
// stale pick is never submitted.
func (sc *SearchController) Input(text string) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	sc.state.Input = text
	sc.state.Selected = ""
	sc.state.Dropdown.Visible = true

	if q := strings.TrimSpace(text); q != "" {
		sc.renderSearchResults(sc.catalog.Search(q, sc.opts.MaxMatches))
	} else {
		sc.renderSearchResults(nil)
	}
}

// Dismiss closes the dropdown after a click outside the search box.
func (sc *SearchController) Dismiss() {
	sc.mu.Lock()
	sc.state.Dropdown.Visible = false
	sc.mu.Unlock()
}

// DismissAlert clears the pending alert.
func (sc *SearchController) DismissAlert() {
	sc.mu.Lock()
	sc.state.Alert = ""
	sc.mu.Unlock()
}

// FindMatches filters the catalog with the controller's match limit.
func (sc *SearchController) FindMatches(query string) []string {
	return sc.catalog.Search(strings.TrimSpace(query), sc.opts.MaxMatches)
}

// RenderSearchResults replaces the dropdown contents with matches.
func (sc *SearchController) RenderSearchResults(matches []string) {
	sc.mu.Lock()
	sc.renderSearchResults(matches)
	sc.mu.Unlock()
}

func (sc *SearchController) renderSearchResults(matches []string) {
	if len(matches) == 0 {
		sc.state.Dropdown.Title = SuggestedTitle
		sc.state.Dropdown.Matches = nil
		sc.state.Dropdown.Hint = SearchHint
		return
	}
	sc.state.Dropdown.Title = "Matches (" + strconv.Itoa(len(matches)) + ")"
	sc.state.Dropdown.Matches = append([]string(nil), matches...)
	sc.state.Dropdown.Hint = ""
}

// KeyEnter submits the typed text as the selection.
func (sc *SearchController) KeyEnter(ctx context.Context) Outcome {
	sc.mu.Lock()
	movie := strings.TrimSpace(sc.state.Input)
	if movie == "" {
		sc.mu.Unlock()
		return Outcome{}
	}
	sc.state.Selected = movie
	sc.state.Dropdown.Visible = false
	sc.mu.Unlock()

	return sc.GetRecommendations(ctx)
}

// ClickDropdownItem handles a click on a dropdown entry.
// Unknown item types are ignored.
func (sc *SearchController) ClickDropdownItem(ctx context.Context, itemType, value string) Outcome {
	switch itemType {
	case ItemTypeGenre:
		return sc.LoadGenreMovies(ctx, value)
	case ItemTypeMovie:
		title := strings.TrimSpace(value)
		sc.mu.Lock()
		sc.state.Input = title
		sc.state.Selected = title
		sc.state.Dropdown.Visible = false
		sc.mu.Unlock()
		return sc.GetRecommendations(ctx)
	default:
		logger.Debug("Ignoring dropdown item", "type", itemType, "value", value)
		return Outcome{}
	}
}

// SelectMovie fills the search box with title and fetches recommendations.
func (sc *SearchController) SelectMovie(ctx context.Context, title string) Outcome {
	sc.mu.Lock()
	sc.state.Input = title
	sc.state.Selected = title
	sc.mu.Unlock()

	return sc.GetRecommendations(ctx)
}

// ClickCard searches for the title of a clicked result card.
func (sc *SearchController) ClickCard(ctx context.Context, title string) Outcome {
	return sc.SelectMovie(ctx, title)
}

// begin clears the results for a new fetch and returns its sequence number.
// Caller holds sc.mu.
func (sc *SearchController) begin() uint64 {
	sc.seq++
	sc.state.Loading = true
	sc.state.DashboardVisible = false
	sc.state.Alert = ""
	sc.state.Results.Visible = false
	sc.state.Results.Featured = nil
	sc.state.Results.Cards = nil
	sc.state.Results.EmptyMessage = ""
	return sc.seq
}

// isStale reports whether seq has been superseded. Caller holds sc.mu.
func (sc *SearchController) isStale(seq uint64, flow string) bool {
	if seq == sc.seq {
		return false
	}
	StaleResponses.WithLabelValues(flow).Inc()
	logger.Debug("Discarding stale response", "flow", flow, "seq", seq, "latest", sc.seq)
	return true
}

// GetRecommendations looks up the selected title, or the typed text when
// nothing is selected, and shows it with its recommendations.
func (sc *SearchController) GetRecommendations(ctx context.Context) Outcome {
	sc.mu.Lock()
	movie := sc.state.Selected
	if movie == "" {
		movie = sc.state.Input
	}
	if movie == "" {
		sc.mu.Unlock()
		return Outcome{}
	}

	seq := sc.begin()
	sc.state.Results.Heading = RecommendHeading
	sc.state.Results.FeaturedVisible = true
	sc.mu.Unlock()

	resp, err := sc.backend.Recommend(ctx, movie)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.isStale(seq, endpointRecommend) {
		return Outcome{Seq: seq, Stale: true}
	}
	sc.state.Loading = false

	if err != nil || resp == nil || resp.SearchedMovie == nil {
		if err == nil {
			reason := "response has no searched_movie"
			if resp != nil && resp.Error != "" {
				reason = resp.Error
			}
			err = serr.New(reason)
		}
		logger.LogErr(serr.Wrap(err, "recommendation lookup failed"), "movie", movie)
		sc.state.Alert = NotFoundAlert
		return Outcome{Seq: seq, Alert: NotFoundAlert}
	}

	featured := NewCard(*resp.SearchedMovie, 0, true)
	sc.state.Results.Featured = &featured

	recs := resp.Recommendations
	if len(recs) > sc.opts.MaxRecommendations {
		recs = recs[:sc.opts.MaxRecommendations]
	}
	if len(recs) == 0 {
		sc.state.Results.EmptyMessage = NoSimilarMessage
	}
	cards := make([]Card, 0, len(recs))
	for i, rec := range recs {
		cards = append(cards, NewCard(rec, i+1, false))
	}
	sc.state.Results.Cards = cards
	sc.state.Results.Visible = true

	return Outcome{Seq: seq, Scroll: true}
}

// LoadGenreMovies lists movies of genre in the results grid.
func (sc *SearchController) LoadGenreMovies(ctx context.Context, genre string) Outcome {
	sc.mu.Lock()
	seq := sc.begin()
	sc.state.Dropdown.Visible = false
	sc.mu.Unlock()

	resp, err := sc.backend.MoviesByGenre(ctx, genre)

	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.isStale(seq, endpointGenre) {
		return Outcome{Seq: seq, Stale: true}
	}
	sc.state.Loading = false

	if err != nil || resp == nil || resp.Movies == nil {
		if err == nil {
			err = serr.New("genre response has no movies")
		}
		logger.LogErr(serr.Wrap(err, "genre listing failed"), "genre", genre)
		if !sc.opts.GenreFailureAlert {
			return Outcome{Seq: seq}
		}
		msg := fmt.Sprintf(GenreFailureAlertFmt, genre)
		sc.state.Alert = msg
		return Outcome{Seq: seq, Alert: msg}
	}

	cards := make([]Card, 0, len(resp.Movies))
	for i, m := range resp.Movies {
		cards = append(cards, NewCard(m, i, false))
	}
	sc.state.Results.Heading = genre + " Movies"
	sc.state.Results.FeaturedVisible = false
	sc.state.Results.Cards = cards
	sc.state.Results.Visible = true
	sc.state.Placeholder = "Search in " + genre + "..."

	return Outcome{Seq: seq, Scroll: true}
}
