package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cinematch/models"

	"github.com/goccy/go-json"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// ControllerKey is the request context key holding the session's
// *models.SearchController. The session middleware sets it.
const ControllerKey = "search_controller"

// LookupTimeoutKey optionally holds a time.Duration bounding backend
// lookups made while serving the request.
const LookupTimeoutKey = "lookup_timeout"

const defaultLookupTimeout = 30 * time.Second

// LookupContext returns the context for backend calls made on behalf of ctx.
func LookupContext(ctx rweb.Context) (context.Context, context.CancelFunc) {
	timeout, ok := ctx.Get(LookupTimeoutKey).(time.Duration)
	if !ok || timeout <= 0 {
		timeout = defaultLookupTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// ControllerFrom returns the session's controller, or nil outside a session.
func ControllerFrom(ctx rweb.Context) *models.SearchController {
	sc, _ := ctx.Get(ControllerKey).(*models.SearchController)
	return sc
}

// MatchesOutput is the body of GET /api/v1/matches.
type MatchesOutput struct {
	Query   string   `json:"query"`
	Title   string   `json:"title"`
	Matches []string `json:"matches"`
	Hint    string   `json:"hint,omitempty"`
}

// SelectInput is the body of POST /api/v1/select.
type SelectInput struct {
	Title string `json:"title"`
}

// GenreInput is the body of POST /api/v1/genre.
type GenreInput struct {
	Genre string `json:"genre"`
}

// ActionOutput reports the result of a lookup started through the API.
type ActionOutput struct {
	Alert string           `json:"alert,omitempty"`
	State models.ViewState `json:"state"`
}

// Health handles GET /health
func Health(ctx rweb.Context) error {
	return writeSuccess(ctx, http.StatusOK, map[string]string{"status": "ok"})
}

// Matches handles GET /api/v1/matches?q=
// Returns the dropdown contents for q without touching the session state.
func Matches(ctx rweb.Context) error {
	sc := ControllerFrom(ctx)
	if sc == nil {
		return writeError(ctx, http.StatusInternalServerError, "no session")
	}

	q := strings.TrimSpace(ctx.Request().QueryParam("q"))
	out := MatchesOutput{Query: q, Title: models.SuggestedTitle, Matches: []string{}}
	if q != "" {
		out.Matches = sc.FindMatches(q)
	}
	if len(out.Matches) == 0 {
		out.Hint = models.SearchHint
	} else {
		out.Title = "Matches (" + strconv.Itoa(len(out.Matches)) + ")"
	}
	return writeSuccess(ctx, http.StatusOK, out)
}

// Genres handles GET /api/v1/genres
func Genres(ctx rweb.Context) error {
	sc := ControllerFrom(ctx)
	if sc == nil {
		return writeError(ctx, http.StatusInternalServerError, "no session")
	}
	return writeSuccess(ctx, http.StatusOK, sc.Catalog().Genres())
}

// State handles GET /api/v1/state
func State(ctx rweb.Context) error {
	sc := ControllerFrom(ctx)
	if sc == nil {
		return writeError(ctx, http.StatusInternalServerError, "no session")
	}
	return writeSuccess(ctx, http.StatusOK, sc.State())
}

// Select handles POST /api/v1/select
// Runs a recommendation lookup for the title, as a dropdown pick would.
func Select(ctx rweb.Context) error {
	sc := ControllerFrom(ctx)
	if sc == nil {
		return writeError(ctx, http.StatusInternalServerError, "no session")
	}

	var input SelectInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(input.Title) == "" {
		return writeError(ctx, http.StatusBadRequest, "title is required")
	}

	lctx, cancel := LookupContext(ctx)
	defer cancel()
	out := sc.ClickDropdownItem(lctx, models.ItemTypeMovie, input.Title)
	return writeAction(ctx, sc, out)
}

// Genre handles POST /api/v1/genre
func Genre(ctx rweb.Context) error {
	sc := ControllerFrom(ctx)
	if sc == nil {
		return writeError(ctx, http.StatusInternalServerError, "no session")
	}

	var input GenreInput
	if err := json.Unmarshal(ctx.Request().Body(), &input); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to decode request body"), "invalid JSON")
		return writeError(ctx, http.StatusBadRequest, "invalid JSON body")
	}
	if input.Genre == "" {
		return writeError(ctx, http.StatusBadRequest, "genre is required")
	}

	lctx, cancel := LookupContext(ctx)
	defer cancel()
	out := sc.LoadGenreMovies(lctx, input.Genre)
	return writeAction(ctx, sc, out)
}

func writeAction(ctx rweb.Context, sc *models.SearchController, out models.Outcome) error {
	if out.Stale {
		return writeError(ctx, http.StatusConflict, "superseded by a newer request")
	}
	return writeSuccess(ctx, http.StatusOK, ActionOutput{Alert: out.Alert, State: sc.State()})
}
