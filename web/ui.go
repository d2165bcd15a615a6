package web

import (
	"net/http"

	"cinematch/models"
	"cinematch/web/api"
	"cinematch/web/pages/landing"

	"github.com/goccy/go-json"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// Client-side events raised through HX-Trigger-After-Swap.
const (
	alertEvent  = "cinematch:alert"
	scrollEvent = "cinematch:scroll"
)

func controllerOrError(c rweb.Context) (*models.SearchController, bool) {
	sc := api.ControllerFrom(c)
	if sc == nil {
		c.SetStatus(http.StatusInternalServerError)
		_ = c.WriteHTML("session unavailable")
		return nil, false
	}
	return sc, true
}

// HomePage handles GET /
func HomePage(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	c.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.WriteHTML(landing.NewPage(sc).Render())
}

// UIFocus handles GET /ui/focus: the search box gained focus.
func UIFocus(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	sc.Focus()
	return c.WriteHTML(landing.RenderDropdown(sc))
}

// UISearch handles GET /ui/search?q=: the search text changed.
func UISearch(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	sc.Input(c.Request().QueryParam("q"))
	return c.WriteHTML(landing.RenderDropdown(sc))
}

// UIDismiss handles POST /ui/dismiss: a click landed outside the search box.
func UIDismiss(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	sc.Dismiss()
	return c.WriteHTML(landing.RenderDropdown(sc))
}

// UIRecommend handles POST /ui/recommend: Enter in the search box.
// The submitted text wins over the last debounced keystroke.
func UIRecommend(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	sc.Input(c.Request().FormValue("q"))

	ctx, cancel := api.LookupContext(c)
	defer cancel()
	return writeOutcome(c, sc, sc.KeyEnter(ctx), false)
}

// UISelect handles POST /ui/select: a dropdown entry was clicked.
func UISelect(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	itemType := c.Request().FormValue("type")
	value := c.Request().FormValue("value")

	ctx, cancel := api.LookupContext(c)
	defer cancel()
	return writeOutcome(c, sc, sc.ClickDropdownItem(ctx, itemType, value), true)
}

// UICard handles POST /ui/card: a recommendation card was clicked.
func UICard(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	title := c.Request().FormValue("title")
	if title == "" {
		c.SetStatus(http.StatusBadRequest)
		return c.WriteHTML("title is required")
	}

	ctx, cancel := api.LookupContext(c)
	defer cancel()
	return writeOutcome(c, sc, sc.ClickCard(ctx, title), true)
}

// UISelectMovie handles POST /ui/select-movie, the target of the page's
// global selectMovie(title).
func UISelectMovie(c rweb.Context) error {
	sc, ok := controllerOrError(c)
	if !ok {
		return nil
	}
	title := c.Request().FormValue("title")
	if title == "" {
		c.SetStatus(http.StatusBadRequest)
		return c.WriteHTML("title is required")
	}

	ctx, cancel := api.LookupContext(c)
	defer cancel()
	return writeOutcome(c, sc, sc.SelectMovie(ctx, title), true)
}

// writeOutcome answers a fetch. A superseded fetch gets 204 so htmx
// leaves the page alone. Plain form posts get the whole page back.
func writeOutcome(c rweb.Context, sc *models.SearchController, out models.Outcome, withInput bool) error {
	if out.Stale {
		c.SetStatus(http.StatusNoContent)
		return nil
	}

	if !isHTMX(c) {
		c.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
		return c.WriteHTML(landing.NewPage(sc).Render())
	}

	triggers := map[string]any{}
	if out.Alert != "" {
		triggers[alertEvent] = map[string]string{"message": out.Alert}
	}
	if out.Scroll {
		triggers[scrollEvent] = true
	}
	if len(triggers) > 0 {
		data, err := json.Marshal(triggers)
		if err != nil {
			logger.LogErr(serr.Wrap(err, "failed to encode HX triggers"))
		} else {
			c.Response().SetHeader("HX-Trigger-After-Swap", string(data))
		}
	}

	return c.WriteHTML(landing.RenderResults(sc, withInput))
}
