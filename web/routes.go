package web

import (
	"cinematch/web/api"

	"github.com/rohanthewiz/rweb"
)

// setupRoutes configures all application routes
func setupRoutes(s *rweb.Server) {
	// Page routes - HTML responses
	s.Get("/", HomePage)
	s.Get("/health", api.Health)

	// HTMX fragments - each answers with the region it changed
	s.Get("/ui/focus", UIFocus)               // Dropdown on focus
	s.Get("/ui/search", UISearch)             // Dropdown for the typed text
	s.Post("/ui/dismiss", UIDismiss)          // Click outside the search box
	s.Post("/ui/recommend", UIRecommend)      // Enter in the search box
	s.Post("/ui/select", UISelect)            // Dropdown entry (movie or genre)
	s.Post("/ui/card", UICard)                // Recommendation card
	s.Post("/ui/select-movie", UISelectMovie) // Global selectMovie(title)

	// API v1 routes - JSON responses
	s.Get("/api/v1/matches", api.Matches) // Dropdown contents for ?q=
	s.Get("/api/v1/genres", api.Genres)   // Genre list
	s.Get("/api/v1/state", api.State)     // Session view state
	s.Post("/api/v1/select", api.Select)  // Recommendations for a title
	s.Post("/api/v1/genre", api.Genre)    // Movies of a genre
}
