package models

import "strings"

// FallbackPosterURL is shown whenever a movie has no usable poster.
const FallbackPosterURL = "https://images.unsplash.com/photo-1594909122845-11baa439b7bf?q=80&w=300&h=450&auto=format&fit=crop"

// Movie is the record the recommendation backend returns for a title.
type Movie struct {
	Title     string `json:"title" msgpack:"title"`
	PosterURL string `json:"poster_url" msgpack:"poster_url"`
}

// RecommendResponse is the body of GET /recommend.
// SearchedMovie is nil when the backend did not recognize the title,
// in which case Error usually carries the reason.
type RecommendResponse struct {
	SearchedMovie   *Movie  `json:"searched_movie,omitempty" msgpack:"searched_movie"`
	Recommendations []Movie `json:"recommendations,omitempty" msgpack:"recommendations"`
	Error           string  `json:"error,omitempty" msgpack:"error"`
}

// GenreResponse is the body of GET /movies-by-genre.
// A nil Movies slice means the field was absent.
type GenreResponse struct {
	Movies []Movie `json:"movies,omitempty" msgpack:"movies"`
	Error  string  `json:"error,omitempty" msgpack:"error"`
}

// ResolvePoster returns the poster to display for a raw poster URL.
// Empty URLs and the backend's placeholder images map to FallbackPosterURL.
func ResolvePoster(posterURL string) string {
	if posterURL == "" || strings.Contains(posterURL, "placeholder") {
		return FallbackPosterURL
	}
	return posterURL
}
