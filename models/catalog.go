package models

import (
	_ "embed"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// DefaultMaxMatches caps the number of dropdown matches for a query.
const DefaultMaxMatches = 50

// PopularGenres are the genres offered in the dropdown below the matches.
var PopularGenres = []string{"Action", "Comedy", "Drama", "Horror", "Sci-Fi", "Animation", "Thriller", "Adventure"}

// trendingPositions picks the titles shown on the landing dashboard.
// Positions past the end of the list are skipped.
var trendingPositions = []int{30, 15, 82, 120, 250, 480, 10, 5}

//go:embed data/movie_titles.json
var embeddedTitles []byte

// Catalog is the immutable list of known movie titles.
// It is safe for concurrent use once loaded.
type Catalog struct {
	titles []string
	lower  []string
	genres []string
}

// LoadCatalog decodes a JSON array of titles.
// A malformed payload is logged and yields an empty catalog so the
// search box keeps working with no suggestions.
func LoadCatalog(data []byte) *Catalog {
	var titles []string
	if err := json.Unmarshal(data, &titles); err != nil {
		logger.LogErr(serr.Wrap(err, "failed to parse movie titles"), "continuing with an empty catalog")
		titles = nil
	}
	return newCatalog(titles)
}

// LoadEmbeddedCatalog returns the catalog compiled into the binary.
func LoadEmbeddedCatalog() *Catalog {
	return LoadCatalog(embeddedTitles)
}

// LoadCatalogFile reads titles from path, falling back to the embedded
// list when the path is empty or unreadable.
func LoadCatalogFile(path string) *Catalog {
	if path == "" {
		return LoadEmbeddedCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to read titles file"), "using embedded titles", "path", path)
		return LoadEmbeddedCatalog()
	}
	return LoadCatalog(data)
}

func newCatalog(titles []string) *Catalog {
	c := &Catalog{
		titles: titles,
		lower:  make([]string, len(titles)),
	}
	for i, t := range titles {
		c.lower[i] = strings.ToLower(t)
	}

	c.genres = append([]string(nil), PopularGenres...)
	sort.Strings(c.genres)
	return c
}

// Len reports the number of titles.
func (c *Catalog) Len() int { return len(c.titles) }

// Titles returns a copy of all titles in source order.
func (c *Catalog) Titles() []string {
	return append([]string(nil), c.titles...)
}

// Genres returns the genre list in display order.
func (c *Catalog) Genres() []string {
	return append([]string(nil), c.genres...)
}

// Trending returns the handful of titles featured before any search.
func (c *Catalog) Trending() []string {
	var out []string
	for _, pos := range trendingPositions {
		if pos < len(c.titles) {
			out = append(out, c.titles[pos])
		}
	}
	return out
}

// FindMatches returns up to DefaultMaxMatches titles containing query.
func (c *Catalog) FindMatches(query string) []string {
	return c.Search(query, DefaultMaxMatches)
}

// Search returns the titles containing query, ignoring case, in source
// order and truncated to limit. An empty query matches nothing.
func (c *Catalog) Search(query string, limit int) []string {
	if query == "" || limit <= 0 {
		return []string{}
	}
	q := strings.ToLower(query)

	matches := make([]string, 0, min(limit, 16))
	for i, lt := range c.lower {
		if strings.Contains(lt, q) {
			matches = append(matches, c.titles[i])
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}
