package models

import (
	"fmt"
	"strings"
	"testing"
)

func TestFindMatches(t *testing.T) {
	cat := LoadCatalog([]byte(`["Inception", "The Matrix", "inception 2"]`))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"case insensitive keeps order", "incep", []string{"Inception", "inception 2"}},
		{"upper case query", "MATRIX", []string{"The Matrix"}},
		{"inner substring", "e m", []string{"The Matrix"}},
		{"no match", "godfather", []string{}},
		{"empty query", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cat.FindMatches(tt.query)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("FindMatches(%q) = %v, want %v", tt.query, got, tt.want)
			}
			if got == nil {
				t.Error("expected a non-nil slice")
			}
		})
	}
}

func TestFindMatchesCapsAtFifty(t *testing.T) {
	titles := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		titles = append(titles, fmt.Sprintf("%q", fmt.Sprintf("Movie %03d", i)))
	}
	cat := LoadCatalog([]byte("[" + strings.Join(titles, ",") + "]"))

	got := cat.FindMatches("movie")
	if len(got) != DefaultMaxMatches {
		t.Fatalf("expected %d matches, got %d", DefaultMaxMatches, len(got))
	}
	if got[0] != "Movie 000" || got[49] != "Movie 049" {
		t.Errorf("expected the first fifty titles in order, got %q..%q", got[0], got[49])
	}

	if n := len(cat.Search("movie", 5)); n != 5 {
		t.Errorf("expected custom limit of 5, got %d", n)
	}
}

func TestLoadCatalogMalformed(t *testing.T) {
	cat := LoadCatalog([]byte(`{not json`))
	if cat.Len() != 0 {
		t.Errorf("expected empty catalog, got %d titles", cat.Len())
	}
	if got := cat.FindMatches("a"); len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
}

func TestEmbeddedCatalog(t *testing.T) {
	cat := LoadEmbeddedCatalog()
	if cat.Len() == 0 {
		t.Fatal("embedded catalog is empty")
	}

	found := false
	for _, m := range cat.FindMatches("shawshank") {
		if m == "The Shawshank Redemption" {
			found = true
		}
	}
	if !found {
		t.Error("expected The Shawshank Redemption in embedded titles")
	}

	trending := cat.Trending()
	if len(trending) == 0 || len(trending) > len(trendingPositions) {
		t.Errorf("unexpected trending count %d", len(trending))
	}
}

func TestLoadCatalogFileFallsBack(t *testing.T) {
	cat := LoadCatalogFile("/nonexistent/titles.json")
	if cat.Len() != LoadEmbeddedCatalog().Len() {
		t.Error("expected unreadable file to fall back to embedded titles")
	}
}

func TestGenresSorted(t *testing.T) {
	genres := LoadCatalog([]byte(`[]`)).Genres()
	want := "Action,Adventure,Animation,Comedy,Drama,Horror,Sci-Fi,Thriller"
	if strings.Join(genres, ",") != want {
		t.Errorf("got %v, want %s", genres, want)
	}
}
