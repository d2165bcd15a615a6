package models

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTrendingPostersResolve(t *testing.T) {
	fb := newFakeBackend()
	fb.recs["Inception"] = &RecommendResponse{
		SearchedMovie: &Movie{Title: "Inception", PosterURL: "https://img.example/inception.jpg"},
	}
	fb.recs["Heat"] = &RecommendResponse{
		SearchedMovie: &Movie{Title: "Heat", PosterURL: "https://img.example/placeholder.png"},
	}

	p := NewTrendingPosters()
	n := p.Resolve(context.Background(), fb, []string{"Inception", "Heat", "Nope"}, time.Second)
	if n != 2 {
		t.Errorf("expected 2 resolved posters, got %d", n)
	}

	tests := []struct {
		title string
		want  string
	}{
		{"Inception", "https://img.example/inception.jpg"},
		{"Heat", FallbackPosterURL},
		{"Nope", FallbackPosterURL},
	}
	for _, tt := range tests {
		if got := p.Poster(tt.title); got != tt.want {
			t.Errorf("Poster(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}

	// Known titles are not looked up again.
	p.Resolve(context.Background(), fb, []string{"Inception"}, time.Second)
	count := 0
	for _, c := range fb.calls {
		if c == "recommend:Inception" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected one lookup for Inception, got %d", count)
	}
}

func TestTrendingPostersBackendDown(t *testing.T) {
	fb := newFakeBackend()
	fb.err = errors.New("connection refused")

	p := NewTrendingPosters()
	if n := p.Resolve(context.Background(), fb, []string{"Inception"}, time.Second); n != 0 {
		t.Errorf("expected nothing resolved, got %d", n)
	}
	tiles := p.Tiles([]string{"Inception"})
	if len(tiles) != 1 || tiles[0].PosterURL != FallbackPosterURL {
		t.Errorf("unexpected tiles %+v", tiles)
	}
}

func TestTrendingPostersNil(t *testing.T) {
	var p *TrendingPosters
	if p.Poster("Inception") != FallbackPosterURL {
		t.Error("nil poster set should answer the fallback")
	}
}
