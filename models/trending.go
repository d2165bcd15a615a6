package models

import (
	"context"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// TrendingTile is one entry of the trending dashboard.
type TrendingTile struct {
	Title     string `json:"title"`
	PosterURL string `json:"poster_url"`
}

// TrendingPosters remembers the posters of the trending titles so the
// dashboard does not ask the backend on every render.
type TrendingPosters struct {
	mu      sync.RWMutex
	posters map[string]string
}

// NewTrendingPosters creates an empty poster set.
func NewTrendingPosters() *TrendingPosters {
	return &TrendingPosters{posters: make(map[string]string)}
}

// Resolve asks backend for each title once, one at a time, giving each
// lookup up to timeout. Titles the backend does not know keep the fallback.
// It returns how many posters were resolved.
func (p *TrendingPosters) Resolve(ctx context.Context, backend MovieBackend, titles []string, timeout time.Duration) int {
	resolved := 0
	for _, title := range titles {
		if ctx.Err() != nil {
			break
		}
		if p.has(title) {
			continue
		}

		lookupCtx, cancel := context.WithTimeout(ctx, timeout)
		resp, err := backend.Recommend(lookupCtx, title)
		cancel()

		if err != nil {
			logger.LogErr(serr.Wrap(err, "failed to resolve trending poster"), "title", title)
			continue
		}
		if resp == nil || resp.SearchedMovie == nil {
			logger.Debug("No poster for trending title", "title", title)
			continue
		}

		p.mu.Lock()
		p.posters[title] = ResolvePoster(resp.SearchedMovie.PosterURL)
		p.mu.Unlock()
		resolved++
	}
	return resolved
}

func (p *TrendingPosters) has(title string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.posters[title]
	return ok
}

// Poster returns the resolved poster for title, or FallbackPosterURL.
// A nil receiver always answers the fallback.
func (p *TrendingPosters) Poster(title string) string {
	if p == nil {
		return FallbackPosterURL
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if u, ok := p.posters[title]; ok {
		return u
	}
	return FallbackPosterURL
}

// Tiles pairs each title with its poster.
func (p *TrendingPosters) Tiles(titles []string) []TrendingTile {
	tiles := make([]TrendingTile, 0, len(titles))
	for _, t := range titles {
		tiles = append(tiles, TrendingTile{Title: t, PosterURL: p.Poster(t)})
	}
	return tiles
}
