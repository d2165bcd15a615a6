package models

import "strconv"

const (
	FeaturedCardLabel = "Currently Selected"
	DetailsCardLabel  = "Details"
)

// Card is the view model of a single movie tile.
type Card struct {
	Title     string  `json:"title"`
	PosterURL string  `json:"poster_url"`
	Index     int     `json:"index"`
	Featured  bool    `json:"featured"`
	Label     string  `json:"label"`
	Delay     float64 `json:"delay_seconds"`
	Clickable bool    `json:"clickable"`
}

// NewCard builds the card for movie at position index in its result set.
// Cards enter in sequence, each one a tenth of a second after the previous.
// Only non-featured cards can be clicked to search for that title.
func NewCard(movie Movie, index int, featured bool) Card {
	label := DetailsCardLabel
	if featured {
		label = FeaturedCardLabel
	}
	return Card{
		Title:     movie.Title,
		PosterURL: ResolvePoster(movie.PosterURL),
		Index:     index,
		Featured:  featured,
		Label:     label,
		Delay:     float64(index) / 10,
		Clickable: !featured,
	}
}

// DelayCSS formats the entrance delay as a CSS time value, e.g. "0.3s".
func (c Card) DelayCSS() string {
	return strconv.FormatFloat(c.Delay, 'f', -1, 64) + "s"
}
