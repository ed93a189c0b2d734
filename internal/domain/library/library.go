package library

import (
	"context"
	"time"
)

// Item is one saved movie in a user's watchlist or watched list.
type Item struct {
	UserID  string  `json:"-"`
	TMDBID  int     `json:"tmdbId"`
	Title   string  `json:"title"`
	Poster  string  `json:"poster,omitempty"`
	Genre   string  `json:"genre,omitempty"`
	Rating  float64 `json:"rating,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}

// Stats summarizes a user's watched list.
type Stats struct {
	Total         int64            `json:"total"`
	AverageRating float64          `json:"averageRating"`
	GenreCounts   map[string]int64 `json:"genres"`
}

// Repository persists one list (watchlist or watched) per user.
type Repository interface {
	Add(ctx context.Context, item Item) error
	Remove(ctx context.Context, userID string, tmdbID int) error
	List(ctx context.Context, userID string) ([]Item, error)
	Exists(ctx context.Context, userID string, tmdbID int) (bool, error)
}
