package entities

import "gorm.io/gorm"

// WatchlistItem is a movie a user intends to watch.
type WatchlistItem struct {
	gorm.Model
	UserID string  `gorm:"not null;index;uniqueIndex:idx_watchlist_user_movie"`
	TMDBID int     `gorm:"column:tmdb_id;not null;uniqueIndex:idx_watchlist_user_movie"`
	Title  string  `gorm:"not null"`
	Poster string
	Genre  string
	Rating float64
}

// WatchedItem is a movie a user has marked as watched.
type WatchedItem struct {
	gorm.Model
	UserID string  `gorm:"not null;index;uniqueIndex:idx_watched_user_movie"`
	TMDBID int     `gorm:"column:tmdb_id;not null;uniqueIndex:idx_watched_user_movie"`
	Title  string  `gorm:"not null"`
	Poster string
	Genre  string
	Rating float64
}
