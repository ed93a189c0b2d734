package libraryresponses

import "movision-server/internal/domain/library"

// ListResponse is a user's watchlist or watched list.
type ListResponse struct {
	Items []library.Item `json:"items"`
	Total int            `json:"total"`
}

// SavedResponse confirms an add or remove.
type SavedResponse struct {
	Message string `json:"message"`
	TMDBID  int    `json:"tmdbId"`
}

// CheckResponse answers a membership query.
type CheckResponse struct {
	TMDBID      int  `json:"tmdbId"`
	InWatchlist bool `json:"inWatchlist"`
}

// StatsResponse summarizes a user's watched history.
type StatsResponse struct {
	Total         int64            `json:"total"`
	AverageRating float64          `json:"averageRating"`
	GenreCounts   map[string]int64 `json:"genreCounts"`
}

// NewListResponse wraps items, normalizing nil to an empty slice.
func NewListResponse(items []library.Item) ListResponse {
	if items == nil {
		items = []library.Item{}
	}
	return ListResponse{Items: items, Total: len(items)}
}

// NewStatsResponse converts domain stats.
func NewStatsResponse(stats *library.Stats) StatsResponse {
	counts := stats.GenreCounts
	if counts == nil {
		counts = map[string]int64{}
	}
	return StatsResponse{
		Total:         stats.Total,
		AverageRating: stats.AverageRating,
		GenreCounts:   counts,
	}
}
