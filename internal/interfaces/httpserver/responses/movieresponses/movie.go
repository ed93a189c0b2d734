package movieresponses

import (
	"movision-server/internal/domain/movie"
	"movision-server/internal/infrastructure/tmdb"
)

// RecommendationResponse is the successful chat recommendation payload.
type RecommendationResponse struct {
	SessionID       string           `json:"sessionId"`
	Recommendations []movie.Enriched `json:"recommendations"`
	Message         string           `json:"message"`
}

// ClearHistoryResponse confirms a session wipe.
type ClearHistoryResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

// HealthResponse reports service liveness and session pressure.
type HealthResponse struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	ActiveSessions int    `json:"activeSessions"`
}

// TrendingResponse is one page of trending movies.
type TrendingResponse struct {
	Movies     []movie.Metadata `json:"movies"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// SearchResponse is one page of title search results.
type SearchResponse struct {
	Movies       []movie.Metadata `json:"movies"`
	Page         int              `json:"page"`
	TotalPages   int              `json:"totalPages"`
	TotalResults int              `json:"totalResults"`
}

// EmptyTrending is the degraded listing result used when the catalog
// provider is unavailable: the UI renders an empty page rather than an
// error.
func EmptyTrending() TrendingResponse {
	return TrendingResponse{Movies: []movie.Metadata{}, Page: 1, TotalPages: 1}
}

// EmptySearch mirrors EmptyTrending for the search listing.
func EmptySearch() SearchResponse {
	return SearchResponse{Movies: []movie.Metadata{}, Page: 1, TotalPages: 1}
}

// NewTrendingResponse converts a catalog page.
func NewTrendingResponse(page *tmdb.Page) TrendingResponse {
	return TrendingResponse{
		Movies:     page.Movies,
		Page:       page.Page,
		TotalPages: page.TotalPages,
	}
}

// NewSearchResponse converts a catalog search page.
func NewSearchResponse(page *tmdb.SearchPage) SearchResponse {
	return SearchResponse{
		Movies:       page.Movies,
		Page:         page.Page.Page,
		TotalPages:   page.TotalPages,
		TotalResults: page.TotalResults,
	}
}
