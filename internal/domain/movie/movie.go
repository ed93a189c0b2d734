package movie

import "movision-server/internal/domain/chat"

// Metadata is the catalog record resolved for one title: ids, artwork,
// trailer and genre label, with image paths already expanded to absolute
// URLs (or left empty when the provider had none).
type Metadata struct {
	TMDBID      int     `json:"tmdbId"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview,omitempty"`
	Poster      string  `json:"poster,omitempty"`
	Backdrop    string  `json:"backdrop,omitempty"`
	Rating      float64 `json:"rating"`
	ReleaseDate string  `json:"releaseDate,omitempty"`
	Year        string  `json:"year,omitempty"`
	Trailer     string  `json:"trailer,omitempty"`
	Genre       string  `json:"genre,omitempty"`
}

// Enriched merges a model candidate with catalog metadata. Metadata wins
// on collision except for the narrative plot/why fields, which stay with
// the candidate.
type Enriched struct {
	Title    string `json:"title"`
	Year     any    `json:"year,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Rating   any    `json:"rating,omitempty"`
	Runtime  string `json:"runtime,omitempty"`
	Director string `json:"director,omitempty"`
	Plot     string `json:"plot,omitempty"`
	Why      string `json:"why,omitempty"`

	TMDBID      int    `json:"tmdbId,omitempty"`
	Overview    string `json:"overview,omitempty"`
	Poster      string `json:"poster,omitempty"`
	Backdrop    string `json:"backdrop,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty"`
	Trailer     string `json:"trailer,omitempty"`
}

// Merge builds a fresh Enriched value; neither input is retained or
// mutated. A nil metadata passes the candidate through untouched.
func Merge(candidate chat.MovieCandidate, metadata *Metadata) Enriched {
	enriched := Enriched{
		Title:    candidate.Title,
		Year:     candidate.Year,
		Genre:    candidate.Genre,
		Rating:   candidate.Rating,
		Runtime:  candidate.Runtime,
		Director: candidate.Director,
		Plot:     candidate.Plot,
		Why:      candidate.Why,
	}
	if metadata == nil {
		return enriched
	}

	enriched.TMDBID = metadata.TMDBID
	enriched.Overview = metadata.Overview
	enriched.Poster = metadata.Poster
	enriched.Backdrop = metadata.Backdrop
	enriched.ReleaseDate = metadata.ReleaseDate
	enriched.Trailer = metadata.Trailer
	if metadata.Title != "" {
		enriched.Title = metadata.Title
	}
	if metadata.Year != "" {
		enriched.Year = metadata.Year
	}
	if metadata.Genre != "" {
		enriched.Genre = metadata.Genre
	}
	if metadata.Rating != 0 {
		enriched.Rating = metadata.Rating
	}
	return enriched
}
