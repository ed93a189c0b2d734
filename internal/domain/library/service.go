package library

import (
	"context"
	"strings"

	"movision-server/internal/utils/apperrors"
)

// Service wraps the watchlist and watched repositories with the small
// amount of domain policy they share.
type Service struct {
	watchlist Repository
	watched   Repository
}

func NewService(watchlist, watched Repository) *Service {
	return &Service{watchlist: watchlist, watched: watched}
}

func (s *Service) AddToWatchlist(ctx context.Context, item Item) error {
	return s.add(ctx, s.watchlist, item)
}

func (s *Service) AddToWatched(ctx context.Context, item Item) error {
	return s.add(ctx, s.watched, item)
}

func (s *Service) add(ctx context.Context, repo Repository, item Item) error {
	if item.TMDBID <= 0 {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation, "tmdbId must be a positive integer", nil)
	}
	if strings.TrimSpace(item.Title) == "" {
		return apperrors.NewError(ctx, apperrors.LayerDomain, apperrors.ErrorTypeValidation, "title is required", nil)
	}
	exists, err := repo.Exists(ctx, item.UserID, item.TMDBID)
	if err != nil {
		return apperrors.AsError(ctx, apperrors.LayerDomain, err, "lookup failed")
	}
	if exists {
		// Adding an already-saved movie is a no-op, matching the
		// idempotent behavior the listing UI expects.
		return nil
	}
	if err := repo.Add(ctx, item); err != nil {
		return apperrors.AsError(ctx, apperrors.LayerDomain, err, "save failed")
	}
	return nil
}

func (s *Service) RemoveFromWatchlist(ctx context.Context, userID string, tmdbID int) error {
	return s.remove(ctx, s.watchlist, userID, tmdbID)
}

func (s *Service) RemoveFromWatched(ctx context.Context, userID string, tmdbID int) error {
	return s.remove(ctx, s.watched, userID, tmdbID)
}

func (s *Service) remove(ctx context.Context, repo Repository, userID string, tmdbID int) error {
	if err := repo.Remove(ctx, userID, tmdbID); err != nil {
		return apperrors.AsError(ctx, apperrors.LayerDomain, err, "remove failed")
	}
	return nil
}

func (s *Service) Watchlist(ctx context.Context, userID string) ([]Item, error) {
	items, err := s.watchlist.List(ctx, userID)
	if err != nil {
		return nil, apperrors.AsError(ctx, apperrors.LayerDomain, err, "list failed")
	}
	return items, nil
}

func (s *Service) Watched(ctx context.Context, userID string) ([]Item, error) {
	items, err := s.watched.List(ctx, userID)
	if err != nil {
		return nil, apperrors.AsError(ctx, apperrors.LayerDomain, err, "list failed")
	}
	return items, nil
}

func (s *Service) InWatchlist(ctx context.Context, userID string, tmdbID int) (bool, error) {
	exists, err := s.watchlist.Exists(ctx, userID, tmdbID)
	if err != nil {
		return false, apperrors.AsError(ctx, apperrors.LayerDomain, err, "lookup failed")
	}
	return exists, nil
}

// WatchedStats derives totals from the watched list in memory; lists are
// per-user and small.
func (s *Service) WatchedStats(ctx context.Context, userID string) (*Stats, error) {
	items, err := s.watched.List(ctx, userID)
	if err != nil {
		return nil, apperrors.AsError(ctx, apperrors.LayerDomain, err, "list failed")
	}

	stats := &Stats{
		Total:       int64(len(items)),
		GenreCounts: make(map[string]int64),
	}
	ratingSum := 0.0
	rated := 0
	for _, item := range items {
		if item.Rating > 0 {
			ratingSum += item.Rating
			rated++
		}
		for _, genre := range strings.Split(item.Genre, ",") {
			genre = strings.TrimSpace(genre)
			if genre != "" {
				stats.GenreCounts[genre]++
			}
		}
	}
	if rated > 0 {
		stats.AverageRating = ratingSum / float64(rated)
	}
	return stats, nil
}
