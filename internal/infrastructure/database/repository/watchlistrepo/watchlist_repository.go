package watchlistrepo

import (
	"context"

	"gorm.io/gorm"

	"movision-server/internal/domain/library"
	"movision-server/internal/infrastructure/database/entities"
)

// WatchlistRepository persists watchlist items via gorm.
type WatchlistRepository struct {
	db *gorm.DB
}

var _ library.Repository = (*WatchlistRepository)(nil)

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) Add(ctx context.Context, item library.Item) error {
	entity := entities.WatchlistItem{
		UserID: item.UserID,
		TMDBID: item.TMDBID,
		Title:  item.Title,
		Poster: item.Poster,
		Genre:  item.Genre,
		Rating: item.Rating,
	}
	return r.db.WithContext(ctx).Create(&entity).Error
}

func (r *WatchlistRepository) Remove(ctx context.Context, userID string, tmdbID int) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).
		Delete(&entities.WatchlistItem{}).Error
}

func (r *WatchlistRepository) List(ctx context.Context, userID string) ([]library.Item, error) {
	var rows []entities.WatchlistItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	items := make([]library.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, library.Item{
			UserID:  row.UserID,
			TMDBID:  row.TMDBID,
			Title:   row.Title,
			Poster:  row.Poster,
			Genre:   row.Genre,
			Rating:  row.Rating,
			AddedAt: row.CreatedAt,
		})
	}
	return items, nil
}

func (r *WatchlistRepository) Exists(ctx context.Context, userID string, tmdbID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.WatchlistItem{}).
		Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
