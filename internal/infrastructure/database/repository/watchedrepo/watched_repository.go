package watchedrepo

import (
	"context"

	"gorm.io/gorm"

	"movision-server/internal/domain/library"
	"movision-server/internal/infrastructure/database/entities"
)

// WatchedRepository persists watched items via gorm.
type WatchedRepository struct {
	db *gorm.DB
}

var _ library.Repository = (*WatchedRepository)(nil)

func NewWatchedRepository(db *gorm.DB) *WatchedRepository {
	return &WatchedRepository{db: db}
}

func (r *WatchedRepository) Add(ctx context.Context, item library.Item) error {
	entity := entities.WatchedItem{
		UserID: item.UserID,
		TMDBID: item.TMDBID,
		Title:  item.Title,
		Poster: item.Poster,
		Genre:  item.Genre,
		Rating: item.Rating,
	}
	return r.db.WithContext(ctx).Create(&entity).Error
}

func (r *WatchedRepository) Remove(ctx context.Context, userID string, tmdbID int) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).
		Delete(&entities.WatchedItem{}).Error
}

func (r *WatchedRepository) List(ctx context.Context, userID string) ([]library.Item, error) {
	var rows []entities.WatchedItem
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

func (r *WatchedRepository) Exists(ctx context.Context, userID string, tmdbID int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.WatchedItem{}).
		Where("user_id = ? AND tmdb_id = ?", userID, tmdbID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
