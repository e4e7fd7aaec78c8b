package adapters

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trading_backend/internal/feature/watchlists/domain"
	"trading_backend/internal/feature/watchlists/domain/entity"
	"trading_backend/internal/feature/watchlists/usecase"
)

// watchlistGorm is the GORM implementation of the WatchlistRepository interface.
type watchlistGorm struct {
	db *gorm.DB
}

// Compile-time check that watchlistGorm implements WatchlistRepository.
var _ usecase.WatchlistRepository = (*watchlistGorm)(nil)

// NewWatchlistRepository creates a new GORM-backed watchlist repository.
func NewWatchlistRepository(db *gorm.DB) *watchlistGorm {
	return &watchlistGorm{db: db}
}

// Save persists the watchlist, creating or updating the row.
func (r *watchlistGorm) Save(ctx context.Context, watchlist *entity.Watchlist) error {
	m := toWatchlistModel(watchlist)
	return r.db.WithContext(ctx).Save(&m).Error
}

// FindByID returns the watchlist or domain.ErrWatchlistNotFound.
func (r *watchlistGorm) FindByID(ctx context.Context, id uuid.UUID) (*entity.Watchlist, error) {
	var m WatchlistModel
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWatchlistNotFound
		}
		return nil, err
	}
	return toWatchlistEntity(&m)
}

// ListByUser returns all watchlists owned by the user, oldest first.
func (r *watchlistGorm) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Watchlist, error) {
	var models []WatchlistModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.String()).
		Order("created_at asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	watchlists := make([]*entity.Watchlist, 0, len(models))
	for i := range models {
		watchlist, err := toWatchlistEntity(&models[i])
		if err != nil {
			return nil, err
		}
		watchlists = append(watchlists, watchlist)
	}
	return watchlists, nil
}

// Delete removes the watchlist.
func (r *watchlistGorm) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&WatchlistModel{}).Error
}
