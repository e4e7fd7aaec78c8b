// Package adapters provides the persistence implementations for the
// watchlists feature.
package adapters

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"trading_backend/internal/feature/watchlists/domain/entity"
)

// WatchlistModel is the persistence shape of a watchlist. The symbol list
// is kept as one comma-separated column; watchlists are small and always
// loaded whole, so a child table would buy nothing.
type WatchlistModel struct {
	ID      string `gorm:"type:uuid;primaryKey"`
	UserID  string `gorm:"type:uuid;index;not null"`
	Name    string `gorm:"size:255;not null"`
	Symbols string `gorm:"size:2048;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM.
func (WatchlistModel) TableName() string { return "watchlists" }

func toWatchlistModel(w *entity.Watchlist) WatchlistModel {
	return WatchlistModel{
		ID:      w.ID.String(),
		UserID:  w.UserID.String(),
		Name:    w.Name,
		Symbols: strings.Join(w.Symbols, ","),
	}
}

func toWatchlistEntity(m *WatchlistModel) (*entity.Watchlist, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, err
	}

	var symbols []string
	if m.Symbols != "" {
		symbols = strings.Split(m.Symbols, ",")
	}
	return entity.Rehydrate(id, userID, m.Name, symbols), nil
}
