// Package adapters provides the gorm-backed settings repository.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"trading_backend/internal/feature/settings/domain"
	"trading_backend/internal/feature/settings/usecase"
)

// SettingModel is the database row for one settings document.
type SettingModel struct {
	Key   string `gorm:"primaryKey;size:64"`
	Value string `gorm:"type:text;not null"`
}

// TableName returns the table name for settings.
func (SettingModel) TableName() string { return "settings" }

// settingGorm implements usecase.SettingsRepository using gorm.
type settingGorm struct {
	db *gorm.DB
}

var _ usecase.SettingsRepository = (*settingGorm)(nil)

// NewSettingsRepository creates a gorm-backed settings repository.
func NewSettingsRepository(db *gorm.DB) usecase.SettingsRepository {
	return &settingGorm{db: db}
}

// GetByKey returns the raw JSON document stored under key.
func (r *settingGorm) GetByKey(ctx context.Context, key string) (string, error) {
	var row SettingModel
	err := r.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", domain.ErrSettingNotFound
	}
	if err != nil {
		return "", err
	}
	return row.Value, nil
}

// Save inserts or replaces the document stored under key.
func (r *settingGorm) Save(ctx context.Context, key, value string) error {
	row := SettingModel{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&row).Error
}
