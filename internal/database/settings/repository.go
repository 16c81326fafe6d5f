// Package settings provides database operations for application settings.
//
// # Usage
//
//	repo := settings.NewRepository(db)
//	uuid, ok, err := repo.Lookup(ctx, entities.SettingKeyActiveEnvironment)
package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/envport/internal/entities"
)

// Repository handles all settings database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSetting retrieves a setting by key. Returns gorm.ErrRecordNotFound when absent.
func (r *Repository) GetSetting(ctx context.Context, key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&setting).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

// Lookup returns the value stored under key and whether it exists.
func (r *Repository) Lookup(ctx context.Context, key string) (string, bool, error) {
	setting, err := r.GetSetting(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return setting.Value, true, nil
}

// SetSetting creates or updates a setting.
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	setting := entities.Setting{Key: key, Value: value}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// DeleteSetting removes a setting by key.
func (r *Repository) DeleteSetting(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("key = ?", key).Delete(&entities.Setting{}).Error
}
