package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"ollamachat/internal/models"
)

type AppConfigRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type appConfigRepository struct {
	db *gorm.DB
}

func NewAppConfigRepository(db *gorm.DB) AppConfigRepository {
	return &appConfigRepository{db: db}
}

// Get returns the stored value and whether the key exists.
func (r *appConfigRepository) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, fmt.Errorf("config key is required")
	}
	var entry models.AppConfig
	if err := r.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading config %q: %w", key, err)
	}
	return entry.Value, true, nil
}

func (r *appConfigRepository) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("config key is required")
	}
	entry := models.AppConfig{Key: key, Value: value}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("writing config %q: %w", key, err)
	}
	return nil
}
