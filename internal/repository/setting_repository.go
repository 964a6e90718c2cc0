package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/geospatial-academy/training-hub-api/internal/models"
)

// SettingRepository provides database access for website settings.
type SettingRepository struct {
	db *sqlx.DB
}

// NewSettingRepository creates a new instance of SettingRepository.
func NewSettingRepository(db *sqlx.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// List returns all settings ordered by key.
func (r *SettingRepository) List(ctx context.Context) ([]models.WebsiteSetting, error) {
	const query = `SELECT id, key, value, type, description, updated_at FROM website_settings ORDER BY key ASC`
	var settings []models.WebsiteSetting
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

// FindByKey returns a setting by its key.
func (r *SettingRepository) FindByKey(ctx context.Context, key string) (*models.WebsiteSetting, error) {
	const query = `SELECT id, key, value, type, description, updated_at FROM website_settings WHERE key = $1 LIMIT 1`
	var setting models.WebsiteSetting
	if err := r.db.GetContext(ctx, &setting, query, key); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Upsert creates a setting or replaces it when the key already exists.
func (r *SettingRepository) Upsert(ctx context.Context, setting *models.WebsiteSetting) error {
	setting.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO website_settings (key, value, type, description, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, type = EXCLUDED.type, description = EXCLUDED.description, updated_at = EXCLUDED.updated_at
RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, setting.Key, setting.Value, setting.Type, setting.Description, setting.UpdatedAt).Scan(&setting.ID)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// UpdateValue changes the stored value for an existing key. Reports whether a
// row was matched.
func (r *SettingRepository) UpdateValue(ctx context.Context, key, value string) (bool, error) {
	const query = `UPDATE website_settings SET value = $2, updated_at = $3 WHERE key = $1`
	res, err := r.db.ExecContext(ctx, query, key, value, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("update setting value: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update setting value: %w", err)
	}
	return affected > 0, nil
}
