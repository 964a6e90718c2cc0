package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/geospatial-academy/training-hub-api/internal/models"
)

// BannerRepository provides database access for homepage banners.
type BannerRepository struct {
	db *sqlx.DB
}

// NewBannerRepository creates a new instance of BannerRepository.
func NewBannerRepository(db *sqlx.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

// Create inserts a new banner and fills in the generated id.
func (r *BannerRepository) Create(ctx context.Context, banner *models.Banner) error {
	now := time.Now().UTC()
	if banner.CreatedAt.IsZero() {
		banner.CreatedAt = now
	}
	banner.UpdatedAt = now
	const query = `INSERT INTO banners (title, subtitle, image_url, link_url, link_text, is_active, display_order, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query,
		banner.Title, banner.Subtitle, banner.ImageURL, banner.LinkURL,
		banner.LinkText, banner.IsActive, banner.DisplayOrder,
		banner.CreatedAt, banner.UpdatedAt,
	).Scan(&banner.ID)
	if err != nil {
		return fmt.Errorf("create banner: %w", err)
	}
	return nil
}

// FindByID returns a banner by identifier.
func (r *BannerRepository) FindByID(ctx context.Context, id int64) (*models.Banner, error) {
	const query = `SELECT id, title, subtitle, image_url, link_url, link_text, is_active, display_order, created_at, updated_at FROM banners WHERE id = $1 LIMIT 1`
	var banner models.Banner
	if err := r.db.GetContext(ctx, &banner, query, id); err != nil {
		return nil, err
	}
	return &banner, nil
}

// List returns banners ordered by display order, optionally only active ones.
func (r *BannerRepository) List(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	query := `SELECT id, title, subtitle, image_url, link_url, link_text, is_active, display_order, created_at, updated_at FROM banners`
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY display_order ASC, id ASC`
	var banners []models.Banner
	if err := r.db.SelectContext(ctx, &banners, query); err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

// Update overwrites the mutable fields of a banner.
func (r *BannerRepository) Update(ctx context.Context, banner *models.Banner) error {
	banner.UpdatedAt = time.Now().UTC()
	const query = `UPDATE banners SET title = :title, subtitle = :subtitle, image_url = :image_url, link_url = :link_url, link_text = :link_text, is_active = :is_active, display_order = :display_order, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, banner); err != nil {
		return fmt.Errorf("update banner: %w", err)
	}
	return nil
}

// Delete removes a banner permanently. Reports whether a row was matched.
func (r *BannerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM banners WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("delete banner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete banner: %w", err)
	}
	return affected > 0, nil
}
