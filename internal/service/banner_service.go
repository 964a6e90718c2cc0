package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
)

type bannerRepository interface {
	Create(ctx context.Context, banner *models.Banner) error
	FindByID(ctx context.Context, id int64) (*models.Banner, error)
	List(ctx context.Context, activeOnly bool) ([]models.Banner, error)
	Update(ctx context.Context, banner *models.Banner) error
	Delete(ctx context.Context, id int64) (bool, error)
}

// BannerService manages homepage banners.
type BannerService struct {
	repo      bannerRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBannerService constructs a BannerService instance.
func NewBannerService(repo bannerRepository, validate *validator.Validate, logger *zap.Logger) *BannerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &BannerService{repo: repo, validator: validate, logger: logger}
}

// List returns banners in display order. Public callers see only active
// banners.
func (s *BannerService) List(ctx context.Context, includeInactive bool) ([]models.Banner, error) {
	banners, err := s.repo.List(ctx, !includeInactive)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list banners")
	}
	return banners, nil
}

// Get returns a single banner.
func (s *BannerService) Get(ctx context.Context, id int64) (*models.Banner, error) {
	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "banner not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load banner")
	}
	return banner, nil
}

// Create adds a banner.
func (s *BannerService) Create(ctx context.Context, req dto.CreateBannerRequest) (*models.Banner, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid banner payload")
	}

	banner := &models.Banner{
		Title:    req.Title,
		Subtitle: req.Subtitle,
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		LinkText: req.LinkText,
		IsActive: true,
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		banner.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Create(ctx, banner); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store banner")
	}
	return banner, nil
}

// Update merges the supplied fields into an existing banner.
func (s *BannerService) Update(ctx context.Context, id int64, req dto.UpdateBannerRequest) (*models.Banner, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid banner payload")
	}

	banner, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "banner not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load banner")
	}

	if req.Title != nil {
		banner.Title = *req.Title
	}
	if req.Subtitle != nil {
		banner.Subtitle = req.Subtitle
	}
	if req.ImageURL != nil {
		banner.ImageURL = *req.ImageURL
	}
	if req.LinkURL != nil {
		banner.LinkURL = req.LinkURL
	}
	if req.LinkText != nil {
		banner.LinkText = req.LinkText
	}
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		banner.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Update(ctx, banner); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update banner")
	}
	return banner, nil
}

// Delete removes a banner permanently.
func (s *BannerService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete banner")
	}
	if !deleted {
		return appErrors.Clone(appErrors.ErrNotFound, "banner not found")
	}
	return nil
}
