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

type settingRepository interface {
	List(ctx context.Context) ([]models.WebsiteSetting, error)
	FindByKey(ctx context.Context, key string) (*models.WebsiteSetting, error)
	Upsert(ctx context.Context, setting *models.WebsiteSetting) error
	UpdateValue(ctx context.Context, key, value string) (bool, error)
}

// SettingService manages website settings with upsert-by-key semantics.
type SettingService struct {
	repo      settingRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingService constructs a SettingService instance.
func NewSettingService(repo settingRepository, validate *validator.Validate, logger *zap.Logger) *SettingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SettingService{repo: repo, validator: validate, logger: logger}
}

// List returns all settings ordered by key.
func (s *SettingService) List(ctx context.Context) ([]models.WebsiteSetting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list settings")
	}
	return settings, nil
}

// Get returns a setting by key.
func (s *SettingService) Get(ctx context.Context, key string) (*models.WebsiteSetting, error) {
	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "setting not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load setting")
	}
	return setting, nil
}

// Upsert creates a setting or replaces it when the key already exists.
func (s *SettingService) Upsert(ctx context.Context, req dto.UpsertSettingRequest) (*models.WebsiteSetting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setting payload")
	}

	setting := &models.WebsiteSetting{
		Key:         req.Key,
		Value:       req.Value,
		Type:        models.SettingType(req.Type),
		Description: req.Description,
	}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store setting")
	}
	return setting, nil
}

// UpdateValue changes only the value of an existing setting.
func (s *SettingService) UpdateValue(ctx context.Context, key string, req dto.UpdateSettingValueRequest) (*models.WebsiteSetting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setting payload")
	}

	updated, err := s.repo.UpdateValue(ctx, key, req.Value)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update setting")
	}
	if !updated {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "setting not found")
	}

	return s.Get(ctx, key)
}
