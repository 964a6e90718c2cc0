package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
)

type registrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindByID(ctx context.Context, id int64) (*models.Registration, error)
	List(ctx context.Context) ([]models.Registration, error)
	UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) (bool, error)
}

type registrationCourseRepository interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
	IncrementEnrollment(ctx context.Context, id string, delta int) (bool, error)
}

// RegistrationService owns the registration lifecycle. Notifications are
// fire-and-forget and enrollment counters tolerate dangling course ids.
type RegistrationService struct {
	repo      registrationRepository
	courses   registrationCourseRepository
	notifier  Notifier
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewRegistrationService constructs a RegistrationService instance.
func NewRegistrationService(repo registrationRepository, courses registrationCourseRepository, notifier Notifier, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &RegistrationService{
		repo:      repo,
		courses:   courses,
		notifier:  notifier,
		cache:     cache,
		validator: validate,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *RegistrationService) WithClock(now func() time.Time) *RegistrationService {
	if now != nil {
		s.now = now
	}
	return s
}

// Create records a new registration. The stored status is always pending
// regardless of input, and the course enrollment counter is bumped when the
// referenced course exists.
func (s *RegistrationService) Create(ctx context.Context, req dto.CreateRegistrationRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	reg := &models.Registration{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		Country:         req.Country,
		CourseID:        req.CourseID,
		ExperienceLevel: req.ExperienceLevel,
		Goals:           req.Goals,
		AgreeTerms:      req.AgreeTerms,
		Newsletter:      req.Newsletter,
		Status:          models.RegistrationStatusPending,
		RegisteredAt:    s.now(),
	}

	if err := s.repo.Create(ctx, reg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store registration")
	}

	applied, err := s.courses.IncrementEnrollment(ctx, reg.CourseID, 1)
	if err != nil {
		s.logger.Warn("failed to bump enrollment counter",
			zap.String("course_id", reg.CourseID), zap.Error(err))
	} else if !applied {
		s.logger.Warn("registration references unknown course",
			zap.Int64("registration_id", reg.ID), zap.String("course_id", reg.CourseID))
	}

	s.notifier.RegistrationReceived(reg, s.lookupCourse(ctx, reg.CourseID))
	s.invalidateDashboard(ctx)

	return reg, nil
}

// List returns all registrations, newest first.
func (s *RegistrationService) List(ctx context.Context) ([]models.Registration, error) {
	regs, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}
	return regs, nil
}

// Get returns a single registration.
func (s *RegistrationService) Get(ctx context.Context, id int64) (*models.Registration, error) {
	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}
	return reg, nil
}

// UpdateStatus sets a registration's lifecycle status. Any known status may
// replace any other. Moving into confirmed notifies the registrant.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id int64, req dto.UpdateRegistrationStatusRequest) (*models.Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	status := models.RegistrationStatus(req.Status)

	reg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load registration")
	}

	previous := reg.Status
	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update registration status")
	}
	if !updated {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "registration not found")
	}
	reg.Status = status

	if status == models.RegistrationStatusConfirmed && previous != models.RegistrationStatusConfirmed {
		s.notifier.RegistrationConfirmed(reg, s.lookupCourse(ctx, reg.CourseID))
	}
	s.invalidateDashboard(ctx)

	return reg, nil
}

// lookupCourse resolves a course for notification rendering. A miss is fine,
// the notifier falls back to the raw course id.
func (s *RegistrationService) lookupCourse(ctx context.Context, courseID string) *models.Course {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("failed to resolve course for notification",
				zap.String("course_id", courseID), zap.Error(err))
		}
		return nil
	}
	return course
}

func (s *RegistrationService) invalidateDashboard(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, dashboardCachePattern); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
