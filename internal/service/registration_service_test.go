package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
)

type recordingNotifier struct {
	received  []*models.Registration
	confirmed []*models.Registration
	contacts  []*models.ContactMessage
	courses   []*models.Course
}

func (r *recordingNotifier) RegistrationReceived(reg *models.Registration, course *models.Course) {
	r.received = append(r.received, reg)
	r.courses = append(r.courses, course)
}

func (r *recordingNotifier) RegistrationConfirmed(reg *models.Registration, course *models.Course) {
	r.confirmed = append(r.confirmed, reg)
}

func (r *recordingNotifier) ContactMessageReceived(msg *models.ContactMessage) {
	r.contacts = append(r.contacts, msg)
}

func newRegistrationFixture(t *testing.T) (*RegistrationService, *memory.Store, *recordingNotifier) {
	t.Helper()
	store := memory.NewStore()
	notifier := &recordingNotifier{}
	svc := NewRegistrationService(store.Registrations(), store.Courses(), notifier, nil, nil, nil)
	return svc, store, notifier
}

func validRegistration(courseID string) dto.CreateRegistrationRequest {
	return dto.CreateRegistrationRequest{
		FirstName:       "Ada",
		LastName:        "Okoye",
		Email:           "ada@example.com",
		Country:         "NG",
		CourseID:        courseID,
		ExperienceLevel: "beginner",
		AgreeTerms:      true,
	}
}

func TestRegistrationCreateBumpsEnrollment(t *testing.T) {
	svc, store, notifier := newRegistrationFixture(t)
	ctx := context.Background()
	require.NoError(t, store.Courses().Create(ctx, &models.Course{
		ID: "gis-fundamentals", Title: "GIS Fundamentals", Price: "100.00", Active: true,
	}))

	reg, err := svc.Create(ctx, validRegistration("gis-fundamentals"))
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusPending, reg.Status)
	assert.NotZero(t, reg.ID)

	course, err := store.Courses().FindByID(ctx, "gis-fundamentals")
	require.NoError(t, err)
	assert.Equal(t, 1, course.Enrolled)

	require.Len(t, notifier.received, 1)
	require.NotNil(t, notifier.courses[0])
	assert.Equal(t, "GIS Fundamentals", notifier.courses[0].Title)
}

func TestRegistrationCreateGhostCourseSucceeds(t *testing.T) {
	svc, store, notifier := newRegistrationFixture(t)
	ctx := context.Background()
	require.NoError(t, store.Courses().Create(ctx, &models.Course{
		ID: "gis-fundamentals", Title: "GIS Fundamentals", Active: true,
	}))

	reg, err := svc.Create(ctx, validRegistration("ghost"))
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusPending, reg.Status)

	// No counter anywhere changed.
	course, err := store.Courses().FindByID(ctx, "gis-fundamentals")
	require.NoError(t, err)
	assert.Equal(t, 0, course.Enrolled)

	// Admin notification still attempted, with no resolved course.
	require.Len(t, notifier.received, 1)
	assert.Nil(t, notifier.courses[0])
}

func TestRegistrationCreateRejectsInvalidPayload(t *testing.T) {
	svc, _, notifier := newRegistrationFixture(t)

	req := validRegistration("gis-fundamentals")
	req.Email = "not-an-email"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, notifier.received)
}

func TestRegistrationUpdateStatusNotFound(t *testing.T) {
	svc, _, notifier := newRegistrationFixture(t)

	_, err := svc.UpdateStatus(context.Background(), 123, dto.UpdateRegistrationStatusRequest{Status: "confirmed"})
	require.Error(t, err)
	assert.Empty(t, notifier.confirmed)
}

func TestRegistrationConfirmNotifiesOnce(t *testing.T) {
	svc, store, notifier := newRegistrationFixture(t)
	ctx := context.Background()
	require.NoError(t, store.Courses().Create(ctx, &models.Course{
		ID: "gis-fundamentals", Title: "GIS Fundamentals", Active: true,
	}))

	reg, err := svc.Create(ctx, validRegistration("gis-fundamentals"))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, reg.ID, dto.UpdateRegistrationStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusConfirmed, updated.Status)
	require.Len(t, notifier.confirmed, 1)

	// Confirming again does not notify a second time.
	_, err = svc.UpdateStatus(ctx, reg.ID, dto.UpdateRegistrationStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	assert.Len(t, notifier.confirmed, 1)

	// Enrollment counter is untouched by status transitions.
	course, err := store.Courses().FindByID(ctx, "gis-fundamentals")
	require.NoError(t, err)
	assert.Equal(t, 1, course.Enrolled)
}

func TestRegistrationStatusTransitionsUnconstrained(t *testing.T) {
	svc, store, _ := newRegistrationFixture(t)
	ctx := context.Background()
	require.NoError(t, store.Courses().Create(ctx, &models.Course{ID: "c", Title: "C", Active: true}))

	reg, err := svc.Create(ctx, validRegistration("c"))
	require.NoError(t, err)

	for _, status := range []string{"cancelled", "confirmed", "pending", "confirmed"} {
		updated, err := svc.UpdateStatus(ctx, reg.ID, dto.UpdateRegistrationStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, models.RegistrationStatus(status), updated.Status)
	}
}

func TestRegistrationListNewestFirst(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	svc.WithClock(func() time.Time { return clock })

	first, err := svc.Create(ctx, validRegistration("a"))
	require.NoError(t, err)
	clock = base.Add(time.Hour)
	second, err := svc.Create(ctx, validRegistration("b"))
	require.NoError(t, err)

	regs, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, regs, 2)
	assert.Equal(t, second.ID, regs[0].ID)
	assert.Equal(t, first.ID, regs[1].ID)
}
