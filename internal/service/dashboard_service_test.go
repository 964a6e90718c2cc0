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

func newDashboardFixture(t *testing.T, now time.Time) (*DashboardService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewDashboardService(store.Registrations(), store.Courses(), nil, 0, nil).
		WithClock(func() time.Time { return now })
	return svc, store
}

func addRegistration(t *testing.T, store *memory.Store, courseID string, at time.Time) {
	t.Helper()
	require.NoError(t, store.Registrations().Create(context.Background(), &models.Registration{
		FirstName: "Test", LastName: "Student", Email: "s@example.com",
		Country: "DE", CourseID: courseID, ExperienceLevel: "beginner",
		Status: models.RegistrationStatusPending, RegisteredAt: at,
	}))
}

func TestDashboardTrendsAlwaysTwelveMonths(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, _ := newDashboardFixture(t, now)

	stats, cached, err := svc.Stats(context.Background(), models.StatsFilter{})
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Len(t, stats.RegistrationTrends, 12)
	assert.Zero(t, stats.TotalRegistrations)
	assert.Equal(t, 87, stats.CompletionRate)
}

func TestDashboardWindowBoundary(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, store := newDashboardFixture(t, now)
	ctx := context.Background()

	// Exactly 12 months and one day back, outside the trend window.
	addRegistration(t, store, "old-course", now.AddDate(-1, 0, -1))
	// Eleven months back, first slot of the window.
	addRegistration(t, store, "edge-course", now.AddDate(0, -11, 0))
	// Current month, last slot.
	addRegistration(t, store, "new-course", now.AddDate(0, 0, -1))

	stats, _, err := svc.Stats(ctx, models.StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalRegistrations)
	assert.Equal(t, 1, stats.ThisMonthRegistrations)

	sum := 0
	for _, n := range stats.RegistrationTrends {
		sum += n
	}
	assert.Equal(t, 2, sum, "stale registration must not appear in the trend")
	assert.Equal(t, 1, stats.RegistrationTrends[0])
	assert.Equal(t, 1, stats.RegistrationTrends[11])

	// Popularity covers the same window as the trend.
	popTotal := 0
	for _, p := range stats.CoursePopularity {
		popTotal += p.Count
	}
	assert.Equal(t, sum, popTotal)
}

func TestDashboardRevenueCorrelatesByID(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, store := newDashboardFixture(t, now)
	ctx := context.Background()

	require.NoError(t, store.Courses().Create(ctx, &models.Course{
		ID: "gis-fundamentals", Title: "GIS Fundamentals", Price: "100.00", Active: true,
	}))
	addRegistration(t, store, "gis-fundamentals", now)
	addRegistration(t, store, "gis-fundamentals", now)
	addRegistration(t, store, "ghost", now)

	stats, _, err := svc.Stats(ctx, models.StatsFilter{})
	require.NoError(t, err)

	assert.InDelta(t, 200.0, stats.Revenue, 0.001, "unresolvable course contributes nothing")

	require.Len(t, stats.CoursePopularity, 2)
	assert.Equal(t, "GIS Fundamentals", stats.CoursePopularity[0].Course)
	assert.Equal(t, 2, stats.CoursePopularity[0].Count)
	assert.Equal(t, "ghost", stats.CoursePopularity[1].Course)
	assert.Equal(t, 1, stats.CoursePopularity[1].Count)
}

func TestDashboardSoftDeletedCourseExcludedFromActiveCount(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, store := newDashboardFixture(t, now)
	ctx := context.Background()

	require.NoError(t, store.Courses().Create(ctx, &models.Course{ID: "a", Title: "A", Price: "10.00", Active: true}))
	require.NoError(t, store.Courses().Create(ctx, &models.Course{ID: "b", Title: "B", Price: "10.00", Active: true}))
	_, err := store.Courses().SoftDelete(ctx, "b")
	require.NoError(t, err)
	addRegistration(t, store, "b", now)

	stats, _, err := svc.Stats(ctx, models.StatsFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.ActiveCourses)
	// Soft-deleted courses still resolve for popularity and revenue.
	require.Len(t, stats.CoursePopularity, 1)
	assert.Equal(t, "B", stats.CoursePopularity[0].Course)
	assert.InDelta(t, 10.0, stats.Revenue, 0.001)
}

func TestDashboardFilterBoundsTotalOnly(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	svc, store := newDashboardFixture(t, now)
	ctx := context.Background()

	addRegistration(t, store, "a", now.AddDate(0, -1, 0))
	addRegistration(t, store, "a", now)

	from := now.AddDate(0, 0, -7)
	stats, _, err := svc.Stats(ctx, models.StatsFilter{From: &from})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalRegistrations)
	sum := 0
	for _, n := range stats.RegistrationTrends {
		sum += n
	}
	assert.Equal(t, 2, sum)
}

func TestDashboardEndToEndScenario(t *testing.T) {
	now := time.Date(2025, 8, 15, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore()
	ctx := context.Background()

	require.NoError(t, store.Courses().Create(ctx, &models.Course{
		ID: "c", Title: "Cartography Basics", Price: "100.00", Active: true,
	}))

	regSvc := NewRegistrationService(store.Registrations(), store.Courses(), nil, nil, nil, nil).
		WithClock(func() time.Time { return now })
	dashSvc := NewDashboardService(store.Registrations(), store.Courses(), nil, 0, nil).
		WithClock(func() time.Time { return now })

	regA, err := regSvc.Create(ctx, validRegistration("c"))
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationStatusPending, regA.Status)

	course, err := store.Courses().FindByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, course.Enrolled)

	_, err = regSvc.UpdateStatus(ctx, regA.ID, dto.UpdateRegistrationStatusRequest{Status: "confirmed"})
	require.NoError(t, err)
	course, err = store.Courses().FindByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 1, course.Enrolled, "confirming must not change the counter")

	_, err = regSvc.Create(ctx, validRegistration("ghost"))
	require.NoError(t, err)

	stats, _, err := dashSvc.Stats(ctx, models.StatsFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalRegistrations)
	assert.Equal(t, 2, stats.RegistrationTrends[11])

	byName := map[string]int{}
	for _, p := range stats.CoursePopularity {
		byName[p.Course] = p.Count
	}
	assert.Equal(t, 1, byName["Cartography Basics"])
	assert.Equal(t, 1, byName["ghost"])
}
