package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
)

func newCourseFixture(t *testing.T) (*CourseService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewCourseService(store.Courses(), nil, nil, nil)
	return svc, store
}

func validCourse(id, title string) dto.CreateCourseRequest {
	return dto.CreateCourseRequest{
		ID:          id,
		Title:       title,
		Description: "A thorough walkthrough",
		Level:       "Beginner",
		Duration:    "6 weeks",
		Price:       "499.00",
	}
}

func TestCourseCreateDerivesSlug(t *testing.T) {
	svc, _ := newCourseFixture(t)
	svc.WithClock(func() time.Time { return time.UnixMilli(1700000000000).UTC() })

	course, err := svc.Create(context.Background(), validCourse("", "Advanced GIS: Spatial Analysis!"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(course.ID, "advanced-gis-spatial-analysis-"), course.ID)
	assert.True(t, course.Active)
}

func TestCourseCreateRepeatedTitlesStayUnique(t *testing.T) {
	svc, _ := newCourseFixture(t)
	ctx := context.Background()

	ts := time.UnixMilli(1700000000000).UTC()
	svc.WithClock(func() time.Time { return ts })
	first, err := svc.Create(ctx, validCourse("", "Web Mapping"))
	require.NoError(t, err)

	ts = ts.Add(time.Millisecond)
	second, err := svc.Create(ctx, validCourse("", "Web Mapping"))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCourseCreateConflictOnExplicitID(t *testing.T) {
	svc, _ := newCourseFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCourse("gis-fundamentals", "GIS Fundamentals"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validCourse("gis-fundamentals", "Another Course"))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestCourseUpdateMergesPartialFields(t *testing.T) {
	svc, _ := newCourseFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCourse("gis-fundamentals", "GIS Fundamentals"))
	require.NoError(t, err)

	newPrice := "599.00"
	updated, err := svc.Update(ctx, created.ID, dto.UpdateCourseRequest{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, "599.00", updated.Price)
	assert.Equal(t, "GIS Fundamentals", updated.Title)
	assert.Equal(t, created.ID, updated.ID)
}

func TestCourseDeleteIsSoft(t *testing.T) {
	svc, store := newCourseFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCourse("gis-fundamentals", "GIS Fundamentals"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	// Gone from the public list.
	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	// Still present for admins and by direct lookup.
	all, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	course, err := store.Courses().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, course.Active)
}

func TestCourseDeleteNotFound(t *testing.T) {
	svc, _ := newCourseFixture(t)
	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCourseCreateRejectsUnknownLevel(t *testing.T) {
	svc, _ := newCourseFixture(t)
	req := validCourse("", "Mystery Course")
	req.Level = "Expert"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
}

func TestCourseGetResolvesInactive(t *testing.T) {
	svc, _ := newCourseFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validCourse("c", "C"))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))

	course, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CourseLevelBeginner, course.Level)
	assert.False(t, course.Active)
}
