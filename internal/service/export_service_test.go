package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
)

func TestExportRegistrationsCSV(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Courses().Create(ctx, &models.Course{
		ID: "gis-fundamentals", Title: "GIS Fundamentals", Active: true,
	}))
	require.NoError(t, store.Registrations().Create(ctx, &models.Registration{
		FirstName: "Ada", LastName: "Okoye", Email: "ada@example.com", Country: "NG",
		CourseID: "gis-fundamentals", ExperienceLevel: "beginner",
		Status: models.RegistrationStatusPending,
		RegisteredAt: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, store.Registrations().Create(ctx, &models.Registration{
		FirstName: "Ben", LastName: "Weiss", Email: "ben@example.com", Country: "DE",
		CourseID: "ghost", ExperienceLevel: "advanced",
		Status: models.RegistrationStatusConfirmed,
		RegisteredAt: time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC),
	}))

	svc := NewExportService(store.Registrations(), store.Courses(), nil)
	result, err := svc.Registrations(ctx, ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "registrations.csv", result.Filename)

	body := string(result.Content)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Course")
	assert.Contains(t, body, "GIS Fundamentals")
	// Dangling course reference falls back to the raw id.
	assert.Contains(t, body, "ghost")
}

func TestExportRegistrationsPDF(t *testing.T) {
	store := memory.NewStore()
	svc := NewExportService(store.Registrations(), store.Courses(), nil)

	result, err := svc.Registrations(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportRegistrationsUnknownFormat(t *testing.T) {
	store := memory.NewStore()
	svc := NewExportService(store.Registrations(), store.Courses(), nil)

	_, err := svc.Registrations(context.Background(), ExportFormat("xlsx"))
	require.Error(t, err)
}
