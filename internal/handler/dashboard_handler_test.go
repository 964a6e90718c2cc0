package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/internal/repository/memory"
	"github.com/geospatial-academy/training-hub-api/internal/service"
)

func newDashboardHandlerFixture(t *testing.T) (*DashboardHandler, *memory.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := memory.NewStore()
	dashSvc := service.NewDashboardService(store.Registrations(), store.Courses(), nil, 0, nil)
	return NewDashboardHandler(dashSvc, service.NewMetricsService()), store
}

func TestDashboardHandlerStats(t *testing.T) {
	handler, store := newDashboardHandlerFixture(t)
	ctx := context.Background()
	require.NoError(t, store.Courses().Create(ctx, &models.Course{
		ID: "c", Title: "Cartography", Price: "100.00", Active: true,
	}))
	require.NoError(t, store.Registrations().Create(ctx, &models.Registration{
		FirstName: "Ada", LastName: "Okoye", Email: "ada@example.com", Country: "NG",
		CourseID: "c", ExperienceLevel: "beginner",
		Status: models.RegistrationStatusPending, RegisteredAt: time.Now().UTC(),
	}))

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var stats dto.DashboardStatsResponse
	require.NoError(t, json.Unmarshal(envelope.Data, &stats))
	assert.Equal(t, 1, stats.TotalRegistrations)
	assert.Len(t, stats.RegistrationTrends, 12)
	assert.Equal(t, 87, stats.CompletionRate)
}

func TestDashboardHandlerStatsRejectsBadDate(t *testing.T) {
	handler, _ := newDashboardHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/stats?from=yesterday", nil)

	handler.Stats(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboardHandlerSystem(t *testing.T) {
	handler, _ := newDashboardHandlerFixture(t)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/dashboard/system", nil)

	handler.System(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	var snapshot models.SystemMetrics
	require.NoError(t, json.Unmarshal(envelope.Data, &snapshot))
	assert.False(t, snapshot.GeneratedAt.IsZero())
}
