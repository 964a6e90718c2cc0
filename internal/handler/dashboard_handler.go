package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/geospatial-academy/training-hub-api/internal/middleware"
	"github.com/geospatial-academy/training-hub-api/internal/models"
	"github.com/geospatial-academy/training-hub-api/internal/service"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
	"github.com/geospatial-academy/training-hub-api/pkg/response"
)

// DashboardHandler exposes admin dashboard endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
	metrics   *service.MetricsService
}

// NewDashboardHandler constructs DashboardHandler.
func NewDashboardHandler(dashboard *service.DashboardService, metrics *service.MetricsService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, metrics: metrics}
}

// Stats godoc
// @Summary Dashboard aggregation snapshot
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param from query string false "Lower bound (RFC 3339 date)"
// @Param to query string false "Upper bound (RFC 3339 date)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	var filter models.StatsFilter
	if raw := c.Query("from"); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid from date"))
			return
		}
		filter.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid to date"))
			return
		}
		filter.To = &to
	}

	stats, cached, err := h.dashboard.Stats(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cached)
	response.JSON(c, http.StatusOK, stats, middleware.ExtractMeta(c))
}

// System godoc
// @Summary Runtime metrics snapshot
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /dashboard/system [get]
func (h *DashboardHandler) System(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.metrics.Snapshot())
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
