package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/service"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
	"github.com/geospatial-academy/training-hub-api/pkg/response"
)

// BannerHandler exposes homepage banner endpoints.
type BannerHandler struct {
	banners *service.BannerService
}

// NewBannerHandler constructs BannerHandler.
func NewBannerHandler(banners *service.BannerService) *BannerHandler {
	return &BannerHandler{banners: banners}
}

func bannerID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid banner id"))
		return 0, false
	}
	return id, true
}

// List godoc
// @Summary List banners in display order
// @Description Public callers see active banners only; admins see everything.
// @Tags Banners
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /banners [get]
func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.banners.List(c.Request.Context(), isAdmin(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, banners)
}

// Get godoc
// @Summary Fetch a single banner
// @Tags Banners
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Success 200 {object} response.Envelope
// @Router /banners/{id} [get]
func (h *BannerHandler) Get(c *gin.Context) {
	id, ok := bannerID(c)
	if !ok {
		return
	}
	banner, err := h.banners.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, banner)
}

// Create godoc
// @Summary Create a banner
// @Tags Banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.CreateBannerRequest true "Banner payload"
// @Success 201 {object} response.Envelope
// @Router /banners [post]
func (h *BannerHandler) Create(c *gin.Context) {
	var req dto.CreateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	banner, err := h.banners.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, banner)
}

// Update godoc
// @Summary Update a banner
// @Tags Banners
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Param payload body dto.UpdateBannerRequest true "Fields to merge"
// @Success 200 {object} response.Envelope
// @Router /banners/{id} [patch]
func (h *BannerHandler) Update(c *gin.Context) {
	id, ok := bannerID(c)
	if !ok {
		return
	}

	var req dto.UpdateBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	banner, err := h.banners.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, banner)
}

// Delete godoc
// @Summary Delete a banner
// @Tags Banners
// @Produce json
// @Security BearerAuth
// @Param id path int true "Banner ID"
// @Success 204 "No Content"
// @Router /banners/{id} [delete]
func (h *BannerHandler) Delete(c *gin.Context) {
	id, ok := bannerID(c)
	if !ok {
		return
	}
	if err := h.banners.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
