package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/geospatial-academy/training-hub-api/internal/dto"
	"github.com/geospatial-academy/training-hub-api/internal/service"
	appErrors "github.com/geospatial-academy/training-hub-api/pkg/errors"
	"github.com/geospatial-academy/training-hub-api/pkg/response"
)

// ContactHandler exposes contact form endpoints.
type ContactHandler struct {
	contacts *service.ContactService
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// Create godoc
// @Summary Submit a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param payload body dto.CreateContactMessageRequest true "Message payload"
// @Success 201 {object} response.Envelope
// @Router /contact [post]
func (h *ContactHandler) Create(c *gin.Context) {
	var req dto.CreateContactMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	msg, err := h.contacts.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, msg)
}

// List godoc
// @Summary List contact messages, newest first
// @Tags Contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /contact [get]
func (h *ContactHandler) List(c *gin.Context) {
	msgs, err := h.contacts.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, msgs)
}
