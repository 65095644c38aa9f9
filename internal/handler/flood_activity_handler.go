package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/silay-drrmo/drrmo-api/internal/dto"
	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
	"github.com/silay-drrmo/drrmo-api/pkg/response"
)

type floodActivityService interface {
	Create(ctx context.Context, req dto.CreateFloodActivityRequest, actor *models.JWTClaims) (*models.FloodActivity, error)
	List(ctx context.Context, filter models.FloodActivityFilter) ([]models.FloodActivity, *models.Pagination, error)
}

// FloodActivityHandler manages flood event activity HTTP endpoints.
type FloodActivityHandler struct {
	service floodActivityService
}

// NewFloodActivityHandler constructs the handler.
func NewFloodActivityHandler(service floodActivityService) *FloodActivityHandler {
	return &FloodActivityHandler{service: service}
}

// Create godoc
// @Summary Log a flood event register change
// @Tags FloodActivities
// @Accept json
// @Produce json
// @Param payload body dto.CreateFloodActivityRequest true "Flood activity payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /flood-activities [post]
func (h *FloodActivityHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateFloodActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid flood activity payload"))
		return
	}
	record, err := h.service.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, record, nil)
}

// List godoc
// @Summary List flood event activity entries
// @Tags FloodActivities
// @Produce json
// @Param action query string false "Action filter (CREATE, UPDATE, DELETE)"
// @Param archived query bool false "Show archived entries"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /flood-activities [get]
func (h *FloodActivityHandler) List(c *gin.Context) {
	filter := models.FloodActivityFilter{
		Action:   strings.ToUpper(strings.TrimSpace(c.Query("action"))),
		Archived: queryBool(c, "archived"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 50),
	}
	records, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}
