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

type assessmentService interface {
	Create(ctx context.Context, req dto.CreateAssessmentRequest, actor *models.JWTClaims) (*models.Assessment, error)
	Get(ctx context.Context, id string) (*models.Assessment, error)
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, *models.Pagination, error)
}

// AssessmentHandler manages assessment record HTTP endpoints.
type AssessmentHandler struct {
	service assessmentService
}

// NewAssessmentHandler constructs the handler.
func NewAssessmentHandler(service assessmentService) *AssessmentHandler {
	return &AssessmentHandler{service: service}
}

// Create godoc
// @Summary Log a flood-risk assessment
// @Tags Assessments
// @Accept json
// @Produce json
// @Param payload body dto.CreateAssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /assessments [post]
func (h *AssessmentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateAssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assessment payload"))
		return
	}
	record, err := h.service.Create(c.Request.Context(), req, claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, record, nil)
}

// Get godoc
// @Summary Get one assessment record
// @Tags Assessments
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// List godoc
// @Summary List assessment records
// @Tags Assessments
// @Produce json
// @Param barangay query string false "Barangay filter"
// @Param risk query string false "Flood risk code filter"
// @Param archived query bool false "Show archived records"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /assessments [get]
func (h *AssessmentHandler) List(c *gin.Context) {
	filter := models.AssessmentFilter{
		Barangay:      strings.TrimSpace(c.Query("barangay")),
		FloodRiskCode: strings.TrimSpace(c.Query("risk")),
		Archived:      queryBool(c, "archived"),
		Page:          queryInt(c, "page", 1),
		PageSize:      queryInt(c, "page_size", 50),
	}
	records, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, pagination)
}
