package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/silay-drrmo/drrmo-api/internal/dto"
	"github.com/silay-drrmo/drrmo-api/internal/models"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
	"github.com/silay-drrmo/drrmo-api/pkg/response"
)

type certificateService interface {
	Create(ctx context.Context, req dto.CreateCertificateRequest, actor *models.JWTClaims) (*models.Certificate, error)
	Get(ctx context.Context, id string) (*models.Certificate, error)
	List(ctx context.Context, filter models.CertificateFilter) ([]models.Certificate, *models.Pagination, error)
	RenderPDF(ctx context.Context, id string) ([]byte, *models.Certificate, error)
}

// CertificateHandler manages zoning certificate HTTP endpoints.
type CertificateHandler struct {
	service certificateService
}

// NewCertificateHandler constructs the handler.
func NewCertificateHandler(service certificateService) *CertificateHandler {
	return &CertificateHandler{service: service}
}

// Create godoc
// @Summary Issue a zoning certificate
// @Tags Certificates
// @Accept json
// @Produce json
// @Param payload body dto.CreateCertificateRequest true "Certificate payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /certificates [post]
func (h *CertificateHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.CreateCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid certificate payload"))
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
// @Summary Get one certificate record
// @Tags Certificates
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /certificates/{id} [get]
func (h *CertificateHandler) Get(c *gin.Context) {
	record, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// List godoc
// @Summary List certificate records
// @Tags Certificates
// @Produce json
// @Param barangay query string false "Barangay filter"
// @Param search query string false "Establishment or owner name search"
// @Param archived query bool false "Show archived records"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /certificates [get]
func (h *CertificateHandler) List(c *gin.Context) {
	filter := models.CertificateFilter{
		Barangay: strings.TrimSpace(c.Query("barangay")),
		Search:   strings.TrimSpace(c.Query("search")),
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

// Download godoc
// @Summary Download the printable certificate
// @Tags Certificates
// @Produce application/pdf
// @Param id path string true "Certificate ID"
// @Success 200 {file} binary
// @Failure 404 {object} response.Envelope
// @Router /certificates/{id}/pdf [get]
func (h *CertificateHandler) Download(c *gin.Context) {
	doc, record, err := h.service.RenderPDF(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"certificate_%s.pdf\"", record.ID))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "application/pdf", doc)
}
