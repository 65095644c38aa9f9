package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/silay-drrmo/drrmo-api/internal/service"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
	"github.com/silay-drrmo/drrmo-api/pkg/response"
)

type exportService interface {
	ExportAssessments(ctx context.Context, format service.ExportFormat, archived bool) (*service.ExportResult, error)
	ExportReports(ctx context.Context, format service.ExportFormat, archived bool) (*service.ExportResult, error)
	ExportFloodActivities(ctx context.Context, format service.ExportFormat, archived bool) (*service.ExportResult, error)
}

// ExportHandler serves downloadable CSV and PDF record exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Export a record register as CSV or PDF
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param dataset path string true "Dataset (assessments, reports, flood-activities)"
// @Param format query string false "Format (csv or pdf, default csv)"
// @Param archived query bool false "Export archived records"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /exports/{dataset} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := service.ExportFormat(strings.ToLower(c.DefaultQuery("format", "csv")))
	archived := queryBool(c, "archived")

	var (
		result *service.ExportResult
		err    error
	)
	switch c.Param("dataset") {
	case "assessments":
		result, err = h.service.ExportAssessments(c.Request.Context(), format, archived)
	case "reports":
		result, err = h.service.ExportReports(c.Request.Context(), format, archived)
	case "flood-activities":
		result, err = h.service.ExportFloodActivities(c.Request.Context(), format, archived)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown export dataset"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
