package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/silay-drrmo/drrmo-api/internal/dto"
	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/internal/service"
	appErrors "github.com/silay-drrmo/drrmo-api/pkg/errors"
	"github.com/silay-drrmo/drrmo-api/pkg/response"
)

type archivalService interface {
	Archive(ctx context.Context, opts service.ArchiveOptions, confirm service.ConfirmFunc, actor *models.JWTClaims) (*service.ArchivalResult, error)
	Restore(ctx context.Context, opts service.RestoreOptions, confirm service.ConfirmFunc, actor *models.JWTClaims) (*service.ArchivalResult, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// ArchivalHandler exposes bulk archive and restore runs over HTTP. Execute
// runs carry the confirmation in the request body since there is no
// interactive prompt on this path.
type ArchivalHandler struct {
	service   archivalService
	dashboard cacheInvalidator
	metrics   *service.Metrics
}

// NewArchivalHandler constructs the handler. dashboard and metrics may be
// nil when those subsystems are disabled.
func NewArchivalHandler(svc archivalService, dashboard cacheInvalidator, metrics *service.Metrics) *ArchivalHandler {
	return &ArchivalHandler{service: svc, dashboard: dashboard, metrics: metrics}
}

// Archive godoc
// @Summary Run a bulk archive over old activity records
// @Tags Archival
// @Accept json
// @Produce json
// @Param payload body dto.ArchiveRunRequest true "Archive run payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /records/archive [post]
func (h *ArchivalHandler) Archive(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.ArchiveRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid archive run payload"))
		return
	}

	opts := service.ArchiveOptions{
		DryRun:      req.Mode == "dry-run",
		Execute:     req.Mode == "execute",
		Years:       req.Years,
		IncludeLogs: req.IncludeLogs,
	}
	confirmed := req.Confirm
	result, err := h.service.Archive(c.Request.Context(), opts, func(models.ArchivalSummary) bool {
		return confirmed
	}, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.afterRun(c, "archive", result)
	response.JSON(c, http.StatusOK, result, nil)
}

// Restore godoc
// @Summary Run a bulk restore over archived records
// @Tags Archival
// @Accept json
// @Produce json
// @Param payload body dto.RestoreRunRequest true "Restore run payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /records/restore [post]
func (h *ArchivalHandler) Restore(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req dto.RestoreRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid restore run payload"))
		return
	}

	opts := service.RestoreOptions{
		DryRun:   req.Mode == "dry-run",
		Execute:  req.Mode == "execute",
		All:      req.All,
		Type:     req.Type,
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
	}
	confirmed := req.Confirm
	result, err := h.service.Restore(c.Request.Context(), opts, func(models.ArchivalSummary) bool {
		return confirmed
	}, claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.afterRun(c, "restore", result)
	response.JSON(c, http.StatusOK, result, nil)
}

func (h *ArchivalHandler) afterRun(c *gin.Context, operation string, result *service.ArchivalResult) {
	h.metrics.ObserveArchivalRun(operation, result)
	if result.Status == service.RunCompleted && h.dashboard != nil {
		h.dashboard.Invalidate(c.Request.Context())
	}
}
