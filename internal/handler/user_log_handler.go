package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/silay-drrmo/drrmo-api/internal/models"
	"github.com/silay-drrmo/drrmo-api/pkg/response"
)

type userLogService interface {
	List(ctx context.Context, filter models.UserLogFilter) ([]models.UserLog, *models.Pagination, error)
}

// UserLogHandler exposes the user activity log to administrators.
type UserLogHandler struct {
	service userLogService
}

// NewUserLogHandler constructs the handler.
func NewUserLogHandler(service userLogService) *UserLogHandler {
	return &UserLogHandler{service: service}
}

// List godoc
// @Summary List user activity entries
// @Tags UserLogs
// @Produce json
// @Param user_id query string false "User filter"
// @Param action query string false "Action filter"
// @Param archived query bool false "Show archived entries"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /user-logs [get]
func (h *UserLogHandler) List(c *gin.Context) {
	filter := models.UserLogFilter{
		UserID:   strings.TrimSpace(c.Query("user_id")),
		Action:   strings.TrimSpace(c.Query("action")),
		Archived: queryBool(c, "archived"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 50),
	}
	entries, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}
