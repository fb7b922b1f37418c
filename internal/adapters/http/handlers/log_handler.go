package handlers

import (
	"time"

	"packbill-backoffice/internal/adapters/persistence/repositories"
	"packbill-backoffice/internal/core/services"
	"packbill-backoffice/internal/pkg/pagination"
	"packbill-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LogHandler handles audit log endpoints
type LogHandler struct {
	logService *services.LogService
}

// NewLogHandler creates a new log handler
func NewLogHandler(logService *services.LogService) *LogHandler {
	return &LogHandler{
		logService: logService,
	}
}

// ListLogs handles listing audit log entries (Admin only)
// @Summary List audit logs
// @Description Get a paginated list of audit log entries, newest first (Admin only)
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param page_size query int false "Items per page" default(10)
// @Param search query string false "Search by username, action or description"
// @Param start_date query string false "Filter from date (YYYY-MM-DD)"
// @Param end_date query string false "Filter to date (YYYY-MM-DD)"
// @Success 200 {object} pagination.Envelope
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /logs/ [get]
func (h *LogHandler) ListLogs(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	filter := repositories.LogFilter{
		Search: c.Query("search"),
		Offset: params.Offset,
		Limit:  params.PageSize,
	}

	if raw := c.Query("start_date"); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "start_date must be YYYY-MM-DD")
		}
		filter.StartDate = &start
	}
	if raw := c.Query("end_date"); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BadRequest(c, "end_date must be YYYY-MM-DD")
		}
		end = end.AddDate(0, 0, 1).Add(-time.Nanosecond)
		filter.EndDate = &end
	}

	entries, total, err := h.logService.ListLogs(c.Context(), &services.ListLogsInput{Filter: filter})
	if err != nil {
		return response.InternalServerError(c, "Failed to list logs")
	}

	return response.OK(c, pagination.NewEnvelope(entries, params, total))
}
