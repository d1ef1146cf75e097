package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/response"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HistoryHandler holds dependencies for the history and stats handlers.
type HistoryHandler struct {
	uc     usecase.HistoryUsecase
	logger *slog.Logger
}

// NewHistoryHandler is the constructor for HistoryHandler, injected by Fx.
func NewHistoryHandler(uc usecase.HistoryUsecase, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{uc: uc, logger: logger}
}

// History returns the hub's ledger events within a time range. Defaults to
// the last 24 hours when no range is given.
func (h *HistoryHandler) History(c echo.Context) error {
	hubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub ID")
	}

	now := time.Now()
	from := now.Add(-24 * time.Hour)
	to := now

	if raw := c.QueryParam("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid 'from' timestamp, expected RFC 3339")
		}
	}
	if raw := c.QueryParam("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid 'to' timestamp, expected RFC 3339")
		}
	}

	events, err := h.uc.History(c.Request().Context(), hubID, from, to)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, events, "")
}

// Stats returns the hub's aggregated statistics for one day. Defaults to
// today when no date is given.
func (h *HistoryHandler) Stats(c echo.Context) error {
	hubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub ID")
	}

	date := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		date, err = time.Parse("2006-01-02", raw)
		if err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid 'date', expected YYYY-MM-DD")
		}
	}

	stats, err := h.uc.Stats(c.Request().Context(), hubID, date)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats, "")
}
