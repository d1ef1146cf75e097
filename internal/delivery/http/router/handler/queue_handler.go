package handler

import (
	"log/slog"
	"net/http"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/response"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// QueueHandler holds dependencies for the administrative queue handlers.
type QueueHandler struct {
	uc     usecase.QueueUsecase
	logger *slog.Logger
}

// NewQueueHandler is the constructor for QueueHandler, injected by Fx.
func NewQueueHandler(uc usecase.QueueUsecase, logger *slog.Logger) *QueueHandler {
	return &QueueHandler{uc: uc, logger: logger}
}

type dispatchRequest struct {
	HubID uuid.UUID `json:"hub_id" validate:"required"`
}

type removeRequest struct {
	HubID uuid.UUID `json:"hub_id" validate:"required"`
	Note  string    `json:"note"`
}

// ListQueue returns the hub's waiting line, en-route professionals and
// overdue alerts.
func (h *QueueHandler) ListQueue(c echo.Context) error {
	hubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub ID")
	}

	listing, err := h.uc.ListQueue(c.Request().Context(), actorOf(c), hubID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, listing, "")
}

// Dispatch sends a waiting professional out on a route.
func (h *QueueHandler) Dispatch(c echo.Context) error {
	return h.dispatch(c, false)
}

// DispatchPriority dispatches with guaranteed priority re-entry.
func (h *QueueHandler) DispatchPriority(c echo.Context) error {
	return h.dispatch(c, true)
}

func (h *QueueHandler) dispatch(c echo.Context, priority bool) error {
	professionalID, err := uuid.Parse(c.Param("professionalId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid professional ID")
	}

	var req dispatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid dispatch input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	ctx := c.Request().Context()
	var entry any
	if priority {
		entry, err = h.uc.DispatchPriority(ctx, actorOf(c), req.HubID, professionalID)
	} else {
		entry, err = h.uc.Dispatch(ctx, actorOf(c), req.HubID, professionalID)
	}
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entry, "Professional dispatched successfully")
}

// MoveToBack sends a waiting professional to the end of the line.
func (h *QueueHandler) MoveToBack(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professionalId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid professional ID")
	}

	var req dispatchRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid move input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	entry, err := h.uc.MoveToBack(c.Request().Context(), actorOf(c), req.HubID, professionalID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, entry, "Professional moved to back of queue")
}

// Remove deletes a professional's queue entry with an administrative note.
func (h *QueueHandler) Remove(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professionalId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid professional ID")
	}

	var req removeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid removal input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Remove(c.Request().Context(), actorOf(c), req.HubID, professionalID, req.Note); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Professional removed from queue")
}
