package handler

import (
	"log/slog"
	"net/http"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/response"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfessionalHandler holds dependencies for the professional's self-service
// handlers.
type ProfessionalHandler struct {
	queueUC        usecase.QueueUsecase
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewProfessionalHandler is the constructor for ProfessionalHandler, injected by Fx.
func NewProfessionalHandler(
	queueUC usecase.QueueUsecase,
	notificationUC usecase.NotificationUsecase,
	logger *slog.Logger,
) *ProfessionalHandler {
	return &ProfessionalHandler{
		queueUC:        queueUC,
		notificationUC: notificationUC,
		logger:         logger,
	}
}

type enterRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required"`
	Longitude *float64 `json:"longitude" validate:"required"`
}

// WhichHub reports the professional's binding and live queue entry.
func (h *ProfessionalHandler) WhichHub(c echo.Context) error {
	status, err := h.queueUC.WhichHub(c.Request().Context(), actorOf(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, status, "")
}

// Enter checks the professional into their hub's queue. An en-route
// professional checking in is processed as a return.
func (h *ProfessionalHandler) Enter(c echo.Context) error {
	var req enterRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid check-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.queueUC.Enter(c.Request().Context(), actorOf(c), &usecase.EnterInput{
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, result, "Check-in processed successfully")
}

// Exit removes the professional's own queue entry.
func (h *ProfessionalHandler) Exit(c echo.Context) error {
	if err := h.queueUC.Exit(c.Request().Context(), actorOf(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Left the queue successfully")
}

// MyPosition reports the professional's slot, neighbors and elapsed wait.
func (h *ProfessionalHandler) MyPosition(c echo.Context) error {
	view, err := h.queueUC.MyPosition(c.Request().Context(), actorOf(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// DrainNotification returns the professional's unread notification and marks
// it read.
func (h *ProfessionalHandler) DrainNotification(c echo.Context) error {
	notification, err := h.notificationUC.Drain(c.Request().Context(), actorOf(c).ProfessionalID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, notification, "")
}

// AckNotification marks the professional's notification read without
// returning it.
func (h *ProfessionalHandler) AckNotification(c echo.Context) error {
	if err := h.notificationUC.Ack(c.Request().Context(), actorOf(c).ProfessionalID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Notification acknowledged")
}
