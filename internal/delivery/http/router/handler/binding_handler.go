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

// BindingHandler holds dependencies for binding management handlers.
type BindingHandler struct {
	uc     usecase.BindingUsecase
	logger *slog.Logger
}

// NewBindingHandler is the constructor for BindingHandler, injected by Fx.
func NewBindingHandler(uc usecase.BindingUsecase, logger *slog.Logger) *BindingHandler {
	return &BindingHandler{uc: uc, logger: logger}
}

type bindRequest struct {
	HubID          uuid.UUID `json:"hub_id" validate:"required"`
	ProfessionalID uuid.UUID `json:"professional_id" validate:"required"`
	DisplayName    string    `json:"display_name" validate:"required"`
}

// Bind assigns a professional to a hub.
func (h *BindingHandler) Bind(c echo.Context) error {
	var req bindRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid binding input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	binding, err := h.uc.Bind(c.Request().Context(), actorOf(c), &usecase.BindInput{
		HubID:          req.HubID,
		ProfessionalID: req.ProfessionalID,
		DisplayName:    req.DisplayName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, binding, "Professional bound successfully")
}

// Unbind releases a professional's binding and removes any live queue entry.
func (h *BindingHandler) Unbind(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professionalId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid professional ID")
	}

	if err := h.uc.Unbind(c.Request().Context(), actorOf(c), professionalID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Professional unbound successfully")
}

// Rebind atomically moves a professional to another hub.
func (h *BindingHandler) Rebind(c echo.Context) error {
	professionalID, err := uuid.Parse(c.Param("professionalId"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid professional ID")
	}

	var req bindRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid binding input")
	}
	req.ProfessionalID = professionalID
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	binding, err := h.uc.Rebind(c.Request().Context(), actorOf(c), &usecase.BindInput{
		HubID:          req.HubID,
		ProfessionalID: req.ProfessionalID,
		DisplayName:    req.DisplayName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, binding, "Professional rebound successfully")
}
