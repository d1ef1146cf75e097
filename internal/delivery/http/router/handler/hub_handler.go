package handler

import (
	"log/slog"
	"net/http"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/middleware"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/response"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/entity"
	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HubHandler holds dependencies for hub management handlers.
type HubHandler struct {
	uc     usecase.HubUsecase
	logger *slog.Logger
}

// NewHubHandler is the constructor for HubHandler, injected by Fx.
func NewHubHandler(uc usecase.HubUsecase, logger *slog.Logger) *HubHandler {
	return &HubHandler{uc: uc, logger: logger}
}

type createHubRequest struct {
	Name         string  `json:"name" validate:"required"`
	Address      string  `json:"address"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	RadiusMeters float64 `json:"radius_meters" validate:"required,gt=0"`
	IsActive     *bool   `json:"is_active"`
}

type updateHubRequest struct {
	Name         *string  `json:"name"`
	Address      *string  `json:"address"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	RadiusMeters *float64 `json:"radius_meters"`
	IsActive     *bool    `json:"is_active"`
}

// CreateHub handles hub registration.
func (h *HubHandler) CreateHub(c echo.Context) error {
	var req createHubRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	hub, err := h.uc.CreateHub(c.Request().Context(), actorOf(c), &usecase.CreateHubInput{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     isActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, hub, "Hub created successfully")
}

// UpdateHub handles partial hub updates.
func (h *HubHandler) UpdateHub(c echo.Context) error {
	hubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub ID")
	}

	var req updateHubRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub input")
	}

	hub, err := h.uc.UpdateHub(c.Request().Context(), actorOf(c), hubID, &usecase.UpdateHubInput{
		Name:         req.Name,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, hub, "Hub updated successfully")
}

// DeleteHub handles hub deletion.
func (h *HubHandler) DeleteHub(c echo.Context) error {
	hubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub ID")
	}

	if err := h.uc.DeleteHub(c.Request().Context(), actorOf(c), hubID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Hub deleted successfully")
}

// GetHub retrieves a single hub.
func (h *HubHandler) GetHub(c echo.Context) error {
	hubID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid hub ID")
	}

	hub, err := h.uc.GetHub(c.Request().Context(), hubID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, hub, "")
}

// ListHubs lists hubs, optionally only the active ones.
func (h *HubHandler) ListHubs(c echo.Context) error {
	onlyActive := c.QueryParam("active") == "true"

	hubs, err := h.uc.ListHubs(c.Request().Context(), onlyActive)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, hubs, "")
}

// actorOf returns the authenticated actor. The auth middleware guarantees it
// is present on every protected route; a missing actor yields the zero value,
// whose empty role fails every policy check.
func actorOf(c echo.Context) entity.Actor {
	actor, _ := middleware.GetActor(c)

	return actor
}
