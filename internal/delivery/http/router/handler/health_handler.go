// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness for load balancers and probes.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service healthy")
}
