package middleware

import (
	"log/slog"
	"net/http"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/delivery/http/response"
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	// Domain errors carry their own HTTP code and business error code.
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		m.respond(c, appErr.HTTPCode(), appErr.Message(), appErr.ErrorCode(), appErr.Details())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message, _ := httpErr.Message.(string)
		if message == "" {
			message = http.StatusText(httpErr.Code)
		}
		m.respond(c, httpErr.Code, message, "HTTP_ERROR", message)

		return
	}

	// Anything else is unexpected; log it and return a generic envelope.
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	m.respond(c, http.StatusInternalServerError, "Internal server error", "INTERNAL_ERROR", "unexpected error")
}

func (m *ErrorMiddleware) respond(c echo.Context, httpCode int, message, errorCode, details string) {
	err := c.JSON(httpCode, response.Response{
		Success: false,
		Code:    httpCode,
		Message: message,
		Error: &response.ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
	if err != nil {
		m.logger.Error("failed to write error response", slog.String("error", err.Error()))
	}
}
