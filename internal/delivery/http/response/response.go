// Package response defines the envelope every API reply is wrapped in.
// Success and failure share one shape so clients can branch on a single
// boolean instead of sniffing status codes.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the wire envelope for all endpoints.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo carries the machine-readable failure detail.
type ErrorInfo struct {
	Code    string `json:"code"`    // Business error code, e.g., "NOT_IN_QUEUE"
	Details string `json:"details"` // Detailed error description
}

// Success writes a successful envelope. An empty message falls back to
// a generic acknowledgement.
func Success(c echo.Context, statusCode int, data any, message string) error {
	if message == "" {
		message = "Success"
	}

	return c.JSON(statusCode, Response{
		Success: true,
		Code:    statusCode,
		Message: message,
		Data:    data,
	})
}

// Error writes a failure envelope. An empty message falls back to the
// standard status text for the code.
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return c.JSON(statusCode, Response{
		Success: false,
		Code:    statusCode,
		Message: message,
		Error: &ErrorInfo{
			Code:    errorCode,
			Details: details,
		},
	})
}

// BindingError reports a request that failed to bind or validate.
func BindingError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, "")
}
