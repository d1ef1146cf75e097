package errors

import (
	"net/http"

	"github.com/Leonardodevcloud/tutts-backend-sub000/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Input validation errors
	ErrValidation = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION",
		"dados de entrada inválidos",
		"",
	)

	// Binding-related errors
	ErrNotBound = NewBaseError(
		http.StatusNotFound,
		"NOT_BOUND",
		"profissional não possui vínculo ativo com uma central",
		"",
	)

	ErrAlreadyBound = NewBaseError(
		http.StatusConflict,
		"ALREADY_BOUND",
		"profissional já possui vínculo ativo com outra central",
		"",
	)

	// Queue-related errors
	ErrDistanceExceeded = NewBaseError(
		http.StatusUnprocessableEntity,
		"DISTANCE_EXCEEDED",
		"fora do raio de check-in da central",
		"",
	)

	ErrAlreadyInQueue = NewBaseError(
		http.StatusConflict,
		"ALREADY_IN_QUEUE",
		"profissional já está na fila",
		"",
	)

	ErrNotInQueue = NewBaseError(
		http.StatusNotFound,
		"NOT_IN_QUEUE",
		"profissional não está na fila",
		"",
	)

	// Hub-related errors
	ErrHubNotFound = NewBaseError(
		http.StatusNotFound,
		"HUB_NOT_FOUND",
		"central não encontrada",
		"",
	)

	ErrHubHasActiveEntries = NewBaseError(
		http.StatusConflict,
		"HUB_HAS_ACTIVE_ENTRIES",
		"central possui profissionais na fila",
		"",
	)

	// Authorization errors
	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"operação permitida apenas para administradores",
		"",
	)

	// Notification-related errors
	ErrNoNotification = NewBaseError(
		http.StatusNotFound,
		"NO_NOTIFICATION",
		"nenhuma notificação pendente",
		"",
	)

	// General errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"recurso não encontrado",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"conflito de recurso",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"erro interno do sistema",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "falha na execução do banco de dados"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
