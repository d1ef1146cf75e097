// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	domainerrors "github.com/Leonardodevcloud/tutts-backend-sub000/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type echoValidator struct {
	validate *validator.Validate
}

// New builds the request body validator installed on the echo server.
func New() echo.Validator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks struct tags and converts failures to the domain's
// validation error so the error middleware renders them as 400s.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidation.WithDetails(err.Error())
	}

	return nil
}
