// Package validator bridges go-playground/validator into echo's Validator slot.
package validator

import (
	domainerrors "passport/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts a validator.Validate instance to echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates the echo validator used by c.Validate.
func New() echo.Validator {
	return &CustomValidator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate runs struct validation and maps failures onto the application
// error taxonomy so the HTTP error handler serializes them uniformly.
func (v *CustomValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
