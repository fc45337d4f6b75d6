// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc     usecase.AccountUsecase
	logger *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler, injected by Fx.
func NewAccountHandler(uc usecase.AccountUsecase, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request. Binding targets a value
// struct so an empty or null body degrades to a zero input that validation
// rejects, never a nil pointer.
func (h *AccountHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Register(c.Request().Context(), &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "user created successfully")
}

// Login handles the login request. The issued token is returned both in the
// body and in the auth-token response header for legacy clients.
func (h *AccountHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	c.Response().Header().Set(middleware.HeaderAuthToken, output.Token)

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// GetInfo returns the authenticated user's public profile.
func (h *AccountHandler) GetInfo(c echo.Context) error {
	userID, err := h.authenticatedUserID(c)
	if err != nil {
		return err
	}

	user, err := h.uc.GetInfo(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// UpdateInfo rewrites the authenticated user's profile fields.
func (h *AccountHandler) UpdateInfo(c echo.Context) error {
	userID, err := h.authenticatedUserID(c)
	if err != nil {
		return err
	}

	var input usecase.UpdateInfoInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateInfo(c.Request().Context(), userID, &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Result, "Profile updated successfully")
}

// Delete removes the authenticated user's account. The body is optional.
func (h *AccountHandler) Delete(c echo.Context) error {
	userID, err := h.authenticatedUserID(c)
	if err != nil {
		return err
	}

	input := new(usecase.DeleteInput)
	if c.Request().ContentLength != 0 {
		if err := c.Bind(input); err != nil {
			return response.BindingError(c, "INVALID_INPUT", "Invalid delete input")
		}
	}

	if err := h.uc.Delete(c.Request().Context(), userID, input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "user deleted successfully")
}

// authenticatedUserID pulls the user id stored by the auth middleware.
func (h *AccountHandler) authenticatedUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return uuid.Nil, domainerrors.ErrTokenInvalid.WrapMessage("user id missing from request context")
	}

	return userID, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
