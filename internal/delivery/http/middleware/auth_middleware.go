// Package middleware contains the HTTP middleware for the delivery layer.
package middleware

import (
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	"passport/internal/errors"

	"github.com/labstack/echo/v4"
)

// HeaderAuthToken is the request header carrying the bearer token. The name
// is part of the public API contract and must not change.
const HeaderAuthToken = "auth-token"

// ContextKeyUserID is the echo context key under which the authenticated
// user's id is stored for handlers.
const ContextKeyUserID = "userID"

// AuthMiddleware authenticates requests by verifying the bearer token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the auth-token header and stores the token subject
// on the request context. Failures surface as taxonomy errors so the HTTP
// error handler serializes them with distinct codes.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.Request().Header.Get(HeaderAuthToken)

		userID, err := m.tokenSvc.Verify(token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrTokenMissing):
				return domainerrors.ErrTokenMissing.WrapMessage("request not authenticated")
			case errors.Is(err, service.ErrTokenExpired):
				return domainerrors.ErrTokenExpired.WrapMessage("request not authenticated")
			default:
				return domainerrors.ErrTokenInvalid.WrapMessage("request not authenticated")
			}
		}

		c.Set(ContextKeyUserID, userID)

		return next(c)
	}
}
