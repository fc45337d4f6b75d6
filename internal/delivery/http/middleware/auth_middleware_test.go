package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/service"
	mockSvc "passport/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeAuthenticate(t *testing.T, tokenSvc service.TokenService, token string) (echo.Context, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/userInfo", nil)
	if token != "" {
		req.Header.Set(HeaderAuthToken, token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return nil }
	err := NewAuthMiddleware(tokenSvc).Authenticate(next)(c)

	return c, err
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	userID := uuid.New()
	tokenSvc.EXPECT().Verify("valid.token").Return(userID, nil)

	c, err := invokeAuthenticate(t, tokenSvc, "valid.token")

	require.NoError(t, err)
	assert.Equal(t, userID, c.Get(ContextKeyUserID))
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("").Return(uuid.Nil, service.ErrTokenMissing)

	_, err := invokeAuthenticate(t, tokenSvc, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenMissing)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("stale.token").Return(uuid.Nil, service.ErrTokenExpired)

	_, err := invokeAuthenticate(t, tokenSvc, "stale.token")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	tokenSvc.EXPECT().Verify("garbage").Return(uuid.Nil, service.ErrTokenInvalid)

	_, err := invokeAuthenticate(t, tokenSvc, "garbage")

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}
