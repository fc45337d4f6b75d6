package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	echovalidator "passport/internal/delivery/http/validator"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	mockUC "passport/internal/mocks/usecase"
	"passport/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError
	e.Validator = echovalidator.New()

	return e
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	return resp
}

func TestAccountHandler_Register_Success(t *testing.T) {
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(nil)

	e := newTestEcho(t)
	h := NewAccountHandler(uc, slog.Default())

	body := `{"username":"testuser","firstName":"Test","lastName":"User","emailAddress":"test@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Register(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "user created successfully", resp.Message)
}

func TestAccountHandler_Register_Conflict(t *testing.T) {
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(domainerrors.ErrEmailAndUsernameTaken.WrapMessage("registration rejected"))

	e := newTestEcho(t)
	e.POST("/register", NewAccountHandler(uc, slog.Default()).Register)

	body := `{"username":"testuser","firstName":"Test","lastName":"User","emailAddress":"test@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMAIL_AND_USERNAME_TAKEN", resp.Error.Code)
	assert.Equal(t, "email and username already taken", resp.Message)
}

func TestAccountHandler_Register_ValidationFailure(t *testing.T) {
	// No usecase expectations: the validator rejects the input at the edge
	// before the usecase is ever reached.
	uc := mockUC.NewMockAccountUsecase(t)

	e := newTestEcho(t)
	e.POST("/register", NewAccountHandler(uc, slog.Default()).Register)

	body := `{"username":"testuser","firstName":"Test","lastName":"User","emailAddress":"test@example.com","password":"x"}`
	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "Password")
}

func TestAccountHandler_Register_EmptyBody(t *testing.T) {
	// An empty body must come back as a 400, never reach the usecase and
	// never panic the pipeline.
	uc := mockUC.NewMockAccountUsecase(t)

	e := newTestEcho(t)
	e.POST("/register", NewAccountHandler(uc, slog.Default()).Register)

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestAccountHandler_Register_NullBody(t *testing.T) {
	uc := mockUC.NewMockAccountUsecase(t)

	e := newTestEcho(t)
	e.POST("/register", NewAccountHandler(uc, slog.Default()).Register)

	req := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`null`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestAccountHandler_Login_EmptyBody(t *testing.T) {
	uc := mockUC.NewMockAccountUsecase(t)

	e := newTestEcho(t)
	e.POST("/login", NewAccountHandler(uc, slog.Default()).Login)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
}

func TestAccountHandler_Login_Success(t *testing.T) {
	userID := uuid.New()
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(&usecase.LoginOutput{Token: "signed.jwt.token", UserID: userID}, nil)

	e := newTestEcho(t)
	h := NewAccountHandler(uc, slog.Default())

	body := `{"emailAddress":"test@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	err := h.Login(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	// Legacy clients read the token from the response header.
	assert.Equal(t, "signed.jwt.token", rec.Header().Get(middleware.HeaderAuthToken))
	assert.Contains(t, rec.Body.String(), "signed.jwt.token")
}

func TestAccountHandler_Login_InvalidCredentials(t *testing.T) {
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed"))

	e := newTestEcho(t)
	e.POST("/login", NewAccountHandler(uc, slog.Default()).Login)

	body := `{"emailAddress":"test@example.com","password":"wrongpass"}`
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	assert.Empty(t, rec.Header().Get(middleware.HeaderAuthToken))
}

func TestAccountHandler_GetInfo_Success(t *testing.T) {
	userID := uuid.New()
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		GetInfo(mock.Anything, userID).
		Return(&entity.PublicUser{
			ID:       userID,
			Username: "testuser",
			Email:    "test@example.com",
		}, nil)

	e := newTestEcho(t)
	h := NewAccountHandler(uc, slog.Default())

	req := httptest.NewRequest(http.MethodGet, "/userInfo", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, userID)

	err := h.GetInfo(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "testuser")
	assert.NotContains(t, rec.Body.String(), "passwordHash")
}

func TestAccountHandler_GetInfo_MissingContextUserID(t *testing.T) {
	uc := mockUC.NewMockAccountUsecase(t)

	e := newTestEcho(t)
	e.GET("/userInfo", NewAccountHandler(uc, slog.Default()).GetInfo)

	req := httptest.NewRequest(http.MethodGet, "/userInfo", nil)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TOKEN_INVALID", resp.Error.Code)
}

func TestAccountHandler_UpdateInfo_Success(t *testing.T) {
	userID := uuid.New()
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		UpdateInfo(mock.Anything, userID, mock.AnythingOfType("*usecase.UpdateInfoInput")).
		Return(&usecase.UpdateInfoOutput{}, nil)

	e := newTestEcho(t)
	h := NewAccountHandler(uc, slog.Default())

	body := `{"username":"renamed","firstName":"Renamed","lastName":"User"}`
	req := httptest.NewRequest(http.MethodPut, "/updateInfo", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, userID)

	err := h.UpdateInfo(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountHandler_Delete_EmptyBody(t *testing.T) {
	userID := uuid.New()
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		Delete(mock.Anything, userID, mock.AnythingOfType("*usecase.DeleteInput")).
		Return(nil)

	e := newTestEcho(t)
	h := NewAccountHandler(uc, slog.Default())

	req := httptest.NewRequest(http.MethodDelete, "/userDelete", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextKeyUserID, userID)

	err := h.Delete(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "user deleted successfully", resp.Message)
}

func TestAccountHandler_Delete_ForeignID(t *testing.T) {
	userID := uuid.New()
	uc := mockUC.NewMockAccountUsecase(t)
	uc.EXPECT().
		Delete(mock.Anything, userID, mock.AnythingOfType("*usecase.DeleteInput")).
		Return(domainerrors.ErrOwnershipViolation.WrapMessage("delete rejected"))

	e := newTestEcho(t)
	e.DELETE("/userDelete", func(c echo.Context) error {
		c.Set(middleware.ContextKeyUserID, userID)

		return NewAccountHandler(uc, slog.Default()).Delete(c)
	})

	body := `{"userId":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodDelete, "/userDelete", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "OWNERSHIP_VIOLATION", resp.Error.Code)
}

func TestHealthCheck(t *testing.T) {
	e := newTestEcho(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	err := HealthCheck(e.NewContext(req, rec))

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
