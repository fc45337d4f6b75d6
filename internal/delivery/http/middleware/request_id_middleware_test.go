package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "passport/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenID string
	var seenLogger *slog.Logger
	err := m.Process(func(c echo.Context) error {
		ctx := c.Request().Context()
		seenID = deliverycontext.GetRequestID(c)
		seenLogger = deliverycontext.GetLogger(ctx)

		return nil
	})(c)

	require.NoError(t, err)
	assert.NotEmpty(t, seenID)
	assert.Equal(t, seenID, rec.Header().Get(deliverycontext.HeaderXRequestID))
	assert.NotNil(t, seenLogger)
}

func TestRequestIDMiddleware_KeepsClientID(t *testing.T) {
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(deliverycontext.HeaderXRequestID, "client-supplied-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := m.Process(func(c echo.Context) error { return nil })(c)

	require.NoError(t, err)
	assert.Equal(t, "client-supplied-id", rec.Header().Get(deliverycontext.HeaderXRequestID))
}
