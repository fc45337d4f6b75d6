package auth

import (
	"testing"
	"time"

	"passport/config"
	"passport/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T) service.TokenService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret-key"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_IssueVerifyRoundTrip(t *testing.T) {
	svc := newTestTokenService(t)
	userID := uuid.New()

	token, err := svc.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	decoded, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID, decoded)
}

func TestJWTService_MissingToken(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.Verify("")
	assert.ErrorIs(t, err, service.ErrTokenMissing)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret-key"

	// A negative lifetime stands in for "issued 25 hours ago" without
	// sleeping through the default one-day expiry.
	expired := &jwtService{secret: []byte(cfg.SecretKey.Access), ttl: -25 * time.Hour}

	token, err := expired.Issue(uuid.New())
	require.NoError(t, err)

	_, err = expired.Verify(token)
	assert.ErrorIs(t, err, service.ErrTokenExpired)
}

func TestJWTService_WrongSecret(t *testing.T) {
	svc := newTestTokenService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "a-different-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	token, err := other.Issue(uuid.New())
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_RejectsUnsignedAlgorithm(t *testing.T) {
	svc := newTestTokenService(t)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestTokenService(t)

	_, err := svc.Verify("definitely.not.ajwt")
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}

func TestJWTService_SubjectMustBeUserID(t *testing.T) {
	secret := []byte("test-secret-key")
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString(secret)
	require.NoError(t, err)

	svc := &jwtService{secret: secret, ttl: time.Hour}
	_, err = svc.Verify(signed)
	assert.ErrorIs(t, err, service.ErrTokenInvalid)
}
