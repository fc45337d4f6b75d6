package auth

import (
	"testing"

	"passport/config"
	"passport/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher() service.PasswordHasher {
	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 4}} // min cost keeps tests fast
	return NewBcryptHasher(cfg)
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := newTestHasher()

	for _, password := range []string{"secret1", "anotherPassword9", "abc123"} {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, password, hash)

		ok, err := hasher.Check(password, hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestBcryptHasher_Mismatch(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("correcthorse")
	require.NoError(t, err)

	ok, err := hasher.Check("batterystaple", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltedHashesDiffer(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("samepassword")
	require.NoError(t, err)
	second, err := hasher.Hash("samepassword")
	require.NoError(t, err)

	// Embedded random salts make equal passwords hash differently.
	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	hasher := newTestHasher()

	ok, err := hasher.Check("whatever", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrMalformedHash)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	cfg := &config.Config{}
	hasher := NewBcryptHasher(cfg).(*bcryptHasher)

	assert.Equal(t, 10, hasher.cost)
}
