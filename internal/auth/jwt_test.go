package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthenticator() *JWTAuthenticator {
	return NewJWTAuthenticator("access-secret", "refresh-secret", "WanderCritic", time.Hour, 2*time.Hour)
}

func TestGenerateAndValidate(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(42, "traveller")
	require.NoError(t, err)

	tok, err := a.ValidateAccessToken(access)
	require.NoError(t, err)
	id, err := SubjectID(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	rtok, err := a.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	id, err = SubjectID(rtok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestValidate_RejectsWrongSecret(t *testing.T) {
	a := newTestAuthenticator()

	access, refresh, err := a.GenerateTokens(1, "traveller")
	require.NoError(t, err)

	_, err = a.ValidateRefreshToken(access)
	assert.Error(t, err)
	_, err = a.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidate_RejectsExpired(t *testing.T) {
	a := newTestAuthenticator()
	issued := time.Now().Add(-3 * time.Hour)
	a.now = func() time.Time { return issued }

	access, _, err := a.GenerateTokens(1, "traveller")
	require.NoError(t, err)

	a.now = time.Now
	_, err = a.ValidateAccessToken(access)
	assert.Error(t, err)
}
