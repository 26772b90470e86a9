package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	maker := NewMaker("test-secret", time.Hour)

	token, err := maker.GenerateToken("admin@investwisepro.com", "admin", "sess-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@investwisepro.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	maker := NewMaker("secret-one", time.Hour)
	token, err := maker.GenerateToken("alice@example.com", "user", "sess-2")
	require.NoError(t, err)

	other := NewMaker("secret-two", time.Hour)
	_, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	maker := NewMaker("test-secret", -time.Minute)
	token, err := maker.GenerateToken("alice@example.com", "user", "sess-3")
	require.NoError(t, err)

	_, err = maker.ParseToken(token)
	assert.Error(t, err)
}
