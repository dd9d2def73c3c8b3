package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	ttl := 15 * time.Minute
	maker := NewMaker(secretKey, ttl)

	tests := []struct {
		name      string
		username  string
		useruid   string
		sessionID string
	}{
		{
			name:      "regular user",
			username:  "regular_user",
			useruid:   "a3b1c9d0-0000-0000-0000-000000000001",
			sessionID: "sess-1",
		},
		{
			name:      "user with email username",
			username:  "user@domain.com",
			useruid:   "a3b1c9d0-0000-0000-0000-000000000002",
			sessionID: "sess-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenStr, err := maker.GenerateToken(tt.username, tt.useruid, tt.sessionID)
			require.NoError(t, err)
			assert.NotEmpty(t, tokenStr)

			claims, err := maker.ParseToken(tokenStr)
			require.NoError(t, err)

			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.useruid, claims.UserUID)
			assert.Equal(t, tt.sessionID, claims.SessionID)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(ttl), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken("testuser", "uid", "sid")
	require.NoError(t, err)

	expiredMaker := NewMaker(secretKey, -time.Hour)
	expiredToken, err := expiredMaker.GenerateToken("testuser", "uid", "sid")
	require.NoError(t, err)

	wrongMaker := NewMaker("wrong_secret_key", 15*time.Minute)
	wrongSecretToken, err := wrongMaker.GenerateToken("testuser", "uid", "sid")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty token", token: ""},
		{name: "malformed token", token: "invalid.token.here"},
		{name: "expired token", token: expiredToken},
		{name: "wrong secret key", token: wrongSecretToken},
		{name: "tampered token", token: validToken + "tampered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewMaker("first_secret_key", 15*time.Minute)
	maker2 := NewMaker("different_secret_key", 15*time.Minute)

	tokenStr, err := maker1.GenerateToken("testuser", "uid", "sid")
	require.NoError(t, err)

	claims, err := maker2.ParseToken(tokenStr)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(tokenStr)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}
