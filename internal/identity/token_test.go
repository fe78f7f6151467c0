package identity_test

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmorales/tour-builder/backend/internal/identity"
)

func newTestTokenManager() identity.TokenManager {
	return identity.NewTokenManager("test-secret", time.Hour)
}

func TestTokenManager_SignParse_Roundtrip(t *testing.T) {
	tm := newTestTokenManager()
	userID := uuid.New().String()

	token, err := tm.Sign(userID, "alice@example.com")
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestTokenManager_Parse_Tampered(t *testing.T) {
	tm := newTestTokenManager()
	token, err := tm.Sign(uuid.New().String(), "alice@example.com")
	require.NoError(t, err)

	// Flip a character in the payload segment.
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = tm.Parse(tampered)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestTokenManager_Parse_WrongSecret(t *testing.T) {
	token, err := newTestTokenManager().Sign(uuid.New().String(), "alice@example.com")
	require.NoError(t, err)

	other := identity.NewTokenManager("different-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, identity.ErrInvalidToken)
}

func TestTokenManager_Parse_Expired(t *testing.T) {
	tm := newTestTokenManager()
	token, err := tm.Sign(uuid.New().String(), "alice@example.com")
	require.NoError(t, err)

	tm.Now = func() time.Time { return time.Now().UTC().Add(2 * time.Hour) }
	_, err = tm.Parse(token)
	assert.ErrorIs(t, err, identity.ErrExpiredToken)
}

func TestTokenManager_Parse_Garbage(t *testing.T) {
	tm := newTestTokenManager()
	for _, token := range []string{"", "abc", "a.b", "a.b.c.d", "!!!.???.###"} {
		_, err := tm.Parse(token)
		assert.ErrorIs(t, err, identity.ErrInvalidToken, "token %q", token)
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", identity.BearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", identity.BearerToken("bearer abc123"))
	assert.Equal(t, "", identity.BearerToken(""))
	assert.Equal(t, "", identity.BearerToken("Bearer"))
	assert.Equal(t, "", identity.BearerToken("Basic dXNlcjpwYXNz"))
}
