package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kaiwenlim/fintrack-be/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", "fintrack-test", time.Hour)
	user := models.User{ID: 42, Email: "alice@example.com"}

	token, err := manager.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	identity, err := manager.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), identity.UserID)
	require.Equal(t, "alice@example.com", identity.Email)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := NewTokenManager("test-secret", "fintrack-test", -time.Minute)
	token, err := manager.Generate(models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-one", "fintrack-test", time.Hour)
	verifier := NewTokenManager("secret-two", "fintrack-test", time.Hour)

	token, err := issuer.Generate(models.User{ID: 7, Email: "x@y.z"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", "fintrack-test", time.Hour)
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := manager.Verify(tok)
		require.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}
