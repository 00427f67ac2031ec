package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_Roundtrip(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := m.Generate(42, "user@example.com", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)
	require.Equal(t, "user@example.com", claims.Email)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, uint64(42), userID)
}

func TestTokenManager_RejectsEmptySecret(t *testing.T) {
	_, err := NewTokenManager("   ")
	require.Error(t, err)
}

func TestTokenManager_RejectsTamperedToken(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := m.Generate(42, "user@example.com", time.Hour)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = m.ParseAndValidate(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuerMgr, err := NewTokenManager("secret-a")
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret-b")
	require.NoError(t, err)

	token, err := issuerMgr.Generate(42, "user@example.com", time.Hour)
	require.NoError(t, err)

	_, err = verifier.ParseAndValidate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	token, err := m.Generate(42, "user@example.com", time.Millisecond)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, err = m.ParseAndValidate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsZeroTTL(t *testing.T) {
	m, err := NewTokenManager("test-secret")
	require.NoError(t, err)

	_, err = m.Generate(42, "user@example.com", 0)
	require.Error(t, err)
}

func TestHashToken_Stable(t *testing.T) {
	a := HashToken("some-token")
	b := HashToken("some-token")
	require.Equal(t, a, b)
	require.Len(t, a, 64)
	require.NotEqual(t, a, HashToken("other-token"))
}
