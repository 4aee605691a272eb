// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour, 24*time.Hour)

	token, err := manager.GenerateAccessToken(42, "olena@example.com", "olena")
	require.NoError(t, err)

	claims, err := manager.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "olena@example.com", claims.Email)
	require.Equal(t, "olena", claims.Username)
}

func TestExpiredToken(t *testing.T) {
	manager := NewJWTManager("0123456789abcdef0123456789abcdef", -time.Minute, time.Hour)

	token, err := manager.GenerateAccessToken(1, "a@b.c", "a")
	require.NoError(t, err)

	_, err = manager.VerifyToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenWrongSecret(t *testing.T) {
	manager := NewJWTManager("0123456789abcdef0123456789abcdef", time.Hour, time.Hour)
	other := NewJWTManager("fedcba9876543210fedcba9876543210", time.Hour, time.Hour)

	token, err := manager.GenerateAccessToken(1, "a@b.c", "a")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("")
	require.Error(t, err)

	_, err = ExtractTokenFromHeader("Basic abc")
	require.Error(t, err)
}

func TestPasswordHashAndCompare(t *testing.T) {
	manager := NewPasswordManager(4)

	hash, err := manager.HashPassword("perfume123")
	require.NoError(t, err)
	require.NotEqual(t, "perfume123", hash)

	require.NoError(t, manager.ComparePassword(hash, "perfume123"))
	require.Error(t, manager.ComparePassword(hash, "perfume124"))
}

func TestValidatePassword(t *testing.T) {
	manager := NewPasswordManager(4)

	require.NoError(t, manager.ValidatePassword("perfume123"))
	require.ErrorIs(t, manager.ValidatePassword("short1"), ErrWeakPassword)
	require.ErrorIs(t, manager.ValidatePassword("onlyletters"), ErrWeakPassword)
	require.ErrorIs(t, manager.ValidatePassword("12345678"), ErrWeakPassword)
}
