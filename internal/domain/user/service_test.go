// internal/domain/user/service_test.go
package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/soulmedev/AromeNoir/internal/config"
	"github.com/soulmedev/AromeNoir/internal/pkg/auth"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	cfg := &config.Config{}
	cfg.Security.BcryptCost = 4
	return NewService(db, cfg)
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:    "olena@example.com",
		Username: "olena",
		Password: "perfume123",
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register(registerRequest())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.NotEqual(t, "perfume123", created.PasswordHash)

	authenticated, err := svc.Authenticate(&LoginRequest{
		Email:    "olena@example.com",
		Password: "perfume123",
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, authenticated.ID)
	require.NotNil(t, authenticated.LastLoginAt)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Username = "other"
	_, err = svc.Register(dup)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	dup := registerRequest()
	dup.Email = "other@example.com"
	_, err = svc.Register(dup)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := setupTestService(t)

	req := registerRequest()
	req.Password = "onlyletters"
	_, err := svc.Register(req)
	require.ErrorIs(t, err, auth.ErrWeakPassword)
}

func TestAuthenticateWrongPassword(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Authenticate(&LoginRequest{
		Email:    "olena@example.com",
		Password: "wrongpass1",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(&LoginRequest{
		Email:    "nobody@example.com",
		Password: "perfume123",
	})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc := setupTestService(t)

	created, err := svc.Register(registerRequest())
	require.NoError(t, err)

	firstName := "Olena"
	phone := "+380501112233"
	updated, err := svc.UpdateProfile(created.ID, &UpdateProfileRequest{
		FirstName: &firstName,
		Phone:     &phone,
	})
	require.NoError(t, err)
	require.Equal(t, "Olena", updated.FirstName)
	require.Equal(t, "+380501112233", updated.Phone)

	reloaded, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	require.Equal(t, "Olena", reloaded.FirstName)
}
