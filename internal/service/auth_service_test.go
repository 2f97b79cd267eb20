package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resourcio/resourcio/internal/config"
	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/repository"
)

func newAuthFixture(t *testing.T) (*AuthService, *repository.Store) {
	t.Helper()
	store, _ := repository.NewMemoryStore()

	hash, err := HashPassword("secret123")
	require.NoError(t, err)

	require.NoError(t, store.Users.CreateUser(context.Background(), &models.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: hash,
		Active:       true,
		Roles:        []string{"regular_user", "change_lead"},
	}))

	svc := NewAuthService(store.Users, config.AuthConfig{
		JWTSecret: "test-secret",
		TokenTTL:  time.Hour,
	})
	return svc, store
}

func TestLoginAndValidate(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, token, err := svc.Login(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.ElementsMatch(t, []string{"regular_user", "change_lead"}, claims.Roles)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, _, err := svc.Login(context.Background(), "alice@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newAuthFixture(t)

	// Unknown email and wrong password report the same error.
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	svc, store := newAuthFixture(t)

	hash, err := HashPassword("pw")
	require.NoError(t, err)
	require.NoError(t, store.Users.CreateUser(context.Background(), &models.User{
		ID: "user-2", Email: "bob@example.com", PasswordHash: hash, Active: false,
	}))

	_, _, err = svc.Login(context.Background(), "bob@example.com", "pw")
	assert.ErrorIs(t, err, ErrInactiveUser)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc, store := newAuthFixture(t)

	user, err := store.Users.GetUser(context.Background(), "user-1")
	require.NoError(t, err)

	other := NewAuthService(store.Users, config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour})
	token, err := other.GenerateToken(user)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	_, store := newAuthFixture(t)

	expired := NewAuthService(store.Users, config.AuthConfig{JWTSecret: "test-secret", TokenTTL: -time.Minute})
	user, err := store.Users.GetUser(context.Background(), "user-1")
	require.NoError(t, err)

	token, err := expired.GenerateToken(user)
	require.NoError(t, err)

	_, err = expired.ValidateToken(token)
	assert.Error(t, err)
}
