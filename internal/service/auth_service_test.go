package service_test

import (
	"testing"

	"github.com/finance-tracker/internal/models"
	"github.com/finance-tracker/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	_, authService, _, _ := newServices(t)

	user, token, err := authService.Register(&service.RegisterRequest{
		Name:     "Alice",
		Email:    "Alice@Example.COM",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "USD", user.Currency)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	// Duplicate email, regardless of case
	_, _, err = authService.Register(&service.RegisterRequest{
		Name:     "Alice Again",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	assert.ErrorIs(t, err, service.ErrEmailTaken)

	// Login round-trips
	loggedIn, token, err := authService.Login(&service.LoginRequest{
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	// Wrong password and unknown email are indistinguishable
	_, _, err = authService.Login(&service.LoginRequest{Email: "alice@example.com", Password: "nope"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, _, err = authService.Login(&service.LoginRequest{Email: "ghost@example.com", Password: "nope"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthenticate(t *testing.T) {
	db, authService, _, _ := newServices(t)

	user, token, err := authService.Register(&service.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	resolved, err := authService.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)

	// Garbage token
	_, err = authService.Authenticate("not-a-token")
	assert.Error(t, err)

	// A valid token whose subject is gone is rejected
	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)
	_, err = authService.Authenticate(token)
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	_, authService, _, _ := newServices(t)

	user, _, err := authService.Register(&service.RegisterRequest{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	_, err = authService.UpdateProfile(user.ID, &service.UpdateProfileRequest{})
	assert.ErrorIs(t, err, service.ErrNoProfileUpdates)

	updated, err := authService.UpdateProfile(user.ID, &service.UpdateProfileRequest{
		Name:     "Alice B",
		Currency: "EUR",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "EUR", updated.Currency)
	// Email stays put
	assert.Equal(t, "alice@example.com", updated.Email)
}

func TestListUsers(t *testing.T) {
	db, authService, _, _ := newServices(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		createUser(t, db, email)
	}
	admin := createUser(t, db, "admin@example.com")
	require.NoError(t, db.Model(admin).Update("role", models.RoleAdmin).Error)

	users, total, err := authService.ListUsers(&service.ListUsersRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, users, 4)

	users, total, err = authService.ListUsers(&service.ListUsersRequest{Role: models.RoleAdmin, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)

	users, total, err = authService.ListUsers(&service.ListUsersRequest{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, users, 1)
	_ = users
}
