package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"backoffice/api/internal/models"
	"backoffice/api/internal/service"
)

func TestUpdateAccess(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	auth := service.NewAuthService(store, testConfig(), testLogger())
	accounts := service.NewUserService(store, testLogger())

	user, err := auth.Register(ctx, validRegistration("ada@x.com"))
	require.NoError(t, err)

	role := "admin"
	require.NoError(t, accounts.UpdateAccess(ctx, user.ID, service.AccessUpdate{Role: &role}))

	updated, err := accounts.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, models.UserRoleAdmin, updated.Role)
	require.False(t, updated.IsDisabled)

	bogus := "superuser"
	err = accounts.UpdateAccess(ctx, user.ID, service.AccessUpdate{Role: &bogus})
	require.ErrorIs(t, err, service.ErrValidation)

	err = accounts.UpdateAccess(ctx, user.ID, service.AccessUpdate{})
	require.ErrorIs(t, err, service.ErrValidation)

	err = accounts.UpdateAccess(ctx, "not-a-ksuid!", service.AccessUpdate{Role: &role})
	require.ErrorIs(t, err, service.ErrValidation)
}

func TestDisableIsSoft(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	auth := service.NewAuthService(store, testConfig(), testLogger())
	accounts := service.NewUserService(store, testLogger())

	user, err := auth.Register(ctx, validRegistration("ada@x.com"))
	require.NoError(t, err)

	require.NoError(t, accounts.Disable(ctx, user.ID))

	disabled, err := accounts.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.True(t, disabled.IsDisabled)

	// The record survives the disable.
	users, err := accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	auth := service.NewAuthService(store, testConfig(), testLogger())
	accounts := service.NewUserService(store, testLogger())

	_, err := auth.Register(ctx, validRegistration("ada@x.com"))
	require.NoError(t, err)

	address := "1 New Street"
	phone := "555-000-1111"
	require.NoError(t, accounts.UpdateProfile(ctx, "ada@x.com", service.ProfileUpdate{
		Address:     &address,
		PhoneNumber: &phone,
	}))

	updated, err := accounts.FindByEmail(ctx, "ada@x.com")
	require.NoError(t, err)
	require.Equal(t, "1 New Street", updated.Address)
	require.Equal(t, int64(5550001111), updated.PhoneNumber)

	err = accounts.UpdateProfile(ctx, "ada@x.com", service.ProfileUpdate{})
	require.ErrorIs(t, err, service.ErrValidation)

	err = accounts.UpdateProfile(ctx, "nobody@x.com", service.ProfileUpdate{Address: &address})
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestListOrderedBySequenceID(t *testing.T) {
	ctx := context.Background()
	store := newMemoryUserStore()
	auth := service.NewAuthService(store, testConfig(), testLogger())
	accounts := service.NewUserService(store, testLogger())

	for _, email := range []string{"one@x.com", "two@x.com", "three@x.com"} {
		_, err := auth.Register(ctx, validRegistration(email))
		require.NoError(t, err)
	}

	users, err := accounts.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)
	for i, user := range users {
		require.Equal(t, int64(i+1), user.UserID)
	}
}
