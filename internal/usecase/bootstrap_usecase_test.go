package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"dukkan/internal/domain/entity"
)

func TestEnsureAdminCreatesThenPromotes(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	uc := NewBootstrapUseCase(store.Users, store.Settings)

	admin, created, err := uc.EnsureAdmin(ctx, AdminInput{Name: "Admin", Phone: "0770 000 0000", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "07700000000", admin.Phone)
	assert.True(t, admin.IsAdmin())

	merchant := addUser(t, store, "m1", "07711111111", entity.RoleCustomer)
	promoted, created, err := uc.EnsureAdmin(ctx, AdminInput{Name: "x", Phone: merchant.Phone, Password: "newpass"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "m1", promoted.ID)

	stored, err := store.Users.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpass")))
}

func TestSeedSettingsKeepsExistingValues(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	uc := NewBootstrapUseCase(store.Users, store.Settings)

	require.NoError(t, store.Settings.Set(ctx, &entity.AppSetting{
		Key: entity.DeliveryPriceDefaultKey, Value: "7000", Category: entity.SettingCategoryDelivery,
	}))

	written, err := uc.SeedSettings(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultSettings)-1, written)

	fee, err := store.Settings.Get(ctx, entity.DeliveryPriceDefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "7000", fee.Value)

	written, err = uc.SeedSettings(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultSettings), written)

	fee, err = store.Settings.Get(ctx, entity.DeliveryPriceDefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "5000", fee.Value)
}

func TestEnsureAdminRejectsWeakInput(t *testing.T) {
	store := newStore()
	uc := NewBootstrapUseCase(store.Users, store.Settings)

	_, _, err := uc.EnsureAdmin(context.Background(), AdminInput{Name: "a", Phone: "0770000000", Password: "123"})
	assert.Error(t, err)
}
