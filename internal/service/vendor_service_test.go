package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perkhub/loyalty/internal/apperr"
	"github.com/perkhub/loyalty/internal/model"
	"github.com/perkhub/loyalty/internal/service"
	"github.com/perkhub/loyalty/internal/service/servicetest"
)

func TestVendorCreate(t *testing.T) {
	svc := service.NewVendorService(servicetest.NewVendors())

	vendor, err := svc.Create(context.Background(), "Blue Bottle", model.VendorTypeCafe)
	require.NoError(t, err)
	assert.NotEmpty(t, vendor.ID)
	assert.Equal(t, model.VendorTypeCafe, vendor.Type)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "Blue Bottle", model.VendorTypeRestaurant)
		require.Error(t, err)
		assert.True(t, apperr.IsCode(err, apperr.CodeExistingVendor))
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "   ", model.VendorTypeCafe)
		assert.True(t, apperr.IsCode(err, apperr.CodeMissingInput))
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "Corner Shop", "KIOSK")
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidEnumValue))
	})
}

func TestVendorUpdate(t *testing.T) {
	svc := service.NewVendorService(servicetest.NewVendors())
	vendor, err := svc.Create(context.Background(), "Blue Bottle", model.VendorTypeCafe)
	require.NoError(t, err)

	t.Run("change type, keep name", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), vendor.ID, "", model.VendorTypeRestaurant)
		require.NoError(t, err)
		assert.Equal(t, "Blue Bottle", updated.Name)
		assert.Equal(t, model.VendorTypeRestaurant, updated.Type)
	})

	t.Run("invalid type", func(t *testing.T) {
		_, err := svc.Update(context.Background(), vendor.ID, "", "KIOSK")
		assert.True(t, apperr.IsCode(err, apperr.CodeInvalidEnumValue))
	})

	t.Run("unknown vendor", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "nope", "x", model.VendorTypeCafe)
		assert.True(t, apperr.IsCode(err, apperr.CodeVendorNotFound))
	})
}

func TestVendorAllOrdering(t *testing.T) {
	svc := service.NewVendorService(servicetest.NewVendors())
	for _, name := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), name, model.VendorTypeCafe)
		require.NoError(t, err)
	}

	all, err := svc.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "first", all[0].Name)
	assert.Equal(t, "third", all[2].Name)
}

func TestVendorDelete(t *testing.T) {
	svc := service.NewVendorService(servicetest.NewVendors())
	vendor, err := svc.Create(context.Background(), "Blue Bottle", model.VendorTypeCafe)
	require.NoError(t, err)

	deleted, err := svc.Delete(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), vendor.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
