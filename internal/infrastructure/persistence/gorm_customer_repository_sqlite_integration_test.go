//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerSqliteRepository_Upsert(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	customer := CreateTestCustomer(t, userID)

	err := ctx.CustomerRepo.Upsert(context.Background(), customer)
	require.NoError(t, err)

	var createdModel models.CustomerModel
	err = ctx.DB.First(&createdModel, "user_id = ?", userID).Error
	require.NoError(t, err)
	assert.Equal(t, customer.StripeCustomerID, createdModel.StripeCustomerID)
	assert.Equal(t, customer.Email, createdModel.Email)
}

func TestCustomerSqliteRepository_Upsert_UpdatesEmailInPlace(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	customer := CreateTestCustomer(t, userID)
	require.NoError(t, ctx.CustomerRepo.Upsert(context.Background(), customer))

	customer.Email = "renamed@example.com"
	require.NoError(t, ctx.CustomerRepo.Upsert(context.Background(), customer))

	var count int64
	require.NoError(t, ctx.DB.Model(&models.CustomerModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := ctx.CustomerRepo.GetByUserID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "renamed@example.com", stored.Email)
}

func TestCustomerSqliteRepository_Upsert_ValidationError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	invalidCustomer := &billing.Customer{} // Missing required fields

	err := ctx.CustomerRepo.Upsert(context.Background(), invalidCustomer)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestCustomerSqliteRepository_GetByStripeID(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	userID := uuid.NewString()
	customer := CreateTestCustomer(t, userID)
	require.NoError(t, ctx.CustomerRepo.Upsert(context.Background(), customer))

	stored, err := ctx.CustomerRepo.GetByStripeID(context.Background(), customer.StripeCustomerID)
	require.NoError(t, err)
	assert.Equal(t, userID, stored.UserID)
}

func TestCustomerSqliteRepository_GetByUserID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	customer, err := ctx.CustomerRepo.GetByUserID(context.Background(), uuid.NewString())
	assert.Nil(t, customer)
	assert.ErrorIs(t, err, billing.ErrCustomerNotFound)
}

func TestCustomerSqliteRepository_GetByStripeID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	customer, err := ctx.CustomerRepo.GetByStripeID(context.Background(), "cus_missing")
	assert.Nil(t, customer)
	assert.ErrorIs(t, err, billing.ErrCustomerNotFound)
}
