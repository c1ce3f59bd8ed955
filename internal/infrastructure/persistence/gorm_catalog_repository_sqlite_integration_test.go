//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogSqliteRepository_UpsertPrice(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	price := CreateTestPrice(t, TestPremiumPriceID, TestPremiumProductID, TestPremiumAmount, billing.TierPremium)

	err := ctx.CatalogRepo.UpsertPrice(context.Background(), price)
	require.NoError(t, err)

	stored, err := ctx.CatalogRepo.GetPriceByID(context.Background(), TestPremiumPriceID)
	require.NoError(t, err)
	assert.Equal(t, TestPremiumProductID, stored.ProductID)
	assert.Equal(t, int64(TestPremiumAmount), stored.UnitAmount)
	assert.Equal(t, billing.TierPremium, stored.Tier)
}

func TestCatalogSqliteRepository_UpsertPrice_UpdatesInPlace(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	price := CreateTestPrice(t, TestPremiumPriceID, TestPremiumProductID, TestPremiumAmount, billing.TierPremium)
	require.NoError(t, ctx.CatalogRepo.UpsertPrice(context.Background(), price))

	price.Active = false
	require.NoError(t, ctx.CatalogRepo.UpsertPrice(context.Background(), price))

	var count int64
	require.NoError(t, ctx.DB.Model(&models.PriceModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := ctx.CatalogRepo.GetPriceByID(context.Background(), TestPremiumPriceID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestCatalogSqliteRepository_UpsertPrice_ValidationError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	invalidPrice := &billing.Price{ID: "price_invalid"} // Missing required fields

	err := ctx.CatalogRepo.UpsertPrice(context.Background(), invalidPrice)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestCatalogSqliteRepository_GetPriceByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	price, err := ctx.CatalogRepo.GetPriceByID(context.Background(), "price_missing")
	assert.Nil(t, price)
	assert.ErrorIs(t, err, billing.ErrPriceNotFound)
}

func TestCatalogSqliteRepository_UpsertProduct(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	product := CreateTestProduct(t, TestPremiumProductID, "Gallery Premium")

	err := ctx.CatalogRepo.UpsertProduct(context.Background(), product)
	require.NoError(t, err)

	stored, err := ctx.CatalogRepo.GetProductByID(context.Background(), TestPremiumProductID)
	require.NoError(t, err)
	assert.Equal(t, "Gallery Premium", stored.Name)
	assert.True(t, stored.Active)
}

func TestCatalogSqliteRepository_UpsertProduct_UpdatesInPlace(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	product := CreateTestProduct(t, TestPremiumProductID, "Gallery Premium")
	require.NoError(t, ctx.CatalogRepo.UpsertProduct(context.Background(), product))

	product.Name = "Gallery Premium Monthly"
	product.Description = "Premium membership billed monthly"
	require.NoError(t, ctx.CatalogRepo.UpsertProduct(context.Background(), product))

	var count int64
	require.NoError(t, ctx.DB.Model(&models.ProductModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := ctx.CatalogRepo.GetProductByID(context.Background(), TestPremiumProductID)
	require.NoError(t, err)
	assert.Equal(t, "Gallery Premium Monthly", stored.Name)
	assert.Equal(t, "Premium membership billed monthly", stored.Description)
}

func TestCatalogSqliteRepository_GetProductByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	product, err := ctx.CatalogRepo.GetProductByID(context.Background(), "prod_missing")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, billing.ErrProductNotFound)
}

func TestCatalogSqliteRepository_ListPrices_OrderedByAmount(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	creator := CreateTestPrice(t, TestCreatorPriceID, TestCreatorProductID, TestCreatorAmount, billing.TierCreator)
	premium := CreateTestPrice(t, TestPremiumPriceID, TestPremiumProductID, TestPremiumAmount, billing.TierPremium)

	require.NoError(t, ctx.CatalogRepo.UpsertPrice(context.Background(), creator))
	require.NoError(t, ctx.CatalogRepo.UpsertPrice(context.Background(), premium))

	prices, err := ctx.CatalogRepo.ListPrices(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, prices, 2)
	assert.Equal(t, TestPremiumPriceID, prices[0].ID)
	assert.Equal(t, TestCreatorPriceID, prices[1].ID)
}

func TestCatalogSqliteRepository_ListPrices_ActiveOnly(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	active := CreateTestPrice(t, TestPremiumPriceID, TestPremiumProductID, TestPremiumAmount, billing.TierPremium)
	retired := CreateTestPrice(t, "price_premium_legacy", TestPremiumProductID, 799, billing.TierPremium)
	retired.Active = false

	require.NoError(t, ctx.CatalogRepo.UpsertPrice(context.Background(), active))
	require.NoError(t, ctx.CatalogRepo.UpsertPrice(context.Background(), retired))

	prices, err := ctx.CatalogRepo.ListPrices(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, prices, 1)
	assert.Equal(t, TestPremiumPriceID, prices[0].ID)
}

func TestCatalogSqliteRepository_ListProducts(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	premium := CreateTestProduct(t, TestPremiumProductID, "Gallery Premium")
	creator := CreateTestProduct(t, TestCreatorProductID, "Gallery Creator")

	require.NoError(t, ctx.CatalogRepo.UpsertProduct(context.Background(), premium))
	require.NoError(t, ctx.CatalogRepo.UpsertProduct(context.Background(), creator))

	products, err := ctx.CatalogRepo.ListProducts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, products, 2)
	// Ordered by name
	assert.Equal(t, "Gallery Creator", products[0].Name)
	assert.Equal(t, "Gallery Premium", products[1].Name)
}
