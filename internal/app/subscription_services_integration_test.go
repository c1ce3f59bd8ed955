//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/Hempp/street-art-gallery/internal/domain/billing"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionService_Upsert_IdempotentOnSubscriptionID(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	services.Gateway.SeedTierCatalog(t)
	ctx := context.Background()

	userID := uuid.NewString()
	subscription := persistence.CreateTestSubscription(t, userID, "cus_Idem001")

	require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

	// A redelivered event upserts the same subscription ID again
	subscription.Status = billing.SubscriptionStatusPastDue
	require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

	var count int64
	require.NoError(t, services.DBContext.DB.Model(&models.SubscriptionModel{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	stored, err := services.SubscriptionService.GetForUser(ctx, userID, subscription.ID)
	require.NoError(t, err)
	require.Equal(t, billing.SubscriptionStatusPastDue, stored.Status)
}

func TestSubscriptionService_Upsert_RefreshesProfileTier(t *testing.T) {
	t.Run("active premium subscription grants premium", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		services.Gateway.SeedTierCatalog(t)
		ctx := context.Background()

		userID := uuid.NewString()
		subscription := persistence.CreateTestSubscription(t, userID, "cus_Tier001")

		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		profile, err := services.ProfileService.Get(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, billing.TierPremium, profile.Tier)
	})

	t.Run("cancellation drops the member back to free", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		services.Gateway.SeedTierCatalog(t)
		ctx := context.Background()

		userID := uuid.NewString()
		subscription := persistence.CreateTestSubscription(t, userID, "cus_Tier002")
		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		subscription.Status = billing.SubscriptionStatusCanceled
		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		profile, err := services.ProfileService.Get(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, billing.TierFree, profile.Tier)
	})

	t.Run("unknown price keeps the member free", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		userID := uuid.NewString()
		subscription := persistence.CreateTestSubscription(t, userID, "cus_Tier003")
		subscription.PriceID = "price_retired_plan"

		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		profile, err := services.ProfileService.Get(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, billing.TierFree, profile.Tier)
	})
}

func TestSubscriptionService_GetForUser(t *testing.T) {
	t.Run("owner reads their subscription", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		userID := uuid.NewString()
		subscription := persistence.CreateTestSubscription(t, userID, "cus_Owner001")
		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		stored, err := services.SubscriptionService.GetForUser(ctx, userID, subscription.ID)
		require.NoError(t, err)
		require.Equal(t, subscription.ID, stored.ID)
	})

	t.Run("another user's subscription reads as missing", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		ownerID := uuid.NewString()
		intruderID := uuid.NewString()
		subscription := persistence.CreateTestSubscription(t, ownerID, "cus_Owner002")
		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		stored, err := services.SubscriptionService.GetForUser(ctx, intruderID, subscription.ID)
		require.Nil(t, stored)
		require.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
	})

	t.Run("unknown subscription returns not found", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		stored, err := services.SubscriptionService.GetForUser(ctx, uuid.NewString(), "sub_missing")
		require.Nil(t, stored)
		require.ErrorIs(t, err, billing.ErrSubscriptionNotFound)
	})
}

func TestSubscriptionService_ActiveForUser(t *testing.T) {
	t.Run("no subscriptions means no active subscription", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		active, err := services.SubscriptionService.ActiveForUser(ctx, uuid.NewString())
		require.NoError(t, err)
		require.Nil(t, active)
	})

	t.Run("canceled subscriptions do not count", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		userID := uuid.NewString()
		subscription := persistence.CreateTestSubscription(t, userID, "cus_Active001")
		subscription.Status = billing.SubscriptionStatusCanceled
		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		active, err := services.SubscriptionService.ActiveForUser(ctx, userID)
		require.NoError(t, err)
		require.Nil(t, active)
	})

	t.Run("trialing subscriptions count as active", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		userID := uuid.NewString()
		subscription := persistence.CreateTestSubscription(t, userID, "cus_Active002")
		subscription.Status = billing.SubscriptionStatusTrialing
		require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

		active, err := services.SubscriptionService.ActiveForUser(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, active)
		require.Equal(t, subscription.ID, active.ID)
	})
}

func TestSubscriptionService_SyncFromGateway(t *testing.T) {
	t.Run("mirrors every subscription of the customer", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		services.Gateway.SeedTierCatalog(t)
		ctx := context.Background()

		userID := uuid.NewString()
		customer := persistence.CreateTestCustomer(t, userID)
		require.NoError(t, services.DBContext.CustomerRepo.Upsert(ctx, customer))

		// The processor knows the customer only by its own ID
		current := persistence.CreateTestSubscription(t, "", customer.StripeCustomerID)
		previous := persistence.CreateTestSubscription(t, "", customer.StripeCustomerID)
		previous.Status = billing.SubscriptionStatusCanceled
		services.Gateway.Subscriptions[current.ID] = current
		services.Gateway.Subscriptions[previous.ID] = previous

		synced, err := services.SubscriptionService.SyncFromGateway(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, 2, synced)

		stored, err := services.SubscriptionService.GetForUser(ctx, userID, current.ID)
		require.NoError(t, err)
		require.Equal(t, userID, stored.UserID)

		profile, err := services.ProfileService.Get(ctx, userID)
		require.NoError(t, err)
		require.Equal(t, billing.TierPremium, profile.Tier)
	})

	t.Run("user without a customer record has nothing to sync", func(t *testing.T) {
		services := SetupTestServices(t, config.SqliteDbType)
		ctx := context.Background()

		synced, err := services.SubscriptionService.SyncFromGateway(ctx, uuid.NewString())
		require.Zero(t, synced)
		require.ErrorIs(t, err, billing.ErrCustomerNotFound)
	})
}

func TestSubscriptionService_List(t *testing.T) {
	services := SetupTestServices(t, config.SqliteDbType)
	ctx := context.Background()

	userID := uuid.NewString()
	subscription := persistence.CreateTestSubscription(t, userID, "cus_List001")
	require.NoError(t, services.SubscriptionService.Upsert(ctx, subscription))

	query := billing.NewSubscriptionQuery()
	query.UserID = userID
	subscriptions, err := services.SubscriptionService.List(ctx, query)
	require.NoError(t, err)
	require.Len(t, subscriptions, 1)

	// A nil query falls back to defaults
	all, err := services.SubscriptionService.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 1)
}
