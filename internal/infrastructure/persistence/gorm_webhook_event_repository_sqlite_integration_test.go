//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/webhooks"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookEventSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	event := CreateTestWebhookEvent(t, "customer.subscription.updated")

	created, err := ctx.WebhookEventRepo.Create(context.Background(), event)
	require.NoError(t, err)
	assert.True(t, created)

	var createdModel models.WebhookEventModel
	err = ctx.DB.First(&createdModel, "id = ?", event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, event.Type, createdModel.Type)
	assert.Equal(t, string(webhooks.EventStatusReceived), createdModel.Status)
}

func TestWebhookEventSqliteRepository_Create_RedeliveryReportsFalse(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	event := CreateTestWebhookEvent(t, "invoice.paid")

	created, err := ctx.WebhookEventRepo.Create(context.Background(), event)
	require.NoError(t, err)
	require.True(t, created)

	created, err = ctx.WebhookEventRepo.Create(context.Background(), event)
	require.NoError(t, err)
	assert.False(t, created)

	var count int64
	require.NoError(t, ctx.DB.Model(&models.WebhookEventModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestWebhookEventSqliteRepository_Create_ValidationError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	invalidEvent := &webhooks.Event{} // Missing required fields

	created, err := ctx.WebhookEventRepo.Create(context.Background(), invalidEvent)
	assert.False(t, created)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestWebhookEventSqliteRepository_UpdateStatus(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	event := CreateTestWebhookEvent(t, "checkout.session.completed")

	created, err := ctx.WebhookEventRepo.Create(context.Background(), event)
	require.NoError(t, err)
	require.True(t, created)

	err = ctx.WebhookEventRepo.UpdateStatus(context.Background(), event.ID, webhooks.EventStatusProcessed, "")
	require.NoError(t, err)

	stored, err := ctx.WebhookEventRepo.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, webhooks.EventStatusProcessed, stored.Status)
	require.NotNil(t, stored.HandledAt)
	assert.WithinDuration(t, time.Now().UTC(), *stored.HandledAt, time.Minute)
}

func TestWebhookEventSqliteRepository_UpdateStatus_RecordsHandlerError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	event := CreateTestWebhookEvent(t, "customer.subscription.created")

	created, err := ctx.WebhookEventRepo.Create(context.Background(), event)
	require.NoError(t, err)
	require.True(t, created)

	err = ctx.WebhookEventRepo.UpdateStatus(context.Background(), event.ID, webhooks.EventStatusFailed, "missing customer mapping")
	require.NoError(t, err)

	stored, err := ctx.WebhookEventRepo.GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, webhooks.EventStatusFailed, stored.Status)
	assert.Equal(t, "missing customer mapping", stored.Error)
}

func TestWebhookEventSqliteRepository_UpdateStatus_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.WebhookEventRepo.UpdateStatus(context.Background(), "evt_missing", webhooks.EventStatusProcessed, "")
	assert.ErrorIs(t, err, webhooks.ErrNotFound)
}

func TestWebhookEventSqliteRepository_GetByID_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	event, err := ctx.WebhookEventRepo.GetByID(context.Background(), "evt_missing")
	assert.Nil(t, event)
	assert.ErrorIs(t, err, webhooks.ErrNotFound)
}

func TestWebhookEventSqliteRepository_List(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	now := time.Now().UTC()
	types := []string{"invoice.paid", "invoice.payment_failed", "customer.updated"}

	for i, eventType := range types {
		event := CreateTestWebhookEvent(t, eventType)
		event.ReceivedAt = now.Add(time.Duration(i) * time.Minute)

		created, err := ctx.WebhookEventRepo.Create(context.Background(), event)
		require.NoError(t, err)
		require.True(t, created)
	}

	// Newest first, bounded by limit
	events, err := ctx.WebhookEventRepo.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "customer.updated", events[0].Type)
	assert.True(t, events[0].ReceivedAt.After(events[1].ReceivedAt))
}
