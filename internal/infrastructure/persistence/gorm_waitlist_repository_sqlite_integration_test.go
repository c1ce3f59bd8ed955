//go:build integration
// +build integration

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/Hempp/street-art-gallery/internal/domain/waitlist"
	"github.com/Hempp/street-art-gallery/internal/infrastructure/persistence/models"
	"github.com/Hempp/street-art-gallery/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitlistSqliteRepository_Create(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	entry := CreateTestWaitlistEntry(t, "first@example.com")

	created, err := ctx.WaitlistRepo.Create(context.Background(), entry)
	require.NoError(t, err)
	assert.True(t, created)

	var createdModel models.WaitlistEntryModel
	err = ctx.DB.First(&createdModel, "id = ?", entry.ID).Error
	require.NoError(t, err)
	assert.Equal(t, entry.Email, createdModel.Email)
	assert.Equal(t, entry.Name, createdModel.Name)
}

func TestWaitlistSqliteRepository_Create_DuplicateEmailKeepsOriginal(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	original := CreateTestWaitlistEntry(t, "repeat@example.com")
	created, err := ctx.WaitlistRepo.Create(context.Background(), original)
	require.NoError(t, err)
	require.True(t, created)

	duplicate := CreateTestWaitlistEntry(t, "repeat@example.com")
	duplicate.Name = "Second Signup"

	created, err = ctx.WaitlistRepo.Create(context.Background(), duplicate)
	require.NoError(t, err)
	assert.False(t, created)

	stored, err := ctx.WaitlistRepo.GetByEmail(context.Background(), "repeat@example.com")
	require.NoError(t, err)
	assert.Equal(t, original.ID, stored.ID)
	assert.Equal(t, original.Name, stored.Name)
}

func TestWaitlistSqliteRepository_Create_ValidationError(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	invalidEntry := &waitlist.Entry{} // Missing required fields

	created, err := ctx.WaitlistRepo.Create(context.Background(), invalidEntry)
	assert.False(t, created)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestWaitlistSqliteRepository_GetByEmail_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	entry, err := ctx.WaitlistRepo.GetByEmail(context.Background(), "missing@example.com")
	assert.Nil(t, entry)
	assert.ErrorIs(t, err, waitlist.ErrNotFound)
}

func TestWaitlistSqliteRepository_Position(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	now := time.Now().UTC()
	emails := []string{"first@example.com", "second@example.com", "third@example.com"}
	entries := make([]*waitlist.Entry, len(emails))

	for i, email := range emails {
		entry := CreateTestWaitlistEntry(t, email)
		entry.CreatedAt = now.Add(time.Duration(i) * time.Minute)
		entries[i] = entry

		created, err := ctx.WaitlistRepo.Create(context.Background(), entry)
		require.NoError(t, err)
		require.True(t, created)
	}

	for i, entry := range entries {
		position, err := ctx.WaitlistRepo.Position(context.Background(), entry)
		require.NoError(t, err)
		assert.Equal(t, i+1, position)
	}

	// Removing the head of the line moves everyone up
	require.NoError(t, ctx.WaitlistRepo.DeleteByEmail(context.Background(), "first@example.com"))

	position, err := ctx.WaitlistRepo.Position(context.Background(), entries[1])
	require.NoError(t, err)
	assert.Equal(t, 1, position)

	position, err = ctx.WaitlistRepo.Position(context.Background(), entries[2])
	require.NoError(t, err)
	assert.Equal(t, 2, position)
}

func TestWaitlistSqliteRepository_DeleteByEmail_NotFound(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	err := ctx.WaitlistRepo.DeleteByEmail(context.Background(), "missing@example.com")
	assert.ErrorIs(t, err, waitlist.ErrNotFound)
}

func TestWaitlistSqliteRepository_List_WithFiltersAndSorting(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	now := time.Now().UTC()

	landing := CreateTestWaitlistEntry(t, "landing@example.com")
	landing.Source = "landing"
	landing.CreatedAt = now.Add(-2 * time.Hour)

	press := CreateTestWaitlistEntry(t, "press@example.com")
	press.Source = "press"
	press.CreatedAt = now.Add(-1 * time.Hour)

	for _, entry := range []*waitlist.Entry{landing, press} {
		created, err := ctx.WaitlistRepo.Create(context.Background(), entry)
		require.NoError(t, err)
		require.True(t, created)
	}

	// Test filtering by source
	query := waitlist.NewEntryQuery()
	query.Source = "press"
	entries, err := ctx.WaitlistRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "press@example.com", entries[0].Email)

	// Test sorting
	query = waitlist.NewEntryQuery()
	query.SortOrder = "desc"
	sorted, err := ctx.WaitlistRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, sorted, 2)
	assert.True(t, sorted[0].CreatedAt.After(sorted[1].CreatedAt))

	// Test pagination
	query = waitlist.NewEntryQuery()
	query.Limit = 1
	query.Offset = 1
	paged, err := ctx.WaitlistRepo.List(context.Background(), query)
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestWaitlistSqliteRepository_List_InvalidQuery(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	query := waitlist.NewEntryQuery()
	query.SortBy = "source"

	entries, err := ctx.WaitlistRepo.List(context.Background(), query)
	assert.Nil(t, entries)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid query parameters")
}

func TestWaitlistSqliteRepository_Count(t *testing.T) {
	ctx := SetupTestDB(t, config.SqliteDbType)

	count, err := ctx.WaitlistRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	for i := 0; i < 3; i++ {
		entry := CreateTestWaitlistEntry(t, uuid.NewString()+"@example.com")
		created, err := ctx.WaitlistRepo.Create(context.Background(), entry)
		require.NoError(t, err)
		require.True(t, created)
	}

	count, err = ctx.WaitlistRepo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
