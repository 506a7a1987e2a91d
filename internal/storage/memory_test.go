package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riftline/guidecrawl/internal/storage"
)

func testRecord(slug string) *storage.ContentRecord {
	return &storage.ContentRecord{
		Title:        "Yasuo Build Guide",
		Slug:         slug,
		CleanContent: "<p>Runes, items and matchups.</p>",
		Summary:      "A complete Yasuo guide.",
		Tags:         []string{"guides", "yasuo"},
		SourceURL:    "https://guides.example.com/articles/yasuo",
	}
}

func TestMemoryStoreCreate(t *testing.T) {
	store := storage.NewMemoryStore()

	persisted, err := store.Create(context.Background(), testRecord("yasuo-build-guide"))
	require.NoError(t, err)
	assert.NotEmpty(t, persisted.ID)
	assert.Equal(t, "yasuo-build-guide", persisted.Slug)
	assert.False(t, persisted.CreatedAt.IsZero())

	stored, ok := store.Get("yasuo-build-guide")
	require.True(t, ok)
	assert.Equal(t, "Yasuo Build Guide", stored.Title)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreRejectsDuplicateSlug(t *testing.T) {
	store := storage.NewMemoryStore()

	_, err := store.Create(context.Background(), testRecord("yasuo-build-guide"))
	require.NoError(t, err)

	_, err = store.Create(context.Background(), testRecord("yasuo-build-guide"))
	require.ErrorIs(t, err, storage.ErrDuplicateSlug)
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreDoesNotAliasCallerRecord(t *testing.T) {
	store := storage.NewMemoryStore()

	record := testRecord("yasuo-build-guide")
	_, err := store.Create(context.Background(), record)
	require.NoError(t, err)

	record.Title = "mutated after create"

	stored, ok := store.Get("yasuo-build-guide")
	require.True(t, ok)
	assert.Equal(t, "Yasuo Build Guide", stored.Title)
}
