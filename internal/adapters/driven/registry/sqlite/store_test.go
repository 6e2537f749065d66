package sqlite

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "docchat-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testRecord(ownerID, filename string, uploadedAt time.Time) *domain.DocumentRecord {
	return &domain.DocumentRecord{
		OwnerID:          ownerID,
		Filename:         filename,
		OriginalFilename: filename,
		SizeBytes:        1024,
		ChunkCount:       2,
		VectorIDs:        []string{"v-1", "v-2"},
		UploadedAt:       uploadedAt,
	}
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_MigrationsAreIdempotent(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "docchat-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening runs the migration check against an existing schema.
	store, err = NewStore(tempDir)
	require.NoError(t, err)
	assert.NoError(t, store.Close())
}

func TestCreate_AssignsID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	record := testRecord("alice", "report.pdf", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, store.Create(ctx, record))
	assert.NotEmpty(t, record.ID)

	got, err := store.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.OwnerID)
	assert.Equal(t, "report.pdf", got.Filename)
	assert.Equal(t, int64(1024), got.SizeBytes)
	assert.Equal(t, 2, got.ChunkCount)
	assert.Equal(t, []string{"v-1", "v-2"}, got.VectorIDs)
}

func TestCreate_NilRecord(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.Create(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGet_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGet_LegacyRecordWithoutVectorIDs(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	// Simulate a record written before vector ids were tracked.
	_, err := store.db.ExecContext(ctx, `
		INSERT INTO documents
			(id, owner_id, filename, original_filename, size_bytes, chunk_count, vector_ids, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, NULL, ?)
	`, "legacy-1", "alice", "old.pdf", "old.pdf", 512, 1, time.Now().UTC())
	require.NoError(t, err)

	got, err := store.Get(ctx, "legacy-1")
	require.NoError(t, err)
	assert.Nil(t, got.VectorIDs)
	assert.False(t, got.HasVectorIDs())
}

func TestListByOwner_NewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	oldest := testRecord("alice", "a.pdf", base.Add(-2*time.Hour))
	middle := testRecord("alice", "b.pdf", base.Add(-1*time.Hour))
	newest := testRecord("alice", "c.pdf", base)
	other := testRecord("bob", "d.pdf", base)

	for _, r := range []*domain.DocumentRecord{oldest, middle, newest, other} {
		require.NoError(t, store.Create(ctx, r))
	}

	records, err := store.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "c.pdf", records[0].Filename)
	assert.Equal(t, "b.pdf", records[1].Filename)
	assert.Equal(t, "a.pdf", records[2].Filename)
}

func TestListByOwner_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	records, err := store.ListByOwner(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()

	record := testRecord("alice", "report.pdf", time.Now().UTC())
	require.NoError(t, store.Create(ctx, record))

	require.NoError(t, store.Delete(ctx, record.ID))

	_, err := store.Get(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
