package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docchat-cli/internal/core/domain"
)

func TestCreate_AssignsID(t *testing.T) {
	store := NewStore()
	record := &domain.DocumentRecord{OwnerID: "alice", Filename: "a.pdf"}

	require.NoError(t, store.Create(context.Background(), record))
	assert.NotEmpty(t, record.ID)

	got, err := store.Get(context.Background(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", got.Filename)
}

func TestGet_NotFound(t *testing.T) {
	store := NewStore()
	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListByOwner_NewestFirst(t *testing.T) {
	store := NewStore()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, name := range []string{"old.pdf", "mid.pdf", "new.pdf"} {
		require.NoError(t, store.Create(ctx, &domain.DocumentRecord{
			OwnerID:    "alice",
			Filename:   name,
			UploadedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, store.Create(ctx, &domain.DocumentRecord{OwnerID: "bob", Filename: "other.pdf"}))

	records, err := store.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "new.pdf", records[0].Filename)
	assert.Equal(t, "old.pdf", records[2].Filename)
}

func TestDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	record := &domain.DocumentRecord{OwnerID: "alice"}
	require.NoError(t, store.Create(ctx, record))

	require.NoError(t, store.Delete(ctx, record.ID))
	_, err := store.Get(ctx, record.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, record.ID), domain.ErrNotFound)
}
