package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "userToken", "abc123")
	require.NoError(t, err)

	val, err := store.Get(ctx, "userToken")
	require.NoError(t, err)
	assert.Equal(t, "abc123", val)
}

func TestMemoryStore_GetMissingKey(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Remove(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "savedEmail", "a@b.com"))
	require.NoError(t, store.Remove(ctx, "savedEmail"))

	_, err := store.Get(ctx, "savedEmail")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_RemoveMissingKey(t *testing.T) {
	store := NewMemoryStore()

	// Removing an absent key is a no-op, not an error
	err := store.Remove(context.Background(), "missing")
	assert.NoError(t, err)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "userToken", "first"))
	require.NoError(t, store.Set(ctx, "userToken", "second"))

	val, err := store.Get(ctx, "userToken")
	require.NoError(t, err)
	assert.Equal(t, "second", val)
}
