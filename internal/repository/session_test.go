package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSessionStore(t *testing.T) {
	store := NewGormSessionStore(newTestDB(t))
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "s1", "country_code")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "s1", "country_code", `"IN"`, time.Hour))
	require.NoError(t, store.Set(ctx, "s1", "country_code", `"AE"`, time.Hour))
	require.NoError(t, store.Set(ctx, "s2", "country_code", `"US"`, time.Hour))

	val, ok, err := store.Get(ctx, "s1", "country_code")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"AE"`, val)

	require.NoError(t, store.Delete(ctx, "s1", "country_code", "bookmarks"))
	_, ok, err = store.Get(ctx, "s1", "country_code")
	require.NoError(t, err)
	assert.False(t, ok)

	// other sessions are untouched
	val, ok, err = store.Get(ctx, "s2", "country_code")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"US"`, val)
}

func TestGormSessionStore_Expiry(t *testing.T) {
	store := NewGormSessionStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "s1", "pending_order_id", `"ORD1"`, -time.Minute))
	require.NoError(t, store.Set(ctx, "s1", "bookmarks", `[]`, time.Hour))

	_, ok, err := store.Get(ctx, "s1", "pending_order_id")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := store.PurgeExpired(ctx, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, err = store.Get(ctx, "s1", "bookmarks")
	require.NoError(t, err)
	assert.True(t, ok)
}
