package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer store.Close()

	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "room_token:abc", "room-id-1", time.Minute))

	val, ok := store.Get(ctx, "room_token:abc")
	assert.True(t, ok)
	assert.Equal(t, "room-id-1", val)

	_, ok = store.Get(ctx, "room_token:missing")
	assert.False(t, ok)

	require.NoError(t, store.Delete(ctx, "room_token:abc"))
	_, ok = store.Get(ctx, "room_token:abc")
	assert.False(t, ok)
}

func TestRedisStore_Expiration(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "key", "value", time.Minute))

	mr.FastForward(2 * time.Minute)

	_, ok := store.Get(ctx, "key")
	assert.False(t, ok)
}

func TestRedisStore_DownstreamFailureIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client)

	mr.Close()

	_, ok := store.Get(context.Background(), "key")
	assert.False(t, ok, "transport errors degrade to cache misses")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "value", time.Minute))

	val, ok := store.Get(ctx, "key")
	assert.True(t, ok)
	assert.Equal(t, "value", val)

	require.NoError(t, store.Delete(ctx, "key"))
	_, ok = store.Get(ctx, "key")
	assert.False(t, ok)
}

func TestMemoryStore_Expiration(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key", "value", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(ctx, "key")
	assert.False(t, ok)
}
