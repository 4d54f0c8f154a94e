package snapshot

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, opts ...RedisOption) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client, opts...)
}

func TestRedisStore(t *testing.T) {
	storeTests(t, newTestRedisStore(t))
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	one := NewRedisStore(client, WithPrefix("station-1"))
	two := NewRedisStore(client, WithPrefix("station-2"))

	require.NoError(t, one.SaveSession(t.Context(), sampleSnapshot()))

	_, err := two.LoadSession(t.Context())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client, WithTTL(time.Minute))
	require.NoError(t, store.SaveSession(t.Context(), sampleSnapshot()))

	mr.FastForward(2 * time.Minute)

	_, err := store.LoadSession(t.Context())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_MalformedSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewRedisStore(client)
	require.NoError(t, mr.Set(store.sessionKey(), "not json"))

	_, err := store.LoadSession(t.Context())
	assert.ErrorIs(t, err, ErrMalformed)
}
