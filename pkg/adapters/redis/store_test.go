package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stepedge/concierge/pkg/adapters/redis"
	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/ports"
)

func newTestClient(t *testing.T) *backend.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "Failed to start miniredis")
	t.Cleanup(mr.Close)

	return backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_Contract(t *testing.T) {
	store := redis.NewFromClient(newTestClient(t))
	ports.RunSessionStoreContract(t, store)
}

func TestRedisStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithTTL(50*time.Millisecond))
	ctx := context.Background()

	sess := domain.NewSession()
	sess.Preferences.Category = "laptop"
	require.NoError(t, store.Save(ctx, "abc", sess))

	// Expired sessions disappear from Load and from List. The sleep lets the
	// index score lapse, FastForward expires the value key.
	time.Sleep(60 * time.Millisecond)
	mr.FastForward(time.Minute)

	_, err = store.Load(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	store := redis.NewFromClient(client, redis.WithPrefix("custom:"))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "xyz", domain.NewSession()))
	assert.True(t, mr.Exists("custom:xyz"), "Session should be stored under the custom prefix")
}
