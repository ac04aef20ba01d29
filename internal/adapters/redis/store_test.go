package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/internal/adapters/redis"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisSnapshotStore_Contract(t *testing.T) {
	_, client := newTestClient(t)
	ports.RunSnapshotStoreContract(t, redis.NewFromClient(client))
}

func TestRedisSnapshotStore_Prefix(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("preview:test:"))

	session := domain.NewPreviewSession("abc")
	require.NoError(t, store.Save(context.Background(), session))

	assert.True(t, mr.Exists("preview:test:abc"), "session should be stored under the configured prefix")
}

func TestRedisSnapshotStore_TTL(t *testing.T) {
	mr, client := newTestClient(t)
	store := redis.NewFromClient(client, redis.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewPreviewSession("ephemeral")))

	// Past the TTL the key expires and the index prunes it on List.
	mr.FastForward(2 * time.Minute)

	_, err := store.Load(ctx, "ephemeral")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "ephemeral")
}
