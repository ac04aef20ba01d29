package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/internal/adapters/redis"
)

func TestLocker_LockUnlock(t *testing.T) {
	mr, client := newTestClient(t)
	locker := redis.NewLocker(client, "preview:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-1", 5*time.Second)
	require.NoError(t, err)
	require.NotNil(t, unlock)
	assert.True(t, mr.Exists("preview:lock:session-1"))

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("preview:lock:session-1"))
}

func TestLocker_Contention(t *testing.T) {
	mr, client := newTestClient(t)
	locker1 := redis.NewLocker(client, "preview:")
	locker2 := redis.NewLocker(client, "preview:")
	ctx := context.Background()

	unlock1, err := locker1.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)

	// Second replica blocks on the held lock until its context expires.
	ctxTimeout, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
	defer cancel()
	_, err = locker2.Lock(ctxTimeout, "shared", 5*time.Second)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock1(ctx))

	unlock2, err := locker2.Lock(ctx, "shared", 5*time.Second)
	require.NoError(t, err)
	defer unlock2(ctx)
	assert.True(t, mr.Exists("preview:lock:shared"))
}

func TestLocker_UnlockOnlyReleasesOwnLock(t *testing.T) {
	mr, client := newTestClient(t)
	locker := redis.NewLocker(client, "preview:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "session-2", 5*time.Second)
	require.NoError(t, err)

	// Simulate expiry plus reacquisition by another holder.
	mr.Set("preview:lock:session-2", "someone-else")

	require.NoError(t, unlock(ctx))
	assert.True(t, mr.Exists("preview:lock:session-2"), "unlock must not delete a lock held by another value")
}
