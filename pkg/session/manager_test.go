package session_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/internal/adapters/memory"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/session"
)

func TestManagerLoadOrStartCreatesSession(t *testing.T) {
	mgr := session.NewManager(memory.NewSnapshotStore())
	ctx := context.Background()

	created, err := mgr.LoadOrStart(ctx, "preview-1")
	require.NoError(t, err)
	assert.Equal(t, "preview-1", created.ID)
	assert.False(t, created.UpdatedAt.IsZero())

	// Second call resumes, not recreates.
	created.Overrides.Experience = "immersive"
	require.NoError(t, mgr.Save(ctx, created))

	resumed, err := mgr.LoadOrStart(ctx, "preview-1")
	require.NoError(t, err)
	assert.Equal(t, "immersive", resumed.Overrides.Experience)
}

func TestManagerStartGeneratesDistinctIDs(t *testing.T) {
	mgr := session.NewManager(memory.NewSnapshotStore())
	ctx := context.Background()

	first, err := mgr.Start(ctx)
	require.NoError(t, err)
	second, err := mgr.Start(ctx)
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestManagerLoadMissingSession(t *testing.T) {
	mgr := session.NewManager(memory.NewSnapshotStore())

	_, err := mgr.Load(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManagerOverrideMergesFields(t *testing.T) {
	mgr := session.NewManager(memory.NewSnapshotStore())
	ctx := context.Background()

	_, err := mgr.LoadOrStart(ctx, "preview-2")
	require.NoError(t, err)

	_, err = mgr.Override(ctx, "preview-2", domain.DevOverride{Experience: "immersive"})
	require.NoError(t, err)

	// Setting only the transition keeps the experience override.
	updated, err := mgr.Override(ctx, "preview-2", domain.DevOverride{Transition: "wipe"})
	require.NoError(t, err)
	assert.Equal(t, "immersive", updated.Overrides.Experience)
	assert.Equal(t, "wipe", updated.Overrides.Transition)
}

func TestManagerOverrideMissingSession(t *testing.T) {
	mgr := session.NewManager(memory.NewSnapshotStore())

	_, err := mgr.Override(context.Background(), "ghost", domain.DevOverride{Experience: "simple"})
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManagerDeleteAndList(t *testing.T) {
	mgr := session.NewManager(memory.NewSnapshotStore())
	ctx := context.Background()

	_, err := mgr.LoadOrStart(ctx, "a")
	require.NoError(t, err)
	_, err = mgr.LoadOrStart(ctx, "b")
	require.NoError(t, err)

	require.NoError(t, mgr.Delete(ctx, "a"))

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, "a")
	assert.Contains(t, ids, "b")
}

func TestManagerSerializesAccessPerSession(t *testing.T) {
	mgr := session.NewManager(memory.NewSnapshotStore())
	ctx := context.Background()

	var inside int
	var maxInside int
	var mu sync.Mutex

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = mgr.WithLock(ctx, "same-session", func(context.Context) error {
				mu.Lock()
				inside++
				if inside > maxInside {
					maxInside = inside
				}
				mu.Unlock()

				time.Sleep(2 * time.Millisecond)

				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInside, "critical sections for one session must not overlap")
}

// countingLocker records acquisitions and releases.
type countingLocker struct {
	mu       sync.Mutex
	locked   int
	unlocked int
	keys     []string
}

func (c *countingLocker) Lock(_ context.Context, key string, _ time.Duration) (ports.UnlockFunc, error) {
	c.mu.Lock()
	c.locked++
	c.keys = append(c.keys, key)
	c.mu.Unlock()
	return func(context.Context) error {
		c.mu.Lock()
		c.unlocked++
		c.mu.Unlock()
		return nil
	}, nil
}

func TestManagerUsesDistributedLocker(t *testing.T) {
	locker := &countingLocker{}
	mgr := session.NewManager(memory.NewSnapshotStore(), session.WithLocker(locker))
	ctx := context.Background()

	_, err := mgr.LoadOrStart(ctx, "replica-shared")
	require.NoError(t, err)
	require.NoError(t, mgr.Delete(ctx, "replica-shared"))

	assert.Equal(t, 2, locker.locked)
	assert.Equal(t, 2, locker.unlocked, "every acquisition must be released")
	assert.Equal(t, []string{"replica-shared", "replica-shared"}, locker.keys)
}
