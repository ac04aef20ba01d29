package store

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

func TestPatchShallowMerge(t *testing.T) {
	s := New()

	s.Patch(map[string]any{domain.SignalScrollProgress: 0.5})
	s.Patch(map[string]any{domain.SignalCursorX: 120.0})

	got, ok := s.Get(domain.SignalScrollProgress)
	require.True(t, ok)
	assert.Equal(t, 0.5, got, "patching another key leaves siblings intact")

	got, ok = s.Get(domain.SignalCursorX)
	require.True(t, ok)
	assert.Equal(t, 120.0, got)
}

func TestPatchIsolationUnderConcurrentWriters(t *testing.T) {
	s := New()

	// Two independent triggers hammer their own keys concurrently; each
	// key must end up holding its own trigger's latest write.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i <= 1000; i++ {
			s.Patch(map[string]any{"A": i})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i <= 1000; i++ {
			s.Patch(map[string]any{"B": i})
		}
	}()
	wg.Wait()

	a, ok := s.Get("A")
	require.True(t, ok)
	b, ok := s.Get("B")
	require.True(t, ok)
	assert.Equal(t, 1000, a)
	assert.Equal(t, 1000, b)
}

func TestSubscribeReceivesKeysAndSnapshot(t *testing.T) {
	s := New()
	var gotKeys []string
	var gotSnap domain.Snapshot

	cancel := s.Subscribe(func(keys []string, snap domain.Snapshot) {
		gotKeys = keys
		gotSnap = snap
	})
	defer cancel()

	s.Patch(map[string]any{domain.SignalIsScrolling: true})

	assert.Equal(t, []string{domain.SignalIsScrolling}, gotKeys)
	assert.True(t, gotSnap.Bool(domain.SignalIsScrolling, false))
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := New()
	calls := 0
	cancel := s.Subscribe(func(keys []string, snap domain.Snapshot) { calls++ })

	s.Set("k", 1)
	cancel()
	cancel() // double-cancel is a no-op
	s.Set("k", 2)

	assert.Equal(t, 1, calls)
}

func TestSnapshotIsolatesVisibilityMap(t *testing.T) {
	s := New()
	s.Set(domain.SignalSectionVisibility, map[string]float64{"hero": 0.25})

	snap := s.Snapshot()
	snap[domain.SignalSectionVisibility].(map[string]float64)["hero"] = 0.99

	assert.Equal(t, 0.25, s.Snapshot().Visibility("hero"), "mutating a snapshot never writes back")
}

func TestPatchHook(t *testing.T) {
	var events []domain.PatchEvent
	s := New(WithPatchHook(func(ev domain.PatchEvent) { events = append(events, ev) }))

	s.Set(domain.SignalViewportHeight, 900.0)

	require.Len(t, events, 1)
	assert.Equal(t, []string{domain.SignalViewportHeight}, events[0].Keys)
}

func TestEmptyPatchIsNoOp(t *testing.T) {
	s := New()
	calls := 0
	defer s.Subscribe(func([]string, domain.Snapshot) { calls++ })()

	s.Patch(nil)
	s.Patch(map[string]any{})

	assert.Zero(t, calls)
}
