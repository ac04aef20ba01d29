package timeline

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

func sleepTrack(d time.Duration, log *orderedLog, name string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return ctx.Err()
		}
		log.append(name)
		return nil
	}
}

type orderedLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *orderedLog) append(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, s)
}

func (l *orderedLog) get() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

func TestDuplicateTrackRejected(t *testing.T) {
	tl := New("test")
	var first, second atomic.Int32

	tl.AddTrack("x", func(ctx context.Context) error { first.Add(1); return nil })
	tl.AddTrack("x", func(ctx context.Context) error { second.Add(1); return nil })

	assert.Equal(t, 1, tl.Len())
	require.NoError(t, tl.Play(context.Background()))
	assert.Equal(t, int32(1), first.Load(), "only the first registration runs")
	assert.Zero(t, second.Load())
}

func TestPlayEmptyResolvesImmediately(t *testing.T) {
	tl := New("empty")
	done := make(chan error, 1)
	go func() { done <- tl.Play(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("empty timeline did not resolve immediately")
	}
}

func TestPlayParallelWaitsForSlowestTrack(t *testing.T) {
	tl := New("parallel")
	log := &orderedLog{}

	tl.AddTrack("fast", sleepTrack(50*time.Millisecond, log, "fast"))
	tl.AddTrack("slow", sleepTrack(200*time.Millisecond, log, "slow"))
	tl.AddTrack("mid", sleepTrack(100*time.Millisecond, log, "mid"))

	started := time.Now()
	require.NoError(t, tl.Play(context.Background()))
	elapsed := time.Since(started)

	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond, "resolves no earlier than the slowest track")
	assert.Less(t, elapsed, 350*time.Millisecond, "tracks ran concurrently, not summed")
	assert.ElementsMatch(t, []string{"fast", "slow", "mid"}, log.get(), "all tracks invoked")
}

func TestPlaySequentialStrictOrdering(t *testing.T) {
	tl := New("sequential")
	log := &orderedLog{}

	tl.AddSequentialTrack("A", 0, sleepTrack(0, log, "A"))
	tl.AddSequentialTrack("B", 50*time.Millisecond, sleepTrack(0, log, "B"))
	tl.AddSequentialTrack("C", 0, sleepTrack(0, log, "C"))

	started := time.Now()
	require.NoError(t, tl.PlaySequential(context.Background()))

	assert.Equal(t, []string{"A", "B", "C"}, log.get())
	assert.GreaterOrEqual(t, time.Since(started), 50*time.Millisecond, "B waited its delay")
}

func TestReentrantPlayDropped(t *testing.T) {
	tl := New("guarded")
	var executions atomic.Int32
	release := make(chan struct{})

	tl.AddTrack("blocker", func(ctx context.Context) error {
		executions.Add(1)
		<-release
		return nil
	})

	firstDone := make(chan error, 1)
	go func() { firstDone <- tl.Play(context.Background()) }()

	// Wait until the first play is in flight.
	require.Eventually(t, tl.IsPlaying, time.Second, time.Millisecond)

	reentrant := make(chan error, 1)
	go func() { reentrant <- tl.Play(context.Background()) }()

	select {
	case err := <-reentrant:
		require.NoError(t, err, "re-entrant call returns immediately")
	case <-time.After(100 * time.Millisecond):
		t.Fatal("re-entrant play blocked instead of dropping")
	}

	close(release)
	require.NoError(t, <-firstDone)
	assert.Equal(t, int32(1), executions.Load(), "no track executed twice")
}

func TestPlayCollectsAllTracksBeforeReturningError(t *testing.T) {
	tl := New("failing")
	boom := errors.New("track stalled")
	var siblingFinished atomic.Bool

	tl.AddTrack("bad", func(ctx context.Context) error { return boom })
	tl.AddTrack("good", func(ctx context.Context) error {
		time.Sleep(50 * time.Millisecond)
		siblingFinished.Store(true)
		return nil
	})

	err := tl.Play(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.True(t, siblingFinished.Load(), "a failing track does not strand its siblings")
}

func TestPlaySequentialStopsOnFirstError(t *testing.T) {
	tl := New("seq-fail")
	boom := errors.New("bad frame")
	log := &orderedLog{}

	tl.AddSequentialTrack("A", 0, func(ctx context.Context) error { log.append("A"); return nil })
	tl.AddSequentialTrack("B", 0, func(ctx context.Context) error { return boom })
	tl.AddSequentialTrack("C", 0, func(ctx context.Context) error { log.append("C"); return nil })

	err := tl.PlaySequential(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"A"}, log.get())
}

func TestPlaySequentialHonorsContextDuringDelay(t *testing.T) {
	tl := New("seq-ctx")
	tl.AddSequentialTrack("slow", time.Second, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := tl.PlaySequential(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClearDiscardsTracks(t *testing.T) {
	tl := New("reused")
	tl.AddTrack("a", func(ctx context.Context) error { t.Fatal("cleared track ran"); return nil })

	tl.Clear()
	assert.Zero(t, tl.Len())
	require.NoError(t, tl.Play(context.Background()))

	// The instance is reusable after Clear.
	var ran atomic.Bool
	tl.AddTrack("a", func(ctx context.Context) error { ran.Store(true); return nil })
	require.NoError(t, tl.Play(context.Background()))
	assert.True(t, ran.Load())
}

func TestRemoveTrack(t *testing.T) {
	tl := New("removal")
	tl.AddTrack("keep", func(ctx context.Context) error { return nil })
	tl.AddTrack("drop", func(ctx context.Context) error { t.Fatal("removed track ran"); return nil })

	tl.RemoveTrack("drop")
	tl.RemoveTrack("never-existed")

	assert.Equal(t, 1, tl.Len())
	require.NoError(t, tl.Play(context.Background()))
}

func TestTrackHooksObserveExecution(t *testing.T) {
	var started []string
	var done []domain.TrackEvent
	tl := New("observed", WithHooks(domain.LifecycleHooks{
		OnTrackStart: func(timelineID, trackID string) { started = append(started, trackID) },
		OnTrackDone:  func(ev domain.TrackEvent) { done = append(done, ev) },
	}))

	tl.AddSequentialTrack("only", 0, func(ctx context.Context) error { return nil })
	require.NoError(t, tl.PlaySequential(context.Background()))

	assert.Equal(t, []string{"only"}, started)
	require.Len(t, done, 1)
	assert.Equal(t, "observed", done[0].TimelineID)
	assert.NoError(t, done[0].Err)
}
