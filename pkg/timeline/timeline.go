// Package timeline coordinates N independent animation tracks, either all
// in parallel or in a delayed sequence.
//
// A Timeline represents exactly one in-flight orchestration: tracks are
// added imperatively, Play or PlaySequential is invoked once, then the
// instance is discarded or Clear()ed for reuse. Re-entrant play calls are
// dropped with a warning, not queued; a caller needing queued playback
// must observe completion before re-invoking.
package timeline

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

// Track is one independently executable animation unit. Delay only applies
// to sequential playback.
type Track struct {
	ID      string
	Delay   time.Duration
	Execute func(ctx context.Context) error
}

// Timeline is an ordered collection of tracks plus a playing flag.
// Not safe for concurrent mutation; one goroutine owns a timeline.
type Timeline struct {
	id      string
	tracks  []Track
	playing atomic.Bool
	logger  *slog.Logger
	hooks   domain.LifecycleHooks
}

// Option configures a Timeline.
type Option func(*Timeline)

// WithLogger sets the logger for coordination warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Timeline) {
		t.logger = logger
	}
}

// WithHooks registers observability callbacks for track execution.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(t *Timeline) {
		t.hooks = hooks
	}
}

// New creates an empty timeline. The id tags log lines and hook events;
// use something meaningful like "page-exit".
func New(id string, opts ...Option) *Timeline {
	t := &Timeline{
		id:     id,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// ID returns the timeline's identifier.
func (t *Timeline) ID() string { return t.id }

// Len reports the number of registered tracks.
func (t *Timeline) Len() int { return len(t.tracks) }

// AddTrack registers a parallel track. A duplicate ID is rejected with a
// warning and not inserted, so a track is never double-counted in
// completion semantics.
func (t *Timeline) AddTrack(id string, execute func(ctx context.Context) error) {
	t.add(Track{ID: id, Execute: execute})
}

// AddSequentialTrack registers a track with a pre-execution delay for
// sequential playback.
func (t *Timeline) AddSequentialTrack(id string, delay time.Duration, execute func(ctx context.Context) error) {
	t.add(Track{ID: id, Delay: delay, Execute: execute})
}

func (t *Timeline) add(track Track) {
	if t.playing.Load() {
		t.logger.Warn("track added while playing, dropped", "timeline", t.id, "track", track.ID)
		return
	}
	for _, existing := range t.tracks {
		if existing.ID == track.ID {
			t.logger.Warn("duplicate track id, dropped", "timeline", t.id, "track", track.ID)
			return
		}
	}
	t.tracks = append(t.tracks, track)
}

// RemoveTrack deletes the track with the given ID, if present.
func (t *Timeline) RemoveTrack(id string) {
	if t.playing.Load() {
		t.logger.Warn("track removed while playing, ignored", "timeline", t.id, "track", id)
		return
	}
	for i, track := range t.tracks {
		if track.ID == id {
			t.tracks = append(t.tracks[:i], t.tracks[i+1:]...)
			return
		}
	}
}

// Clear discards all tracks without executing them, resetting the timeline
// for reuse across unrelated events.
func (t *Timeline) Clear() {
	if t.playing.Load() {
		t.logger.Warn("clear while playing, ignored", "timeline", t.id)
		return
	}
	t.tracks = nil
}

// Play executes all tracks concurrently and returns once every track has
// settled. With no tracks it returns immediately. A second call while one
// is in flight is dropped with a warning.
//
// One track's failure does not abandon its siblings: every execute runs to
// completion and the first error is returned afterwards.
func (t *Timeline) Play(ctx context.Context) error {
	if !t.playing.CompareAndSwap(false, true) {
		t.logger.Warn("play ignored, timeline already playing", "timeline", t.id)
		return nil
	}
	defer t.playing.Store(false)

	if len(t.tracks) == 0 {
		return nil
	}

	var g errgroup.Group
	for _, track := range t.tracks {
		g.Go(func() error {
			return t.run(ctx, track)
		})
	}
	return g.Wait()
}

// PlaySequential executes tracks strictly in insertion order: wait the
// track's delay, await its execute, then move on. Track N+1 never starts
// before track N's delay-then-execute cycle fully completes. The first
// failure stops the sequence.
func (t *Timeline) PlaySequential(ctx context.Context) error {
	if !t.playing.CompareAndSwap(false, true) {
		t.logger.Warn("play ignored, timeline already playing", "timeline", t.id)
		return nil
	}
	defer t.playing.Store(false)

	for _, track := range t.tracks {
		if track.Delay > 0 {
			timer := time.NewTimer(track.Delay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
		if err := t.run(ctx, track); err != nil {
			return err
		}
	}
	return nil
}

// IsPlaying reports whether a play call is currently in flight.
func (t *Timeline) IsPlaying() bool {
	return t.playing.Load()
}

func (t *Timeline) run(ctx context.Context, track Track) error {
	if t.hooks.OnTrackStart != nil {
		t.hooks.OnTrackStart(t.id, track.ID)
	}
	started := time.Now()
	err := track.Execute(ctx)
	if t.hooks.OnTrackDone != nil {
		t.hooks.OnTrackDone(domain.TrackEvent{
			TimelineID: t.id,
			TrackID:    track.ID,
			Duration:   time.Since(started),
			Err:        err,
		})
	}
	if err != nil {
		t.logger.Warn("track failed", "timeline", t.id, "track", track.ID, "err", err)
	}
	return err
}
