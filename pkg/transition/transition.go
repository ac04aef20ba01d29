// Package transition drives entry/exit animations from declarative
// definitions.
//
// A definition's initial/final style states are pure and DOM-free; the
// driver realizes them either by toggling CSS classes (compositor-driven)
// or by sequencing style snapshots through a timeline (precise ordering,
// symmetric reverse). Closing always replays the opening timeline in
// reverse rather than running a second independent animation, so the hide
// is visually exact.
package transition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/timeline"
)

// reducedMotionFloor is the near-instant duration used when the user's
// system preference requests reduced motion.
const reducedMotionFloor = time.Millisecond

// EffectiveDurations returns the exit/entry durations the driver will use,
// honoring the definition's reduced-motion contract.
func EffectiveDurations(def domain.TransitionDefinition, prefersReduced bool) (exit, entry time.Duration) {
	exit, entry = def.Defaults.ExitDuration, def.Defaults.EntryDuration
	if def.RespectReducedMotion && prefersReduced {
		return reducedMotionFloor, reducedMotionFloor
	}
	return exit, entry
}

// Instance drives one transition through its lifecycle for one target.
// Opening walks idle -> revealing -> revealed; closing walks revealed ->
// hiding -> hidden. Create a fresh instance per orchestrated transition.
type Instance struct {
	def    domain.TransitionDefinition
	target string
	sink   ports.StyleSink
	logger *slog.Logger

	// reducedMotion is sampled at play time, mirroring the store signal.
	reducedMotion func() bool

	mu    sync.Mutex
	phase domain.TransitionPhase
}

// Option configures an Instance.
type Option func(*Instance)

// WithLogger sets the logger for lifecycle warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(i *Instance) {
		i.logger = logger
	}
}

// WithReducedMotion injects the reduced-motion sampler, typically bound to
// the store's prefersReducedMotion signal.
func WithReducedMotion(fn func() bool) Option {
	return func(i *Instance) {
		i.reducedMotion = fn
	}
}

// NewInstance creates a transition instance writing to sink.
func NewInstance(def domain.TransitionDefinition, target string, sink ports.StyleSink, opts ...Option) *Instance {
	i := &Instance{
		def:           def,
		target:        target,
		sink:          sink,
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		reducedMotion: func() bool { return false },
		phase:         domain.PhaseIdle,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Phase returns the instance's current lifecycle phase.
func (i *Instance) Phase() domain.TransitionPhase {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.phase
}

// Reveal plays the entry animation. Valid from idle or hidden; any other
// phase drops the call with a warning. On return the phase is revealed,
// even when the fail-safe timeout rescued a stalled animation.
func (i *Instance) Reveal(ctx context.Context) error {
	if !i.advance(domain.PhaseRevealing, domain.PhaseIdle, domain.PhaseHidden) {
		return nil
	}

	_, entry := EffectiveDurations(i.def, i.reducedMotion())
	err := i.play(ctx, i.def.InitialState, i.def.FinalState, i.def.EntryClass, entry, false)
	i.setPhase(domain.PhaseRevealed)
	return err
}

// Hide plays the exit by reversing the entry timeline. Valid from
// revealed only.
func (i *Instance) Hide(ctx context.Context) error {
	if !i.advance(domain.PhaseHiding, domain.PhaseRevealed) {
		return nil
	}

	exit, _ := EffectiveDurations(i.def, i.reducedMotion())
	// Reverse: final and initial states swap, content fades out first.
	err := i.play(ctx, i.def.FinalState, i.def.InitialState, i.def.ExitClass, exit, true)
	i.setPhase(domain.PhaseHidden)
	return err
}

func (i *Instance) play(ctx context.Context, from, to func() domain.StyleState, class string, duration time.Duration, reverse bool) error {
	if i.def.Defaults.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.def.Defaults.Timeout)
		defer cancel()
	}

	var err error
	switch i.def.Mode {
	case domain.EffectCSS:
		err = i.playCSS(ctx, from, to, class, duration)
	default:
		err = i.playTimeline(ctx, from, to, duration, reverse)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		// Fail-safe, not cancellation: a stalled animation must not hang
		// navigation. Proceed as if completed.
		i.logger.Warn("transition timed out, forcing completion",
			"transition", i.def.ID, "target", i.target, "timeout", i.def.Defaults.Timeout)
		i.applyState(to)
		return nil
	}
	return err
}

// playCSS applies the starting snapshot, toggles the phase class and lets
// the compositor animate; the driver only waits out the duration.
func (i *Instance) playCSS(ctx context.Context, from, to func() domain.StyleState, class string, duration time.Duration) error {
	i.applyState(from)
	if class != "" {
		i.sink.SetClass(i.target, class, true)
		defer i.sink.SetClass(i.target, class, false)
	}
	if err := wait(ctx, duration); err != nil {
		return err
	}
	i.applyState(to)
	return nil
}

// playTimeline sequences the style snapshots through a timeline. With
// SequencedContentFade the content opacity is forced to 0 before the wipe
// starts and only fades in after the wipe's track reports completion: a
// strict two-stage reveal.
func (i *Instance) playTimeline(ctx context.Context, from, to func() domain.StyleState, duration time.Duration, reverse bool) error {
	tl := timeline.New(fmt.Sprintf("%s:%s", i.def.ID, i.target), timeline.WithLogger(i.logger))

	sequencedFade := i.def.SequencedContentFade && !reverse
	if sequencedFade {
		i.sink.ApplyStyle(i.target+"/content", domain.StyleState{"opacity": "0"})
	}

	tl.AddSequentialTrack("wipe", 0, func(ctx context.Context) error {
		i.applyState(from)
		if err := wait(ctx, duration); err != nil {
			return err
		}
		i.applyState(to)
		return nil
	})

	if sequencedFade {
		tl.AddSequentialTrack("content-fade", 0, func(ctx context.Context) error {
			i.sink.ApplyStyle(i.target+"/content", domain.StyleState{"opacity": "1"})
			return wait(ctx, duration/2)
		})
	}

	return tl.PlaySequential(ctx)
}

func (i *Instance) applyState(state func() domain.StyleState) {
	if state == nil {
		return
	}
	i.sink.ApplyStyle(i.target, state())
}

// advance moves to next if the current phase is one of valid.
func (i *Instance) advance(next domain.TransitionPhase, valid ...domain.TransitionPhase) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, v := range valid {
		if i.phase == v {
			i.phase = next
			return true
		}
	}
	i.logger.Warn("transition call dropped, wrong phase",
		"transition", i.def.ID, "target", i.target, "phase", i.phase, "requested", next)
	return false
}

func (i *Instance) setPhase(p domain.TransitionPhase) {
	i.mu.Lock()
	i.phase = p
	i.mu.Unlock()
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
