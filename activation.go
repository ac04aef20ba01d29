package vitrine

import (
	"context"
	"sync"

	"github.com/vitrinehq/vitrine/internal/trigger"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/experience"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/store"
	"github.com/vitrinehq/vitrine/pkg/transition"
)

// Activation is one live page view: a resolved experience, its signal
// store, the running triggers and the bound section behaviours.
type Activation struct {
	Resolved domain.ResolvedExperience
	Store    *store.Store

	engine       *Engine
	stopTriggers func()
	unbinds      []func()
	once         sync.Once
}

// Activate resolves the experience for the given inputs and brings it
// live: a fresh store, the experience's triggers started against the
// engine's signal sources, and every section behaviour stack bound to the
// sink. Stop must be called on deactivation.
func (e *Engine) Activate(ctx context.Context, in experience.Inputs, sink ports.VariableSink) (*Activation, error) {
	resolved := e.composer.Resolve(ctx, in)

	st := store.New(store.WithPatchHook(e.hooks.OnStorePatch))

	frame := ports.FrameViewport
	if mode, ok := e.modes.Get(resolved.Mode); ok && mode.Contained {
		frame = ports.FrameContainer
	}

	triggers := trigger.ForKinds(resolved.Triggers, e.sources, frame, e.logger)
	stopTriggers, err := trigger.StartAll(triggers, st)
	if err != nil {
		return nil, err
	}

	a := &Activation{
		Resolved:     resolved,
		Store:        st,
		engine:       e,
		stopTriggers: stopTriggers,
	}

	if sink != nil {
		for section, stack := range resolved.SectionBehaviours {
			a.unbinds = append(a.unbinds, e.driver.Bind(st, section, stack, sink))
		}
	}

	if e.hooks.OnActivate != nil {
		e.hooks.OnActivate(resolved.ExperienceID)
	}
	e.logger.Info("experience activated",
		"experience", resolved.ExperienceID,
		"mode", resolved.Mode,
		"pending", resolved.Pending,
	)

	return a, nil
}

// Transition builds a transition instance for a target element, wired to
// this activation's reduced-motion signal. The bool reports whether the
// transition ID is registered; unknown IDs leave the caller to fall back.
func (a *Activation) Transition(id, target string, sink ports.StyleSink) (*transition.Instance, bool) {
	def, ok := a.engine.transitions.Get(id)
	if !ok {
		return nil, false
	}
	inst := transition.NewInstance(def, target, sink,
		transition.WithLogger(a.engine.logger),
		transition.WithReducedMotion(func() bool {
			return a.Store.Snapshot().ReducedMotion()
		}),
	)
	return inst, true
}

// PageTransition builds the instance for this activation's resolved page
// transition.
func (a *Activation) PageTransition(target string, sink ports.StyleSink) (*transition.Instance, bool) {
	return a.Transition(a.Resolved.Transition.TransitionID, target, sink)
}

// Stop releases the behaviour bindings and trigger subscriptions.
// Idempotent.
func (a *Activation) Stop() {
	a.once.Do(func() {
		for _, unbind := range a.unbinds {
			unbind()
		}
		a.stopTriggers()
	})
}
