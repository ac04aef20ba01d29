// Package decorator resolves named decorator recipes into the effective
// event map and behaviour stack for one widget instance.
package decorator

import (
	"io"
	"log/slog"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

// Resolution is the deterministic output of resolving a widget's
// decorators: ready for the renderer to wire onto DOM event handlers.
type Resolution struct {
	Events     domain.EventMap
	Behaviours []domain.BehaviourConfig
}

// Resolver merges decorator references against their registered
// definitions. Resolution is pure: same refs + definitions, same output.
type Resolver struct {
	registry *registry.Registry[domain.DecoratorDefinition]
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for unknown-decorator warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a resolver backed by the given decorator registry.
func NewResolver(reg *registry.Registry[domain.DecoratorDefinition], opts ...Option) *Resolver {
	r := &Resolver{
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve iterates refs in order, merging each decorator's contribution,
// then merges the widget's explicit wiring last so explicit bindings win
// ordering conflicts (concatenated after decorator-derived ones, never
// overwriting them). Explicit behaviours append after decorator-derived
// ones for the same reason.
//
// An unknown decorator ID warns and is skipped; the rest of the
// composition still resolves.
func (r *Resolver) Resolve(refs []domain.DecoratorRef, explicitEvents domain.EventMap, explicitBehaviours []domain.BehaviourConfig) Resolution {
	events := domain.EventMap{}
	var behaviours []domain.BehaviourConfig

	for _, ref := range refs {
		def, ok := r.registry.Get(ref.ID)
		if !ok {
			r.logger.Warn("unknown decorator, skipped", "id", ref.ID)
			continue
		}

		params := def.Meta.Settings.Apply(ref.Params)
		overlayKeys := mergeOverlayKeys(def.DefaultOverlayKeys, ref.OverlayKeys)

		if def.Actions != nil {
			events = domain.MergeEventMaps(events, def.Actions(params, overlayKeys))
		}
		if def.Behaviours != nil {
			behaviours = append(behaviours, def.Behaviours(params)...)
		}
	}

	if len(explicitEvents) > 0 {
		events = domain.MergeEventMaps(events, explicitEvents)
	}
	behaviours = append(behaviours, explicitBehaviours...)

	return Resolution{Events: events, Behaviours: behaviours}
}

func mergeOverlayKeys(defaults, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}
