// Package behaviour evaluates pure signal-state -> CSS-variable
// computations and binds them to the reactive store.
//
// Behaviours never touch the DOM. They only produce values that downstream
// styling consumes via variable substitution with fallbacks, so a missing
// or failed behaviour degrades to a static fallback value rather than a
// broken render. That compute/render separation is the system's core
// design invariant.
package behaviour

import (
	"io"
	"log/slog"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/registry"
	"github.com/vitrinehq/vitrine/pkg/store"
)

// Driver evaluates behaviour stacks against store snapshots.
type Driver struct {
	registry *registry.Registry[domain.BehaviourDefinition]
	logger   *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the logger for unknown-behaviour warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

// NewDriver creates a driver backed by the given behaviour registry.
func NewDriver(reg *registry.Registry[domain.BehaviourDefinition], opts ...Option) *Driver {
	d := &Driver{
		registry: reg,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Evaluate runs a behaviour stack against one snapshot and merges the
// outputs. The stack is a single ordered pipeline: a later behaviour
// writing the same variable wins. Unknown behaviour IDs warn and are
// skipped.
func (d *Driver) Evaluate(snap domain.Snapshot, stack []domain.BehaviourConfig) domain.Vars {
	out := domain.Vars{}
	for _, cfg := range stack {
		def, ok := d.registry.Get(cfg.ID)
		if !ok {
			d.logger.Warn("unknown behaviour, skipped", "id", cfg.ID)
			continue
		}
		if def.Compute == nil {
			continue
		}
		options := def.Meta.Settings.Apply(cfg.Options)
		for name, value := range def.Compute(snap, options) {
			out[name] = value
		}
	}
	return out
}

// Bind subscribes the stack to the store and pushes evaluated variables to
// the sink: once immediately with the current state, then on every patch.
// The returned stop function releases the subscription; one subscription
// per bind, guaranteed released on deactivation.
func (d *Driver) Bind(st *store.Store, target string, stack []domain.BehaviourConfig, sink ports.VariableSink) func() {
	emit := func(snap domain.Snapshot) {
		sink.ApplyVars(target, d.Evaluate(snap, stack))
	}
	emit(st.Snapshot())
	cancel := st.Subscribe(func(keys []string, snap domain.Snapshot) {
		emit(snap)
	})
	return cancel
}
