// Package experience resolves the effective experience configuration for a
// page: which experience runs, which behaviour stacks each section gets,
// and which page transition applies.
package experience

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

// FallbackExperienceID is the safe default used when nothing selects an
// experience or the selected one is still loading.
const FallbackExperienceID = "simple"

// FallbackTransitionID is the safe default page transition.
const FallbackTransitionID = "none"

// Inputs carries the configuration layers feeding one resolution.
type Inputs struct {
	Site domain.ExperienceConfig
	Page domain.ExperienceConfig

	// Dev is the development-only override surface; nil in production.
	Dev *domain.DevOverride
}

// Composer merges configuration layers against the registries.
type Composer struct {
	experiences *registry.Registry[domain.ExperienceDefinition]
	transitions *registry.Registry[domain.TransitionDefinition]
	logger      *slog.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger for resolution warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// NewComposer creates a composer over the experience and transition
// registries.
func NewComposer(
	experiences *registry.Registry[domain.ExperienceDefinition],
	transitions *registry.Registry[domain.TransitionDefinition],
	opts ...Option,
) *Composer {
	c := &Composer{
		experiences: experiences,
		transitions: transitions,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve produces the final effective configuration.
//
// Raw experience ID precedence: dev override > page > site > fallback.
// If the selected definition is not materialized yet, an async load is
// kicked off in the background and the fallback experience stands in with
// Pending set; rendering is never blocked on a load.
//
// Section behaviour merge is replacement, not concatenation: a page-level
// stack for a section key completely replaces the site-level stack, which
// in turn replaces the definition's default. A section's animation stack
// is a single ordered pipeline, not an accumulation.
func (c *Composer) Resolve(ctx context.Context, in Inputs) domain.ResolvedExperience {
	expID := c.pickExperienceID(in)

	def, pending := c.loadExperience(ctx, expID)
	if pending {
		expID = FallbackExperienceID
	}

	sections := make(map[string][]domain.BehaviourConfig, len(def.SectionBehaviours))
	for key, stack := range def.SectionBehaviours {
		sections[key] = stack
	}
	for key, stack := range in.Site.SectionBehaviours {
		sections[key] = stack
	}
	for key, stack := range in.Page.SectionBehaviours {
		sections[key] = stack
	}

	return domain.ResolvedExperience{
		ExperienceID:      expID,
		Mode:              def.Mode,
		SectionBehaviours: sections,
		Transition:        c.resolveTransition(in, def),
		Triggers:          def.Triggers,
		Pending:           pending,
	}
}

func (c *Composer) pickExperienceID(in Inputs) string {
	if in.Dev != nil && in.Dev.Experience != "" {
		return in.Dev.Experience
	}
	if in.Page.Experience != "" {
		return in.Page.Experience
	}
	if in.Site.Experience != "" {
		return in.Site.Experience
	}
	return FallbackExperienceID
}

// loadExperience tries a synchronous lookup first. On a miss it starts a
// background load (cached by the registry for the next resolve) and
// reports pending.
func (c *Composer) loadExperience(ctx context.Context, id string) (domain.ExperienceDefinition, bool) {
	if def, ok := c.experiences.Get(id); ok {
		return def, false
	}
	if id != FallbackExperienceID {
		go func() {
			if _, err := c.experiences.GetAsync(context.WithoutCancel(ctx), id); err != nil {
				c.logger.Warn("experience load failed", "id", id, "err", err)
			}
		}()
	}

	fallback, ok := c.experiences.Get(FallbackExperienceID)
	if !ok {
		c.logger.Warn("fallback experience missing, using empty definition")
		fallback = domain.ExperienceDefinition{ID: FallbackExperienceID}
	}
	return fallback, true
}

// transitionSettings are the per-instance overrides a transition selection
// may carry in site/page config. Durations are milliseconds.
type transitionSettings struct {
	ExitDurationMs  float64 `mapstructure:"exitDurationMs"`
	EntryDurationMs float64 `mapstructure:"entryDurationMs"`
	TimeoutMs       float64 `mapstructure:"timeoutMs"`
}

// resolveTransition applies the same precedence chain to the page
// transition: dev override > page > site > experience default > "none".
// Duration settings come from the winning selection's own settings before
// falling back to the transition definition's defaults.
func (c *Composer) resolveTransition(in Inputs, exp domain.ExperienceDefinition) domain.PageTransitionConfig {
	var selection *domain.TransitionSelection
	id := ""
	switch {
	case in.Dev != nil && in.Dev.Transition != "":
		id = in.Dev.Transition
	case in.Page.Transition != nil && in.Page.Transition.ID != "":
		selection = in.Page.Transition
		id = selection.ID
	case in.Site.Transition != nil && in.Site.Transition.ID != "":
		selection = in.Site.Transition
		id = selection.ID
	case exp.DefaultTransition != "":
		id = exp.DefaultTransition
	default:
		id = FallbackTransitionID
	}

	def, ok := c.transitions.Get(id)
	if !ok {
		c.logger.Warn("unknown transition, falling back", "id", id, "fallback", FallbackTransitionID)
		id = FallbackTransitionID
		def, _ = c.transitions.Get(id)
	}

	out := domain.PageTransitionConfig{
		TransitionID:         id,
		DefaultExitDuration:  def.Defaults.ExitDuration,
		DefaultEntryDuration: def.Defaults.EntryDuration,
		Timeout:              def.Defaults.Timeout,
		RespectReducedMotion: def.RespectReducedMotion,
	}

	if selection != nil && len(selection.Settings) > 0 {
		var s transitionSettings
		if err := mapstructure.Decode(selection.Settings, &s); err != nil {
			c.logger.Warn("invalid transition settings, using defaults", "id", id, "err", err)
			return out
		}
		if s.ExitDurationMs > 0 {
			out.DefaultExitDuration = time.Duration(s.ExitDurationMs) * time.Millisecond
		}
		if s.EntryDurationMs > 0 {
			out.DefaultEntryDuration = time.Duration(s.EntryDurationMs) * time.Millisecond
		}
		if s.TimeoutMs > 0 {
			out.Timeout = time.Duration(s.TimeoutMs) * time.Millisecond
		}
	}
	return out
}
