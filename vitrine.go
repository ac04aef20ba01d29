package vitrine

import (
	"log/slog"

	"github.com/vitrinehq/vitrine/internal/logging"
	"github.com/vitrinehq/vitrine/pkg/behaviour"
	"github.com/vitrinehq/vitrine/pkg/decorator"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/experience"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/registry"
	"github.com/vitrinehq/vitrine/pkg/transition"
)

// Version is the library version, shown by the CLI banner.
const Version = "0.1.0"

// Engine is the high-level entry point. It owns the registries and the
// layers built on top of them, and activates experiences against a set of
// signal sources.
type Engine struct {
	decorators  *registry.Registry[domain.DecoratorDefinition]
	behaviours  *registry.Registry[domain.BehaviourDefinition]
	transitions *registry.Registry[domain.TransitionDefinition]
	experiences *registry.Registry[domain.ExperienceDefinition]
	modes       *registry.Registry[domain.ModeDefinition]

	resolver *decorator.Resolver
	driver   *behaviour.Driver
	composer *experience.Composer

	sources  ports.SignalSources
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	builtins bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for the engine and its layers.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSignalSources injects the signal capability bundle. Without it,
// activations resolve but no triggers start.
func WithSignalSources(sources ports.SignalSources) Option {
	return func(e *Engine) {
		e.sources = sources
	}
}

// WithoutBuiltins skips registering the built-in catalog. The fallback
// experience is still registered; composition depends on it.
func WithoutBuiltins() Option {
	return func(e *Engine) {
		e.builtins = false
	}
}

// New initializes an Engine with the built-in catalog registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:   logging.NewNop(),
		builtins: true,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.decorators = registry.New[domain.DecoratorDefinition]("decorators",
		registry.WithLogger[domain.DecoratorDefinition](e.logger),
		registry.WithMissHook[domain.DecoratorDefinition](e.hooks.OnRegistryMiss))
	e.behaviours = registry.New[domain.BehaviourDefinition]("behaviours",
		registry.WithLogger[domain.BehaviourDefinition](e.logger),
		registry.WithMissHook[domain.BehaviourDefinition](e.hooks.OnRegistryMiss))
	e.transitions = registry.New[domain.TransitionDefinition]("transitions",
		registry.WithLogger[domain.TransitionDefinition](e.logger),
		registry.WithMissHook[domain.TransitionDefinition](e.hooks.OnRegistryMiss))
	e.experiences = registry.New[domain.ExperienceDefinition]("experiences",
		registry.WithLogger[domain.ExperienceDefinition](e.logger),
		registry.WithMissHook[domain.ExperienceDefinition](e.hooks.OnRegistryMiss))
	e.modes = registry.New[domain.ModeDefinition]("modes",
		registry.WithLogger[domain.ModeDefinition](e.logger),
		registry.WithMissHook[domain.ModeDefinition](e.hooks.OnRegistryMiss))

	if e.builtins {
		decorator.RegisterBuiltins(e.decorators)
		behaviour.RegisterBuiltins(e.behaviours)
		transition.RegisterBuiltins(e.transitions)
	}
	// The fallback experience must exist even in a bare engine.
	experience.RegisterBuiltins(e.experiences, e.modes)

	e.resolver = decorator.NewResolver(e.decorators, decorator.WithLogger(e.logger))
	e.driver = behaviour.NewDriver(e.behaviours, behaviour.WithLogger(e.logger))
	e.composer = experience.NewComposer(e.experiences, e.transitions, experience.WithLogger(e.logger))

	return e
}

// Decorators returns the decorator registry.
func (e *Engine) Decorators() *registry.Registry[domain.DecoratorDefinition] { return e.decorators }

// Behaviours returns the behaviour registry.
func (e *Engine) Behaviours() *registry.Registry[domain.BehaviourDefinition] { return e.behaviours }

// Transitions returns the transition registry.
func (e *Engine) Transitions() *registry.Registry[domain.TransitionDefinition] { return e.transitions }

// Experiences returns the experience registry.
func (e *Engine) Experiences() *registry.Registry[domain.ExperienceDefinition] { return e.experiences }

// Modes returns the mode registry.
func (e *Engine) Modes() *registry.Registry[domain.ModeDefinition] { return e.modes }

// Resolver returns the decorator resolver.
func (e *Engine) Resolver() *decorator.Resolver { return e.resolver }

// Driver returns the behaviour driver.
func (e *Engine) Driver() *behaviour.Driver { return e.driver }

// Composer returns the experience composer.
func (e *Engine) Composer() *experience.Composer { return e.composer }

// ValidateConfig strictly checks a configuration layer against the
// registries: every referenced experience, transition and behaviour ID
// must be registered (or at least announced with metadata), and behaviour
// options must satisfy the behaviour's settings schema. The runtime stays
// lenient; this is the offline counterpart.
func (e *Engine) ValidateConfig(cfg domain.ExperienceConfig) []error {
	var errs []error

	if cfg.Experience != "" {
		if _, ok := e.experiences.Meta(cfg.Experience); !ok {
			errs = append(errs, &UnknownRefError{Registry: "experiences", ID: cfg.Experience})
		}
	}
	if cfg.Transition != nil && cfg.Transition.ID != "" {
		if _, ok := e.transitions.Meta(cfg.Transition.ID); !ok {
			errs = append(errs, &UnknownRefError{Registry: "transitions", ID: cfg.Transition.ID})
		}
	}
	for section, stack := range cfg.SectionBehaviours {
		for _, bc := range stack {
			meta, ok := e.behaviours.Meta(bc.ID)
			if !ok {
				errs = append(errs, &UnknownRefError{Registry: "behaviours", ID: bc.ID, Section: section})
				continue
			}
			if err := meta.Settings.Validate(bc.Options); err != nil {
				errs = append(errs, &BadOptionsError{ID: bc.ID, Section: section, Err: err})
			}
		}
	}
	return errs
}

// ValidateDecorators strictly checks decorator references.
func (e *Engine) ValidateDecorators(refs []domain.DecoratorRef) []error {
	var errs []error
	for _, ref := range refs {
		meta, ok := e.decorators.Meta(ref.ID)
		if !ok {
			errs = append(errs, &UnknownRefError{Registry: "decorators", ID: ref.ID})
			continue
		}
		if err := meta.Settings.Validate(ref.Params); err != nil {
			errs = append(errs, &BadOptionsError{ID: ref.ID, Err: err})
		}
	}
	return errs
}
