/*
Package vitrine is a declarative experience orchestration engine for
websites: registries of behaviours, transitions, decorators and
experiences, a reactive signal store fed by trigger observers, and a
composition layer that merges site, page and dev-time configuration into
one resolved experience per page view.

The Engine facade wires the pieces together. A minimal consumer:

	engine := vitrine.New()
	activation, _ := engine.Activate(ctx, experience.Inputs{}, sink)
	defer activation.Stop()

Everything the engine computes is declarative output (CSS variables,
style snapshots, event maps); applying it to a real page is the
responsibility of the sink adapters.
*/
package vitrine
