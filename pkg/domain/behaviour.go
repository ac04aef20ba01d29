package domain

// Vars is the declarative output of a behaviour: CSS custom property name
// ("--scroll-fade-opacity") to value ("0.45"). Downstream styling consumes
// these through variable substitution with fallbacks, so a missing
// behaviour degrades to a static value instead of a broken render.
type Vars map[string]string

// BehaviourFunc computes CSS variables from the current signal snapshot and
// the behaviour's effective options. It must be pure: no side effects, no
// DOM access, same inputs producing the same output.
type BehaviourFunc func(snap Snapshot, options map[string]any) Vars

// BehaviourDefinition pairs a behaviour's metadata with its compute function.
type BehaviourDefinition struct {
	ID      string        `json:"id" yaml:"id"`
	Meta    Meta          `json:"meta" yaml:"meta"`
	Compute BehaviourFunc `json:"-" yaml:"-"`
}
