package domain

import "time"

// EffectMode selects how a transition definition is realized.
type EffectMode string

const (
	// EffectCSS toggles exit/entry CSS classes and lets the compositor run
	// the animation. Cheap, no per-frame work.
	EffectCSS EffectMode = "css"
	// EffectTimeline drives the styles imperatively through a timeline,
	// enabling precise sequencing and symmetric reverse.
	EffectTimeline EffectMode = "timeline"
)

// StyleState is a declarative style snapshot, property -> value
// (e.g. "clip-path" -> "inset(0 0 100% 0)", "opacity" -> "0").
type StyleState map[string]string

// TransitionDefaults carries a transition's timing configuration.
// Timeout is a fail-safe: if the animation engine stalls, the consumer
// proceeds after Timeout instead of hanging. It is not a cancellation.
type TransitionDefaults struct {
	ExitDuration  time.Duration `json:"exitDuration" yaml:"exitDuration" mapstructure:"exitDuration"`
	EntryDuration time.Duration `json:"entryDuration" yaml:"entryDuration" mapstructure:"entryDuration"`
	Timeout       time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
	Ease          string        `json:"ease,omitempty" yaml:"ease,omitempty" mapstructure:"ease"`
}

// TransitionDefinition describes an entry/exit animation declaratively.
// InitialState/FinalState are pure and DOM-free, so the same definition can
// drive either a CSS class toggle or an imperative animation engine.
type TransitionDefinition struct {
	ID       string             `json:"id" yaml:"id"`
	Meta     Meta               `json:"meta" yaml:"meta"`
	Defaults TransitionDefaults `json:"defaults" yaml:"defaults"`

	// RespectReducedMotion collapses durations to near-instant when the
	// user's system preference requests reduced motion.
	RespectReducedMotion bool `json:"respectReducedMotion" yaml:"respectReducedMotion"`

	// ExitClass/EntryClass are the class names applied in EffectCSS mode.
	ExitClass  string `json:"exitClass,omitempty" yaml:"exitClass,omitempty"`
	EntryClass string `json:"entryClass,omitempty" yaml:"entryClass,omitempty"`

	// SequencedContentFade forces content opacity to 0 before the reveal
	// starts and only fades it in after the reveal completes, producing a
	// strict two-stage reveal.
	SequencedContentFade bool `json:"sequencedContentFade,omitempty" yaml:"sequencedContentFade,omitempty"`

	Mode EffectMode `json:"effectMode" yaml:"effectMode"`

	InitialState func() StyleState `json:"-" yaml:"-"`
	FinalState   func() StyleState `json:"-" yaml:"-"`
}

// PageTransitionConfig is the boundary contract handed to whatever
// orchestrates actual page navigation.
type PageTransitionConfig struct {
	TransitionID         string        `json:"transitionId" yaml:"transitionId"`
	DefaultExitDuration  time.Duration `json:"defaultExitDuration" yaml:"defaultExitDuration"`
	DefaultEntryDuration time.Duration `json:"defaultEntryDuration" yaml:"defaultEntryDuration"`
	Timeout              time.Duration `json:"timeout" yaml:"timeout"`
	RespectReducedMotion bool          `json:"respectReducedMotion" yaml:"respectReducedMotion"`
}

// TransitionPhase tracks a single transition instance's lifecycle.
// Opening walks idle -> revealing -> revealed; closing walks revealed ->
// hiding -> hidden via timeline reverse, never a second independent
// animation, guaranteeing exact visual symmetry.
type TransitionPhase string

const (
	PhaseIdle      TransitionPhase = "idle"
	PhaseRevealing TransitionPhase = "revealing"
	PhaseRevealed  TransitionPhase = "revealed"
	PhaseHiding    TransitionPhase = "hiding"
	PhaseHidden    TransitionPhase = "hidden"
)
