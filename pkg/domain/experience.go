package domain

// ExperienceDefinition is a registered experience: a mode plus the default
// behaviour assignment per section key. Section stacks are single ordered
// pipelines; overrides replace them wholesale, they never concatenate.
type ExperienceDefinition struct {
	ID   string `json:"id" yaml:"id"`
	Meta Meta   `json:"meta" yaml:"meta"`

	// Mode names the presentation mode this experience runs in.
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// SectionBehaviours maps a section key ("hero", "footer", "*") to its
	// default behaviour stack.
	SectionBehaviours map[string][]BehaviourConfig `json:"sectionBehaviours,omitempty" yaml:"sectionBehaviours,omitempty"`

	// Triggers lists the trigger kinds this experience needs. Empty means
	// the full built-in set.
	Triggers []string `json:"triggers,omitempty" yaml:"triggers,omitempty"`

	// DefaultTransition is the page transition used when neither site nor
	// page config selects one.
	DefaultTransition string `json:"defaultTransition,omitempty" yaml:"defaultTransition,omitempty"`
}

// ModeDefinition describes a presentation mode (standalone page, embedded
// preview, ...). Contained modes resolve pointer and viewport signals
// against a container root instead of the window.
type ModeDefinition struct {
	ID        string `json:"id" yaml:"id"`
	Meta      Meta   `json:"meta" yaml:"meta"`
	Contained bool   `json:"contained" yaml:"contained"`
}

// TransitionSelection picks a transition by ID with optional per-instance
// setting overrides sourced from site or page config.
type TransitionSelection struct {
	ID       string         `json:"id" yaml:"id" mapstructure:"id"`
	Settings map[string]any `json:"settings,omitempty" yaml:"settings,omitempty" mapstructure:"settings"`
}

// ExperienceConfig is the plain-data experience configuration carried at
// either site or page level. Zero values mean "not set here" and defer to
// the next level down the precedence chain.
type ExperienceConfig struct {
	Experience        string                       `json:"experience,omitempty" yaml:"experience,omitempty"`
	Transition        *TransitionSelection         `json:"transition,omitempty" yaml:"transition,omitempty"`
	SectionBehaviours map[string][]BehaviourConfig `json:"sectionBehaviours,omitempty" yaml:"sectionBehaviours,omitempty"`
}

// DevOverride is the development-only override surface: live switching of
// the active experience/transition by ID without a reload. Only consulted
// in non-production builds.
type DevOverride struct {
	Experience string `json:"experience,omitempty" yaml:"experience,omitempty"`
	Transition string `json:"transition,omitempty" yaml:"transition,omitempty"`
}

// ResolvedExperience is the final effective configuration for a page:
// the outcome of merging dev override > page > site > defaults.
type ResolvedExperience struct {
	ExperienceID      string                       `json:"experienceId"`
	Mode              string                       `json:"mode"`
	SectionBehaviours map[string][]BehaviourConfig `json:"sectionBehaviours"`
	Transition        PageTransitionConfig         `json:"transition"`
	Triggers          []string                     `json:"triggers"`

	// Pending is true while the experience definition is still loading and
	// the safe default is standing in; rendering is never blocked on a load.
	Pending bool `json:"pending,omitempty"`
}
