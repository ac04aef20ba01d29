package domain

// ActionBinding identifies a target action for a DOM event, e.g. "modal.open".
type ActionBinding = string

// EventMap maps an event name ("click", "mouseenter", ...) to one binding
// (string) or several (ordered []string). The renderer wires every binding.
type EventMap map[string]any

// Bindings normalizes the entry for an event to an ordered slice.
func (m EventMap) Bindings(event string) []ActionBinding {
	switch v := m[event].(type) {
	case string:
		return []ActionBinding{v}
	case []ActionBinding:
		return v
	default:
		return nil
	}
}

// MergeEventMaps combines two event maps. For an event bound in both, the
// bindings are concatenated (base before overlay) rather than overwritten,
// so every bound action fires and order is preserved.
func MergeEventMaps(base, overlay EventMap) EventMap {
	out := make(EventMap, len(base)+len(overlay))
	for event, v := range base {
		out[event] = v
	}
	for event := range overlay {
		existing := out.Bindings(event)
		added := overlay.Bindings(event)
		if len(existing) == 0 {
			out[event] = overlay[event]
			continue
		}
		merged := make([]ActionBinding, 0, len(existing)+len(added))
		merged = append(merged, existing...)
		merged = append(merged, added...)
		out[event] = merged
	}
	return out
}

// BehaviourConfig assigns a registered behaviour to a widget or section,
// together with per-instance options overriding the behaviour's defaults.
type BehaviourConfig struct {
	ID      string         `json:"id" yaml:"id" mapstructure:"id"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
}

// DecoratorDefinition is a named, reusable recipe bundling event wiring and
// behaviour stacks. Actions and Behaviours are optional; a decorator may
// contribute either or both.
type DecoratorDefinition struct {
	ID   string `json:"id" yaml:"id"`
	Meta Meta   `json:"meta" yaml:"meta"`

	// RequiredOverlays names the chrome pieces (modal, drawer, ...) the
	// decorator's actions target. DefaultOverlayKeys maps each required
	// overlay to the instance key used when the reference does not override it.
	RequiredOverlays   []string          `json:"requiredOverlays,omitempty" yaml:"requiredOverlays,omitempty"`
	DefaultOverlayKeys map[string]string `json:"defaultOverlayKeys,omitempty" yaml:"defaultOverlayKeys,omitempty"`

	// Actions produces the event wiring for a widget instance given its
	// effective params and overlay keys. Must be pure.
	Actions func(params map[string]any, overlayKeys map[string]string) EventMap `json:"-" yaml:"-"`

	// Behaviours produces the behaviour stack contributed by this decorator.
	// Must be pure.
	Behaviours func(params map[string]any) []BehaviourConfig `json:"-" yaml:"-"`
}

// DecoratorRef attaches a registered decorator to a widget instance with
// per-instance overrides. Many widgets may reference one definition;
// resolution is a pure function of (ref, definition).
type DecoratorRef struct {
	ID          string            `json:"id" yaml:"id" mapstructure:"id"`
	Params      map[string]any    `json:"params,omitempty" yaml:"params,omitempty" mapstructure:"params"`
	OverlayKeys map[string]string `json:"overlayKeys,omitempty" yaml:"overlayKeys,omitempty" mapstructure:"overlayKeys"`
}
