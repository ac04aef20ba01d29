package domain

import "fmt"

// SettingType enumerates the value types a setting can declare.
type SettingType string

const (
	SettingString SettingType = "string"
	SettingNumber SettingType = "number"
	SettingBool   SettingType = "bool"
)

// SettingSpec describes a single tunable parameter of a behaviour,
// decorator or transition: its type, default and optional numeric bounds.
type SettingSpec struct {
	Type    SettingType `json:"type" yaml:"type"`
	Default any         `json:"default,omitempty" yaml:"default,omitempty"`
	Min     *float64    `json:"min,omitempty" yaml:"min,omitempty"`
	Max     *float64    `json:"max,omitempty" yaml:"max,omitempty"`
}

// SettingsSchema maps setting names to their specs.
type SettingsSchema map[string]SettingSpec

// Defaults returns a fresh params map holding every setting's default.
func (s SettingsSchema) Defaults() map[string]any {
	out := make(map[string]any, len(s))
	for name, spec := range s {
		if spec.Default != nil {
			out[name] = spec.Default
		}
	}
	return out
}

// Apply overlays the given params on top of the schema defaults.
// Unknown params pass through untouched; resolution is lenient by design
// and strict checking belongs to offline validation.
func (s SettingsSchema) Apply(params map[string]any) map[string]any {
	out := s.Defaults()
	for k, v := range params {
		out[k] = v
	}
	return out
}

// Validate checks params against the schema: declared type and bounds.
func (s SettingsSchema) Validate(params map[string]any) error {
	for name, value := range params {
		spec, ok := s[name]
		if !ok {
			return fmt.Errorf("unknown setting %q", name)
		}
		if err := spec.validate(name, value); err != nil {
			return err
		}
	}
	return nil
}

func (sp SettingSpec) validate(name string, value any) error {
	switch sp.Type {
	case SettingString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("setting %q: expected string, got %T", name, value)
		}
	case SettingBool:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("setting %q: expected bool, got %T", name, value)
		}
	case SettingNumber:
		var f float64
		switch v := value.(type) {
		case float64:
			f = v
		case float32:
			f = float64(v)
		case int:
			f = float64(v)
		default:
			return fmt.Errorf("setting %q: expected number, got %T", name, value)
		}
		if sp.Min != nil && f < *sp.Min {
			return fmt.Errorf("setting %q: %v below minimum %v", name, f, *sp.Min)
		}
		if sp.Max != nil && f > *sp.Max {
			return fmt.Errorf("setting %q: %v above maximum %v", name, f, *sp.Max)
		}
	default:
		return fmt.Errorf("setting %q: unknown type %q", name, sp.Type)
	}
	return nil
}
