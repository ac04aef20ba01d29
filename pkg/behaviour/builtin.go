package behaviour

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

// RegisterBuiltins registers the built-in behaviour catalog. Called
// explicitly during engine wiring; there are no import-time side effects.
func RegisterBuiltins(reg *registry.Registry[domain.BehaviourDefinition]) {
	for _, def := range []domain.BehaviourDefinition{
		scrollFade(),
		scrollParallax(),
		cursorTilt(),
		sectionReveal(),
	} {
		reg.RegisterWithMeta(def.ID, def.Meta, def)
	}
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.4g", f)
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

type fadeOptions struct {
	From float64 `mapstructure:"from"`
	To   float64 `mapstructure:"to"`
}

// scrollFade maps scroll progress to an opacity variable.
func scrollFade() domain.BehaviourDefinition {
	return domain.BehaviourDefinition{
		ID: "scroll/fade",
		Meta: domain.Meta{
			Name:        "Scroll fade",
			Description: "Fades between two opacities as the page scrolls.",
			Category:    "scroll",
			Settings: domain.SettingsSchema{
				"from": {Type: domain.SettingNumber, Default: 1.0, Min: f(0), Max: f(1)},
				"to":   {Type: domain.SettingNumber, Default: 0.0, Min: f(0), Max: f(1)},
			},
		},
		Compute: func(snap domain.Snapshot, options map[string]any) domain.Vars {
			var o fadeOptions
			if err := mapstructure.Decode(options, &o); err != nil {
				return nil
			}
			p := clamp01(snap.Float(domain.SignalScrollProgress, 0))
			return domain.Vars{
				"--scroll-fade-opacity": formatFloat(o.From + (o.To-o.From)*p),
			}
		},
	}
}

type parallaxOptions struct {
	Depth float64 `mapstructure:"depth"`
}

// scrollParallax offsets a layer against scroll. Outputs a neutral offset
// under reduced motion.
func scrollParallax() domain.BehaviourDefinition {
	return domain.BehaviourDefinition{
		ID: "scroll/parallax",
		Meta: domain.Meta{
			Name:        "Scroll parallax",
			Description: "Translates a layer proportionally to scroll progress.",
			Category:    "scroll",
			Settings: domain.SettingsSchema{
				"depth": {Type: domain.SettingNumber, Default: 0.2, Min: f(-1), Max: f(1)},
			},
		},
		Compute: func(snap domain.Snapshot, options map[string]any) domain.Vars {
			if snap.ReducedMotion() {
				return domain.Vars{"--parallax-y": "0px"}
			}
			var o parallaxOptions
			if err := mapstructure.Decode(options, &o); err != nil {
				return nil
			}
			p := clamp01(snap.Float(domain.SignalScrollProgress, 0))
			viewport := snap.Float(domain.SignalViewportHeight, 0)
			return domain.Vars{
				"--parallax-y": formatFloat(-p*o.Depth*viewport) + "px",
			}
		},
	}
}

type tiltOptions struct {
	MaxDegrees float64 `mapstructure:"maxDegrees"`
}

// cursorTilt rotates an element toward the pointer. Suppressed while the
// user is actively scrolling and under reduced motion.
func cursorTilt() domain.BehaviourDefinition {
	return domain.BehaviourDefinition{
		ID: "cursor/tilt",
		Meta: domain.Meta{
			Name:        "Cursor tilt",
			Description: "Tilts an element toward the pointer position.",
			Category:    "cursor",
			Settings: domain.SettingsSchema{
				"maxDegrees": {Type: domain.SettingNumber, Default: 6.0, Min: f(0), Max: f(45)},
			},
		},
		Compute: func(snap domain.Snapshot, options map[string]any) domain.Vars {
			if snap.ReducedMotion() || snap.Bool(domain.SignalIsScrolling, false) {
				return domain.Vars{"--tilt-x": "0deg", "--tilt-y": "0deg"}
			}
			var o tiltOptions
			if err := mapstructure.Decode(options, &o); err != nil {
				return nil
			}
			viewport := snap.Float(domain.SignalViewportHeight, 0)
			if viewport <= 0 {
				return domain.Vars{"--tilt-x": "0deg", "--tilt-y": "0deg"}
			}
			// Normalize pointer position to [-1,1] around the viewport center.
			ny := (snap.Float(domain.SignalCursorY, viewport/2)/viewport)*2 - 1
			nx := (snap.Float(domain.SignalCursorX, 0)/viewport)*2 - 1
			return domain.Vars{
				"--tilt-x": formatFloat(-ny*o.MaxDegrees) + "deg",
				"--tilt-y": formatFloat(nx*o.MaxDegrees) + "deg",
			}
		},
	}
}

type revealOptions struct {
	Section   string  `mapstructure:"section"`
	Threshold float64 `mapstructure:"threshold"`
}

// sectionReveal exposes a section's visibility ratio, snapped to 1 once
// past the configured threshold.
func sectionReveal() domain.BehaviourDefinition {
	return domain.BehaviourDefinition{
		ID: "section/reveal",
		Meta: domain.Meta{
			Name:        "Section reveal",
			Description: "Drives a reveal progress variable from section visibility.",
			Category:    "section",
			Settings: domain.SettingsSchema{
				"section":   {Type: domain.SettingString, Default: ""},
				"threshold": {Type: domain.SettingNumber, Default: 0.85, Min: f(0), Max: f(1)},
			},
		},
		Compute: func(snap domain.Snapshot, options map[string]any) domain.Vars {
			var o revealOptions
			if err := mapstructure.Decode(options, &o); err != nil {
				return nil
			}
			ratio := snap.Visibility(o.Section)
			if ratio >= o.Threshold {
				ratio = 1
			}
			return domain.Vars{
				"--reveal-progress": formatFloat(clamp01(ratio)),
			}
		},
	}
}

func f(v float64) *float64 { return &v }
