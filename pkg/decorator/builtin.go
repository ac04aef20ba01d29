package decorator

import (
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

// RegisterBuiltins registers the built-in decorator catalog.
func RegisterBuiltins(reg *registry.Registry[domain.DecoratorDefinition]) {
	for _, def := range []domain.DecoratorDefinition{
		ModalTrigger(),
		HoverCursor(),
	} {
		reg.RegisterWithMeta(def.ID, def.Meta, def)
	}
}

// ModalTrigger wires a widget's click to open an overlay instance. The
// overlay key defaults to "default" and is overridable per reference, so
// several triggers can target distinct modals on one page.
func ModalTrigger() domain.DecoratorDefinition {
	return domain.DecoratorDefinition{
		ID: "modal-trigger",
		Meta: domain.Meta{
			Name:        "Modal trigger",
			Description: "Opens a modal overlay on click.",
			Category:    "overlay",
			Settings: domain.SettingsSchema{
				"closeOthers": {Type: domain.SettingBool, Default: true},
			},
		},
		RequiredOverlays:   []string{"modal"},
		DefaultOverlayKeys: map[string]string{"modal": "default"},
		Actions: func(params map[string]any, overlayKeys map[string]string) domain.EventMap {
			events := domain.EventMap{
				"click": overlayKeys["modal"] + ".open",
			}
			if closeOthers, ok := params["closeOthers"].(bool); ok && closeOthers {
				events["click"] = []domain.ActionBinding{
					"overlays.closeAll",
					overlayKeys["modal"] + ".open",
				}
			}
			return events
		},
	}
}

// HoverCursor swaps in the custom cursor while hovering and contributes a
// pointer tilt on the decorated widget.
func HoverCursor() domain.DecoratorDefinition {
	return domain.DecoratorDefinition{
		ID: "hover-cursor",
		Meta: domain.Meta{
			Name:        "Hover cursor",
			Description: "Custom cursor plus pointer tilt while hovering.",
			Category:    "pointer",
			Settings: domain.SettingsSchema{
				"maxDegrees": {Type: domain.SettingNumber, Default: 6.0, Min: f(0), Max: f(45)},
			},
		},
		Actions: func(_ map[string]any, _ map[string]string) domain.EventMap {
			return domain.EventMap{
				"mouseenter": "cursor.show",
				"mouseleave": "cursor.hide",
			}
		},
		Behaviours: func(params map[string]any) []domain.BehaviourConfig {
			return []domain.BehaviourConfig{
				{ID: "cursor/tilt", Options: map[string]any{"maxDegrees": params["maxDegrees"]}},
			}
		},
	}
}

func f(v float64) *float64 { return &v }
