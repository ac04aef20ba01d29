package transition

import (
	"time"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

// RegisterBuiltins registers the built-in transition catalog.
func RegisterBuiltins(reg *registry.Registry[domain.TransitionDefinition]) {
	for _, def := range []domain.TransitionDefinition{
		Wipe(),
		Fade(),
		None(),
	} {
		reg.RegisterWithMeta(def.ID, def.Meta, def)
	}
}

// Wipe reveals the page behind a clip-path inset sweep, content fading in
// only after the wipe completes.
func Wipe() domain.TransitionDefinition {
	return domain.TransitionDefinition{
		ID: "wipe",
		Meta: domain.Meta{
			Name:        "Wipe",
			Description: "Clip-path sweep from the bottom edge, then content fade.",
			Category:    "page",
		},
		Defaults: domain.TransitionDefaults{
			ExitDuration:  400 * time.Millisecond,
			EntryDuration: 600 * time.Millisecond,
			Timeout:       3 * time.Second,
			Ease:          "cubic-bezier(0.83, 0, 0.17, 1)",
		},
		RespectReducedMotion: true,
		ExitClass:            "vitrine-wipe-exit",
		EntryClass:           "vitrine-wipe-entry",
		SequencedContentFade: true,
		Mode:                 domain.EffectTimeline,
		InitialState: func() domain.StyleState {
			return domain.StyleState{"clip-path": "inset(0 0 100% 0)", "opacity": "1"}
		},
		FinalState: func() domain.StyleState {
			return domain.StyleState{"clip-path": "inset(0 0 0 0)", "opacity": "1"}
		},
	}
}

// Fade is a plain cross-fade in CSS mode.
func Fade() domain.TransitionDefinition {
	return domain.TransitionDefinition{
		ID: "fade",
		Meta: domain.Meta{
			Name:        "Fade",
			Description: "Compositor-driven opacity cross-fade.",
			Category:    "page",
		},
		Defaults: domain.TransitionDefaults{
			ExitDuration:  200 * time.Millisecond,
			EntryDuration: 300 * time.Millisecond,
			Timeout:       2 * time.Second,
			Ease:          "ease-out",
		},
		RespectReducedMotion: true,
		ExitClass:            "vitrine-fade-exit",
		EntryClass:           "vitrine-fade-entry",
		Mode:                 domain.EffectCSS,
		InitialState: func() domain.StyleState {
			return domain.StyleState{"opacity": "0"}
		},
		FinalState: func() domain.StyleState {
			return domain.StyleState{"opacity": "1"}
		},
	}
}

// None swaps pages instantly. The safe fallback when nothing is selected.
func None() domain.TransitionDefinition {
	return domain.TransitionDefinition{
		ID: "none",
		Meta: domain.Meta{
			Name:        "None",
			Description: "Instant swap, no animation.",
			Category:    "page",
		},
		Defaults: domain.TransitionDefaults{
			Timeout: time.Second,
		},
		Mode: domain.EffectCSS,
		InitialState: func() domain.StyleState {
			return domain.StyleState{}
		},
		FinalState: func() domain.StyleState {
			return domain.StyleState{}
		},
	}
}
