package experience

import (
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

// Built-in trigger kind names, matching internal/trigger.
const (
	TriggerScroll       = "scroll"
	TriggerCursor       = "cursor"
	TriggerViewport     = "viewport"
	TriggerIntersection = "intersection"
	TriggerMotion       = "motion"
)

// RegisterBuiltins registers the built-in experiences and modes. The
// fallback experience must always be registered eagerly: composition
// leans on it whenever a selected experience is missing or still loading.
func RegisterBuiltins(
	experiences *registry.Registry[domain.ExperienceDefinition],
	modes *registry.Registry[domain.ModeDefinition],
) {
	simple := domain.ExperienceDefinition{
		ID: "simple",
		Meta: domain.Meta{
			Name:        "Simple",
			Description: "Scroll-linked fades only. The safe default.",
		},
		Mode: "standalone",
		SectionBehaviours: map[string][]domain.BehaviourConfig{
			"*": {{ID: "scroll/fade"}},
		},
		Triggers:          []string{TriggerScroll, TriggerMotion},
		DefaultTransition: "none",
	}
	experiences.RegisterWithMeta(simple.ID, simple.Meta, simple)

	immersive := domain.ExperienceDefinition{
		ID: "immersive",
		Meta: domain.Meta{
			Name:        "Immersive",
			Description: "Full signal set: parallax, cursor tilt and section reveals.",
		},
		Mode: "standalone",
		SectionBehaviours: map[string][]domain.BehaviourConfig{
			"hero": {
				{ID: "scroll/parallax", Options: map[string]any{"depth": 0.3}},
				{ID: "cursor/tilt"},
			},
			"*": {{ID: "section/reveal"}},
		},
		Triggers: []string{
			TriggerScroll, TriggerCursor, TriggerViewport, TriggerIntersection, TriggerMotion,
		},
		DefaultTransition: "wipe",
	}
	experiences.RegisterWithMeta(immersive.ID, immersive.Meta, immersive)

	standalone := domain.ModeDefinition{
		ID:   "standalone",
		Meta: domain.Meta{Name: "Standalone", Description: "Full-page, viewport-relative signals."},
	}
	embedded := domain.ModeDefinition{
		ID:        "embedded",
		Meta:      domain.Meta{Name: "Embedded", Description: "Contained preview, container-relative signals."},
		Contained: true,
	}
	modes.RegisterWithMeta(standalone.ID, standalone.Meta, standalone)
	modes.RegisterWithMeta(embedded.ID, embedded.Meta, embedded)
}
