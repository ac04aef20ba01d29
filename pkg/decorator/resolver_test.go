package decorator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

func modalTrigger() domain.DecoratorDefinition {
	return domain.DecoratorDefinition{
		ID: "modal-trigger",
		Meta: domain.Meta{
			Name: "Modal trigger",
			Settings: domain.SettingsSchema{
				"hoverCursor": {Type: domain.SettingBool, Default: true},
			},
		},
		RequiredOverlays:   []string{"modal"},
		DefaultOverlayKeys: map[string]string{"modal": "default-modal"},
		Actions: func(params map[string]any, overlayKeys map[string]string) domain.EventMap {
			events := domain.EventMap{"click": "modal.open:" + overlayKeys["modal"]}
			if hover, _ := params["hoverCursor"].(bool); hover {
				events["mouseenter"] = "cursor.show"
			}
			return events
		},
		Behaviours: func(params map[string]any) []domain.BehaviourConfig {
			return []domain.BehaviourConfig{{ID: "cursor/tilt", Options: params}}
		},
	}
}

func newTestResolver(t *testing.T, defs ...domain.DecoratorDefinition) *Resolver {
	t.Helper()
	reg := registry.New[domain.DecoratorDefinition]("decorator")
	for _, def := range defs {
		reg.RegisterWithMeta(def.ID, def.Meta, def)
	}
	return NewResolver(reg)
}

func TestResolveAppliesDefaultsAndOverlayKeys(t *testing.T) {
	r := newTestResolver(t, modalTrigger())

	res := r.Resolve([]domain.DecoratorRef{{ID: "modal-trigger"}}, nil, nil)

	assert.Equal(t, []string{"modal.open:default-modal"}, res.Events.Bindings("click"))
	assert.Equal(t, []string{"cursor.show"}, res.Events.Bindings("mouseenter"), "default param enables hover binding")
	require.Len(t, res.Behaviours, 1)
	assert.Equal(t, "cursor/tilt", res.Behaviours[0].ID)
}

func TestResolveRefOverridesWin(t *testing.T) {
	r := newTestResolver(t, modalTrigger())

	res := r.Resolve([]domain.DecoratorRef{{
		ID:          "modal-trigger",
		Params:      map[string]any{"hoverCursor": false},
		OverlayKeys: map[string]string{"modal": "signup-modal"},
	}}, nil, nil)

	assert.Equal(t, []string{"modal.open:signup-modal"}, res.Events.Bindings("click"))
	assert.Nil(t, res.Events.Bindings("mouseenter"), "ref param overrides the setting default")
}

func TestResolveExplicitWiringMergesLast(t *testing.T) {
	r := newTestResolver(t, modalTrigger())

	res := r.Resolve(
		[]domain.DecoratorRef{{ID: "modal-trigger"}},
		domain.EventMap{"click": "analytics.track"},
		[]domain.BehaviourConfig{{ID: "scroll/fade"}},
	)

	// Decorator-derived binding first, explicit binding appended after.
	assert.Equal(t, []string{"modal.open:default-modal", "analytics.track"}, res.Events.Bindings("click"))

	require.Len(t, res.Behaviours, 2)
	assert.Equal(t, "cursor/tilt", res.Behaviours[0].ID)
	assert.Equal(t, "scroll/fade", res.Behaviours[1].ID)
}

func TestResolveUnknownDecoratorSkipped(t *testing.T) {
	r := newTestResolver(t, modalTrigger())

	res := r.Resolve(
		[]domain.DecoratorRef{{ID: "no-such-decorator"}, {ID: "modal-trigger"}},
		nil, nil,
	)

	// The unknown ref degrades a single recipe, not the whole resolution.
	assert.Equal(t, []string{"modal.open:default-modal"}, res.Events.Bindings("click"))
	assert.Len(t, res.Behaviours, 1)
}

func TestResolveIsDeterministic(t *testing.T) {
	r := newTestResolver(t, modalTrigger())
	refs := []domain.DecoratorRef{{ID: "modal-trigger", Params: map[string]any{"hoverCursor": true}}}

	first := r.Resolve(refs, domain.EventMap{"click": "b.open"}, nil)
	second := r.Resolve(refs, domain.EventMap{"click": "b.open"}, nil)

	assert.Equal(t, first, second)
}

func TestResolveMultipleRefsInArrayOrder(t *testing.T) {
	a := domain.DecoratorDefinition{
		ID: "deco-a",
		Actions: func(map[string]any, map[string]string) domain.EventMap {
			return domain.EventMap{"click": "a.open"}
		},
	}
	b := domain.DecoratorDefinition{
		ID: "deco-b",
		Actions: func(map[string]any, map[string]string) domain.EventMap {
			return domain.EventMap{"click": "b.open"}
		},
	}
	r := newTestResolver(t, a, b)

	res := r.Resolve([]domain.DecoratorRef{{ID: "deco-a"}, {ID: "deco-b"}}, nil, nil)

	assert.Equal(t, []string{"a.open", "b.open"}, res.Events.Bindings("click"))
}
