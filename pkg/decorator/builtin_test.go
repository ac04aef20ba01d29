package decorator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/pkg/decorator"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
)

func builtinRegistry() *registry.Registry[domain.DecoratorDefinition] {
	reg := registry.New[domain.DecoratorDefinition]("decorators")
	decorator.RegisterBuiltins(reg)
	return reg
}

func TestModalTriggerTargetsOverlayKey(t *testing.T) {
	resolver := decorator.NewResolver(builtinRegistry())

	res := resolver.Resolve([]domain.DecoratorRef{
		{ID: "modal-trigger", OverlayKeys: map[string]string{"modal": "signup"}},
	}, nil, nil)

	// closeOthers defaults to true, so the click carries both bindings.
	assert.Equal(t, []domain.ActionBinding{"overlays.closeAll", "signup.open"}, res.Events.Bindings("click"))
}

func TestModalTriggerWithoutCloseOthers(t *testing.T) {
	resolver := decorator.NewResolver(builtinRegistry())

	res := resolver.Resolve([]domain.DecoratorRef{
		{ID: "modal-trigger", Params: map[string]any{"closeOthers": false}},
	}, nil, nil)

	assert.Equal(t, []domain.ActionBinding{"default.open"}, res.Events.Bindings("click"))
}

func TestHoverCursorContributesTilt(t *testing.T) {
	resolver := decorator.NewResolver(builtinRegistry())

	res := resolver.Resolve([]domain.DecoratorRef{
		{ID: "hover-cursor", Params: map[string]any{"maxDegrees": 10.0}},
	}, nil, nil)

	assert.Equal(t, []domain.ActionBinding{"cursor.show"}, res.Events.Bindings("mouseenter"))
	assert.Equal(t, []domain.ActionBinding{"cursor.hide"}, res.Events.Bindings("mouseleave"))

	require.Len(t, res.Behaviours, 1)
	assert.Equal(t, "cursor/tilt", res.Behaviours[0].ID)
	assert.Equal(t, 10.0, res.Behaviours[0].Options["maxDegrees"])
}
