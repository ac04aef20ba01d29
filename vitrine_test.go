package vitrine_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine"
	"github.com/vitrinehq/vitrine/internal/adapters/memory"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/experience"
)

// varRecorder captures ApplyVars calls per target.
type varRecorder struct {
	mu   sync.Mutex
	vars map[string]domain.Vars
}

func newVarRecorder() *varRecorder {
	return &varRecorder{vars: make(map[string]domain.Vars)}
}

func (r *varRecorder) ApplyVars(target string, vars domain.Vars) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vars[target] = vars
}

func (r *varRecorder) get(target string) domain.Vars {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vars[target]
}

func TestNewRegistersBuiltins(t *testing.T) {
	engine := vitrine.New()

	assert.Contains(t, engine.Experiences().IDs(), "simple")
	assert.Contains(t, engine.Experiences().IDs(), "immersive")
	assert.Contains(t, engine.Transitions().IDs(), "wipe")
	assert.Contains(t, engine.Behaviours().IDs(), "scroll/fade")
	assert.Contains(t, engine.Decorators().IDs(), "modal-trigger")
}

func TestWithoutBuiltinsKeepsFallback(t *testing.T) {
	engine := vitrine.New(vitrine.WithoutBuiltins())

	assert.Empty(t, engine.Behaviours().IDs())
	assert.Empty(t, engine.Decorators().IDs())
	// Composition depends on the fallback experience existing.
	assert.Contains(t, engine.Experiences().IDs(), "simple")
}

func TestActivateBindsBehavioursToSink(t *testing.T) {
	feed := memory.NewSignalFeed()
	engine := vitrine.New(vitrine.WithSignalSources(feed.Sources()))
	sink := newVarRecorder()

	activation, err := engine.Activate(context.Background(), experience.Inputs{}, sink)
	require.NoError(t, err)
	defer activation.Stop()

	assert.Equal(t, "simple", activation.Resolved.ExperienceID)

	// The simple experience binds scroll/fade on "*"; a scroll sample must
	// flow through trigger -> store -> behaviour -> sink.
	feed.EmitScroll(1000, 3000, 1000)

	vars := sink.get("*")
	require.NotNil(t, vars)
	assert.Contains(t, vars, "--scroll-fade-opacity")
}

func TestActivateStopReleasesSubscriptions(t *testing.T) {
	feed := memory.NewSignalFeed()
	engine := vitrine.New(vitrine.WithSignalSources(feed.Sources()))
	sink := newVarRecorder()

	activation, err := engine.Activate(context.Background(), experience.Inputs{}, sink)
	require.NoError(t, err)

	feed.EmitScroll(1500, 3000, 1000)
	before := activation.Store.Snapshot().Float(domain.SignalScrollProgress, -1)

	activation.Stop()
	feed.EmitScroll(3000, 3000, 1000)

	after := activation.Store.Snapshot().Float(domain.SignalScrollProgress, -1)
	assert.Equal(t, before, after, "no store writes after Stop")

	// Stop is idempotent.
	activation.Stop()
}

func TestActivateHonorsDevOverride(t *testing.T) {
	feed := memory.NewSignalFeed()
	engine := vitrine.New(vitrine.WithSignalSources(feed.Sources()))

	activation, err := engine.Activate(context.Background(), experience.Inputs{
		Dev: &domain.DevOverride{Experience: "immersive"},
	}, nil)
	require.NoError(t, err)
	defer activation.Stop()

	assert.Equal(t, "immersive", activation.Resolved.ExperienceID)
	assert.Equal(t, "wipe", activation.Resolved.Transition.TransitionID)
}

func TestActivateFiresLifecycleHook(t *testing.T) {
	var activated []string
	engine := vitrine.New(vitrine.WithLifecycleHooks(domain.LifecycleHooks{
		OnActivate: func(id string) { activated = append(activated, id) },
	}))

	activation, err := engine.Activate(context.Background(), experience.Inputs{}, nil)
	require.NoError(t, err)
	defer activation.Stop()

	assert.Equal(t, []string{"simple"}, activated)
}

func TestActivationTransitionLookup(t *testing.T) {
	engine := vitrine.New()
	activation, err := engine.Activate(context.Background(), experience.Inputs{}, nil)
	require.NoError(t, err)
	defer activation.Stop()

	inst, ok := activation.Transition("fade", "#page", nopStyleSink{})
	require.True(t, ok)
	assert.Equal(t, domain.PhaseIdle, inst.Phase())

	_, ok = activation.Transition("teleport", "#page", nopStyleSink{})
	assert.False(t, ok)
}

func TestValidateConfig(t *testing.T) {
	engine := vitrine.New()

	clean := domain.ExperienceConfig{
		Experience: "immersive",
		Transition: &domain.TransitionSelection{ID: "wipe"},
		SectionBehaviours: map[string][]domain.BehaviourConfig{
			"hero": {{ID: "scroll/parallax", Options: map[string]any{"depth": 0.4}}},
		},
	}
	assert.Empty(t, engine.ValidateConfig(clean))

	broken := domain.ExperienceConfig{
		Experience: "nope",
		Transition: &domain.TransitionSelection{ID: "teleport"},
		SectionBehaviours: map[string][]domain.BehaviourConfig{
			"hero": {{ID: "scroll/warp"}},
		},
	}
	errs := engine.ValidateConfig(broken)
	assert.Len(t, errs, 3)
}

func TestValidateDecorators(t *testing.T) {
	engine := vitrine.New()

	errs := engine.ValidateDecorators([]domain.DecoratorRef{
		{ID: "modal-trigger"},
		{ID: "ghost"},
		{ID: "hover-cursor", Params: map[string]any{"maxDegrees": "sideways"}},
	})
	assert.Len(t, errs, 2)
}

type nopStyleSink struct{}

func (nopStyleSink) ApplyStyle(string, domain.StyleState) {}
func (nopStyleSink) SetClass(string, string, bool)        {}
