package experience

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/registry"
	"github.com/vitrinehq/vitrine/pkg/transition"
)

func newTestComposer(t *testing.T) (*Composer, *registry.Registry[domain.ExperienceDefinition]) {
	t.Helper()
	experiences := registry.New[domain.ExperienceDefinition]("experience")
	modes := registry.New[domain.ModeDefinition]("mode")
	transitions := registry.New[domain.TransitionDefinition]("transition")
	RegisterBuiltins(experiences, modes)
	transition.RegisterBuiltins(transitions)
	return NewComposer(experiences, transitions), experiences
}

func TestResolveFallbackWhenNothingConfigured(t *testing.T) {
	c, _ := newTestComposer(t)

	res := c.Resolve(context.Background(), Inputs{})

	assert.Equal(t, "simple", res.ExperienceID)
	assert.False(t, res.Pending)
	assert.Equal(t, "none", res.Transition.TransitionID)
}

func TestResolveExperiencePrecedence(t *testing.T) {
	c, _ := newTestComposer(t)

	tests := []struct {
		name string
		in   Inputs
		want string
	}{
		{
			name: "site level applies",
			in:   Inputs{Site: domain.ExperienceConfig{Experience: "immersive"}},
			want: "immersive",
		},
		{
			name: "page beats site",
			in: Inputs{
				Site: domain.ExperienceConfig{Experience: "immersive"},
				Page: domain.ExperienceConfig{Experience: "simple"},
			},
			want: "simple",
		},
		{
			name: "dev override beats page",
			in: Inputs{
				Site: domain.ExperienceConfig{Experience: "simple"},
				Page: domain.ExperienceConfig{Experience: "simple"},
				Dev:  &domain.DevOverride{Experience: "immersive"},
			},
			want: "immersive",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Resolve(context.Background(), tt.in)
			assert.Equal(t, tt.want, res.ExperienceID)
		})
	}
}

func TestResolveSectionBehavioursReplaceNotConcat(t *testing.T) {
	c, _ := newTestComposer(t)

	res := c.Resolve(context.Background(), Inputs{
		Site: domain.ExperienceConfig{
			Experience: "immersive",
			SectionBehaviours: map[string][]domain.BehaviourConfig{
				"hero": {{ID: "scroll/fade"}},
			},
		},
		Page: domain.ExperienceConfig{
			SectionBehaviours: map[string][]domain.BehaviourConfig{
				"hero": {{ID: "cursor/tilt"}},
			},
		},
	})

	require.Len(t, res.SectionBehaviours["hero"], 1, "replacement, not concatenation")
	assert.Equal(t, "cursor/tilt", res.SectionBehaviours["hero"][0].ID)
	// Untouched keys keep the definition defaults.
	assert.NotEmpty(t, res.SectionBehaviours["*"])
}

func TestResolveSiteReplacesDefinitionDefaults(t *testing.T) {
	c, _ := newTestComposer(t)

	res := c.Resolve(context.Background(), Inputs{
		Site: domain.ExperienceConfig{
			Experience: "immersive",
			SectionBehaviours: map[string][]domain.BehaviourConfig{
				"hero": {{ID: "scroll/fade"}},
			},
		},
	})

	require.Len(t, res.SectionBehaviours["hero"], 1)
	assert.Equal(t, "scroll/fade", res.SectionBehaviours["hero"][0].ID)
}

func TestResolvePendingLazyExperienceFallsBack(t *testing.T) {
	c, experiences := newTestComposer(t)

	loading := make(chan struct{})
	experiences.RegisterLazy("cinematic", domain.Meta{}, func(ctx context.Context) (domain.ExperienceDefinition, error) {
		<-loading
		return domain.ExperienceDefinition{ID: "cinematic", Mode: "standalone"}, nil
	})

	res := c.Resolve(context.Background(), Inputs{Site: domain.ExperienceConfig{Experience: "cinematic"}})

	assert.True(t, res.Pending, "rendering is not blocked on the load")
	assert.Equal(t, "simple", res.ExperienceID, "safe default stands in")

	close(loading)
	require.Eventually(t, func() bool {
		next := c.Resolve(context.Background(), Inputs{Site: domain.ExperienceConfig{Experience: "cinematic"}})
		return !next.Pending && next.ExperienceID == "cinematic"
	}, time.Second, 5*time.Millisecond, "a later resolve sees the cached definition")
}

func TestResolveTransitionPrecedenceAndSettings(t *testing.T) {
	c, _ := newTestComposer(t)

	res := c.Resolve(context.Background(), Inputs{
		Site: domain.ExperienceConfig{
			Transition: &domain.TransitionSelection{ID: "fade"},
		},
		Page: domain.ExperienceConfig{
			Transition: &domain.TransitionSelection{
				ID: "wipe",
				Settings: map[string]any{
					"exitDurationMs": 150.0,
					"timeoutMs":      1000.0,
				},
			},
		},
	})

	assert.Equal(t, "wipe", res.Transition.TransitionID, "page selection beats site")
	assert.Equal(t, 150*time.Millisecond, res.Transition.DefaultExitDuration, "per-instance setting wins")
	assert.Equal(t, time.Second, res.Transition.Timeout)
	wipe := transition.Wipe()
	assert.Equal(t, wipe.Defaults.EntryDuration, res.Transition.DefaultEntryDuration,
		"unset settings fall back to the definition defaults")
	assert.True(t, res.Transition.RespectReducedMotion)
}

func TestResolveTransitionDevOverride(t *testing.T) {
	c, _ := newTestComposer(t)

	res := c.Resolve(context.Background(), Inputs{
		Page: domain.ExperienceConfig{Transition: &domain.TransitionSelection{ID: "wipe"}},
		Dev:  &domain.DevOverride{Transition: "fade"},
	})

	assert.Equal(t, "fade", res.Transition.TransitionID)
}

func TestResolveUnknownTransitionFallsBack(t *testing.T) {
	c, _ := newTestComposer(t)

	res := c.Resolve(context.Background(), Inputs{
		Page: domain.ExperienceConfig{Transition: &domain.TransitionSelection{ID: "spiral"}},
	})

	assert.Equal(t, "none", res.Transition.TransitionID)
}

func TestResolveExperienceDefaultTransition(t *testing.T) {
	c, _ := newTestComposer(t)

	res := c.Resolve(context.Background(), Inputs{
		Site: domain.ExperienceConfig{Experience: "immersive"},
	})

	assert.Equal(t, "wipe", res.Transition.TransitionID, "experience default applies when no level selects")
}
