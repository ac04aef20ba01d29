package middleware

import (
	"context"
	"regexp"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
)

type scrubMiddleware struct {
	next     ports.SnapshotStore
	patterns []*regexp.Regexp
}

// NewScrubMiddleware creates a middleware that drops signal keys matching
// the patterns before persisting. Captured snapshots can carry visitor
// traces such as pointer coordinates; scrubbing keeps them out of shared
// stores while the in-memory session stays complete.
func NewScrubMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &scrubMiddleware{next: next, patterns: patterns}
	}
}

func (m *scrubMiddleware) Save(ctx context.Context, session *domain.PreviewSession) error {
	// Clone first so the engine's in-memory session keeps its signals.
	cloned := *session
	cloned.Signals = scrubSnapshot(session.Signals, m.patterns)
	return m.next.Save(ctx, &cloned)
}

func (m *scrubMiddleware) Load(ctx context.Context, id string) (*domain.PreviewSession, error) {
	return m.next.Load(ctx, id)
}

func (m *scrubMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *scrubMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func scrubSnapshot(snap domain.Snapshot, patterns []*regexp.Regexp) domain.Snapshot {
	out := make(domain.Snapshot, len(snap))
	for key, value := range snap {
		if matchesAny(key, patterns) {
			continue
		}
		if subMap, ok := value.(map[string]any); ok {
			sub := make(map[string]any, len(subMap))
			for k, v := range subMap {
				if !matchesAny(k, patterns) {
					sub[k] = v
				}
			}
			out[key] = sub
			continue
		}
		out[key] = value
	}
	return out
}

func matchesAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
