package trigger

import (
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/store"
)

// Motion mirrors the system reduced-motion preference into the store,
// updating reactively on user/system change.
type Motion struct {
	source ports.MotionPreferenceSource
}

// NewMotion creates the reduced-motion trigger.
func NewMotion(source ports.MotionPreferenceSource) *Motion {
	return &Motion{source: source}
}

func (m *Motion) Kind() string { return KindMotion }

// Start subscribes to preference changes.
func (m *Motion) Start(st *store.Store) (func(), error) {
	unsubscribe, err := m.source.SubscribeReducedMotion(func(prefersReduced bool) {
		st.Set(domain.SignalReducedMotion, prefersReduced)
	})
	if err != nil {
		return nil, err
	}
	return unsubscribe, nil
}
