package trigger

import (
	"sync"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/store"
)

// ThresholdLadder is the fine-grained intersection ladder: 21 steps from
// 0 to 1 so consumers see smooth ratios, not coarse steps.
func ThresholdLadder() []float64 {
	steps := make([]float64, 21)
	for i := range steps {
		steps[i] = float64(i) / 20
	}
	return steps
}

// Intersection publishes per-section visibility ratios keyed by element
// ID. It discovers observable elements through the element watcher
// (newly inserted ones included) and skips elements flagged as externally
// lifecycle-managed: their visibility is driven by explicit state, and
// observing them spatially would double-drive it.
type Intersection struct {
	source  ports.IntersectionSource
	watcher ports.ElementWatcher

	mu         sync.Mutex
	ratios     map[string]float64
	unobserves map[string]ports.Unsubscribe
}

// NewIntersection creates the intersection trigger.
func NewIntersection(source ports.IntersectionSource, watcher ports.ElementWatcher) *Intersection {
	return &Intersection{
		source:     source,
		watcher:    watcher,
		ratios:     make(map[string]float64),
		unobserves: make(map[string]ports.Unsubscribe),
	}
}

func (i *Intersection) Kind() string { return KindIntersection }

// Start watches for observable elements and observes each one's
// intersection ratio.
func (i *Intersection) Start(st *store.Store) (func(), error) {
	thresholds := ThresholdLadder()

	unwatch, err := i.watcher.WatchElements(func(ev ports.ElementEvent) {
		if ev.Removed {
			i.drop(ev.ID, st)
			return
		}
		if ev.ExternallyManaged {
			return
		}
		i.observe(ev.ID, thresholds, st)
	})
	if err != nil {
		return nil, err
	}

	return func() {
		unwatch()
		i.mu.Lock()
		for _, unobserve := range i.unobserves {
			unobserve()
		}
		i.unobserves = make(map[string]ports.Unsubscribe)
		i.mu.Unlock()
	}, nil
}

func (i *Intersection) observe(id string, thresholds []float64, st *store.Store) {
	i.mu.Lock()
	if _, already := i.unobserves[id]; already {
		i.mu.Unlock()
		return
	}
	i.mu.Unlock()

	unobserve, err := i.source.ObserveElement(id, thresholds, func(ratio float64) {
		i.publish(id, ratio, st)
	})
	if err != nil {
		return
	}

	i.mu.Lock()
	i.unobserves[id] = unobserve
	i.mu.Unlock()
}

func (i *Intersection) drop(id string, st *store.Store) {
	i.mu.Lock()
	if unobserve, ok := i.unobserves[id]; ok {
		unobserve()
		delete(i.unobserves, id)
	}
	delete(i.ratios, id)
	snapshot := i.copyRatiosLocked()
	i.mu.Unlock()

	st.Set(domain.SignalSectionVisibility, snapshot)
}

func (i *Intersection) publish(id string, ratio float64, st *store.Store) {
	i.mu.Lock()
	i.ratios[id] = ratio
	snapshot := i.copyRatiosLocked()
	i.mu.Unlock()

	// The whole map is one store key owned by this trigger; publishing a
	// fresh copy keeps reader snapshots stable.
	st.Set(domain.SignalSectionVisibility, snapshot)
}

func (i *Intersection) copyRatiosLocked() map[string]float64 {
	out := make(map[string]float64, len(i.ratios))
	for k, v := range i.ratios {
		out[k] = v
	}
	return out
}
