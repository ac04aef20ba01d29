package trigger

import (
	"sync"
	"time"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/store"
)

// defaultResizeDebounce coalesces resize bursts.
const defaultResizeDebounce = 100 * time.Millisecond

// Viewport publishes the viewport height, debounced on resize. The first
// sample after subscribe writes through immediately so consumers have a
// height before any resize happens; later samples debounce.
type Viewport struct {
	source   ports.ViewportSource
	frame    ports.ReferenceFrame
	debounce time.Duration

	mu    sync.Mutex
	seen  bool
	timer *time.Timer
}

// ViewportOption configures a Viewport trigger.
type ViewportOption func(*Viewport)

// WithResizeDebounce overrides the resize debounce window.
func WithResizeDebounce(d time.Duration) ViewportOption {
	return func(v *Viewport) {
		v.debounce = d
	}
}

// NewViewport creates the viewport trigger.
func NewViewport(source ports.ViewportSource, frame ports.ReferenceFrame, opts ...ViewportOption) *Viewport {
	v := &Viewport{source: source, frame: frame, debounce: defaultResizeDebounce}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

func (v *Viewport) Kind() string { return KindViewport }

// Start subscribes to viewport size changes.
func (v *Viewport) Start(st *store.Store) (func(), error) {
	unsubscribe, err := v.source.SubscribeViewport(v.frame, func(height float64) {
		v.mu.Lock()
		defer v.mu.Unlock()
		if !v.seen {
			v.seen = true
			st.Set(domain.SignalViewportHeight, height)
			return
		}
		if v.timer != nil {
			v.timer.Stop()
		}
		v.timer = time.AfterFunc(v.debounce, func() {
			st.Set(domain.SignalViewportHeight, height)
		})
	})
	if err != nil {
		return nil, err
	}

	return func() {
		unsubscribe()
		v.mu.Lock()
		if v.timer != nil {
			v.timer.Stop()
			v.timer = nil
		}
		v.mu.Unlock()
	}, nil
}
