package trigger

import (
	"sync"
	"time"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/store"
)

// defaultCursorInterval bounds pointer update frequency to ~60fps.
const defaultCursorInterval = 16 * time.Millisecond

// Cursor publishes raw pointer coordinates, throttled to a fixed interval.
// The reference frame is resolved at subscribe time: container-relative in
// contained mode, viewport-relative otherwise.
type Cursor struct {
	source   ports.PointerSource
	frame    ports.ReferenceFrame
	interval time.Duration

	mu       sync.Mutex
	lastEmit time.Time
}

// CursorOption configures a Cursor trigger.
type CursorOption func(*Cursor)

// WithCursorInterval overrides the throttle interval.
func WithCursorInterval(d time.Duration) CursorOption {
	return func(c *Cursor) {
		c.interval = d
	}
}

// NewCursor creates the cursor trigger.
func NewCursor(source ports.PointerSource, frame ports.ReferenceFrame, opts ...CursorOption) *Cursor {
	c := &Cursor{source: source, frame: frame, interval: defaultCursorInterval}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cursor) Kind() string { return KindCursor }

// Start subscribes to pointer movement. Samples arriving inside the
// throttle window are dropped; the next one past it writes through.
func (c *Cursor) Start(st *store.Store) (func(), error) {
	unsubscribe, err := c.source.SubscribePointer(c.frame, func(ev ports.PointerEvent) {
		if !c.admit() {
			return
		}
		st.Patch(map[string]any{
			domain.SignalCursorX: ev.X,
			domain.SignalCursorY: ev.Y,
		})
	})
	if err != nil {
		return nil, err
	}
	return unsubscribe, nil
}

func (c *Cursor) admit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Sub(c.lastEmit) < c.interval {
		return false
	}
	c.lastEmit = now
	return true
}
