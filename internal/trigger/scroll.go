package trigger

import (
	"sync"
	"time"

	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
	"github.com/vitrinehq/vitrine/pkg/store"
)

// defaultQuietPeriod is how long after the last scroll sample isScrolling
// flips back to false.
const defaultQuietPeriod = 150 * time.Millisecond

// Scroll publishes scrollProgress and isScrolling.
//
// Progress is offset / (content - viewport), clamped to [0,1].
// isScrolling goes true on the first sample and debounces back to false
// after the quiet period, letting consumers distinguish "at this position"
// from "currently in motion" (e.g. to suppress hover effects mid-scroll).
type Scroll struct {
	source ports.ScrollSource
	quiet  time.Duration

	mu    sync.Mutex
	timer *time.Timer
}

// ScrollOption configures a Scroll trigger.
type ScrollOption func(*Scroll)

// WithQuietPeriod overrides the scrolling-stopped debounce window.
func WithQuietPeriod(d time.Duration) ScrollOption {
	return func(s *Scroll) {
		s.quiet = d
	}
}

// NewScroll creates the scroll trigger.
func NewScroll(source ports.ScrollSource, opts ...ScrollOption) *Scroll {
	s := &Scroll{source: source, quiet: defaultQuietPeriod}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Scroll) Kind() string { return KindScroll }

// Start subscribes to the scroll source.
func (s *Scroll) Start(st *store.Store) (func(), error) {
	unsubscribe, err := s.source.SubscribeScroll(func(ev ports.ScrollEvent) {
		st.Patch(map[string]any{
			domain.SignalScrollProgress: progress(ev),
			domain.SignalIsScrolling:    true,
		})
		s.bumpQuietTimer(st)
	})
	if err != nil {
		return nil, err
	}

	return func() {
		unsubscribe()
		s.mu.Lock()
		if s.timer != nil {
			s.timer.Stop()
			s.timer = nil
		}
		s.mu.Unlock()
	}, nil
}

func (s *Scroll) bumpQuietTimer(st *store.Store) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.quiet, func() {
		st.Set(domain.SignalIsScrolling, false)
	})
}

func progress(ev ports.ScrollEvent) float64 {
	scrollable := ev.ContentHeight - ev.ViewportHeight
	if scrollable <= 0 {
		return 0
	}
	p := ev.Offset / scrollable
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
