// Package store provides the shared reactive state container written by
// triggers and read by behaviour consumers.
//
// One Store exists per experience activation. Updates are key-scoped
// partial patches, never full replacement, so concurrent triggers writing
// disjoint keys cannot clobber each other's fields. There is no locking
// contract beyond that: safety relies on each trigger owning its keys.
package store

import (
	"sync"
	"time"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

// Listener receives the keys touched by a patch and a snapshot taken
// immediately after the patch applied.
type Listener func(keys []string, snap domain.Snapshot)

// Unsubscribe removes a listener. Safe to call more than once.
type Unsubscribe func()

// Store is the shared signal state for one active experience.
// Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	state   map[string]any
	subs    map[int]Listener
	nextSub int
	onPatch func(domain.PatchEvent)
}

// Option configures a Store.
type Option func(*Store)

// WithPatchHook registers an observability callback invoked on every patch.
func WithPatchHook(fn func(domain.PatchEvent)) Option {
	return func(s *Store) {
		s.onPatch = fn
	}
}

// New creates an empty store, optionally seeded with initial state.
func New(opts ...Option) *Store {
	s := &Store{
		state: make(map[string]any),
		subs:  make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Patch shallow-merges the given keys into the state and notifies
// subscribers. Keys absent from the patch are untouched, which is what
// makes concurrent trigger writes commutative.
func (s *Store) Patch(patch map[string]any) {
	if len(patch) == 0 {
		return
	}

	s.mu.Lock()
	keys := make([]string, 0, len(patch))
	for k, v := range patch {
		s.state[k] = v
		keys = append(keys, k)
	}
	snap := s.snapshotLocked()
	listeners := make([]Listener, 0, len(s.subs))
	for _, fn := range s.subs {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	if s.onPatch != nil {
		s.onPatch(domain.PatchEvent{Keys: keys, At: time.Now()})
	}
	for _, fn := range listeners {
		fn(keys, snap)
	}
}

// Set patches a single key.
func (s *Store) Set(key string, value any) {
	s.Patch(map[string]any{key: value})
}

// Get returns the current value under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state[key]
	return v, ok
}

// Snapshot returns a point-in-time copy of the full state. The returned
// map is owned by the caller.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Snapshot {
	snap := make(domain.Snapshot, len(s.state))
	for k, v := range s.state {
		// Section visibilities are the one nested container; copy it so a
		// snapshot stays stable while the trigger keeps publishing.
		if vis, ok := v.(map[string]float64); ok {
			copied := make(map[string]float64, len(vis))
			for id, ratio := range vis {
				copied[id] = ratio
			}
			snap[k] = copied
			continue
		}
		snap[k] = v
	}
	return snap
}

// Subscribe registers a listener called after every patch. The listener
// runs on the patching goroutine; keep it cheap and never patch from
// inside it.
func (s *Store) Subscribe(fn Listener) Unsubscribe {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}
