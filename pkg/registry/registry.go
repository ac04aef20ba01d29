// Package registry provides the generic named-entity store used for
// behaviours, transitions, decorators, modes and experiences.
//
// Registries are constructed once at startup and passed by reference to the
// components that need lookup; there is no package-level global state.
// Entries live for the process lifetime: registration happens during wiring,
// reads dominate afterwards, and re-registration (hot reload) overwrites
// with a warning rather than failing.
package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/vitrinehq/vitrine/pkg/domain"
)

// Loader materializes a lazily registered definition on first access.
type Loader[T any] func(ctx context.Context) (T, error)

type entry[T any] struct {
	mu     sync.Mutex
	loaded bool
	def    T
	meta   domain.Meta
	loader Loader[T]
}

// Registry manages named definitions of one domain (e.g. behaviours).
// Safe for concurrent use.
type Registry[T any] struct {
	name   string
	mu     sync.RWMutex
	items  map[string]*entry[T]
	logger *slog.Logger
	onMiss func(registry, id string)
}

// Option configures a Registry.
type Option[T any] func(*Registry[T])

// WithLogger sets the logger used for development-mode warnings.
func WithLogger[T any](logger *slog.Logger) Option[T] {
	return func(r *Registry[T]) {
		r.logger = logger
	}
}

// WithMissHook registers a callback invoked on every failed lookup.
func WithMissHook[T any](fn func(registry, id string)) Option[T] {
	return func(r *Registry[T]) {
		r.onMiss = fn
	}
}

// New creates an empty registry. The name tags log lines and metrics.
func New[T any](name string, opts ...Option[T]) *Registry[T] {
	r := &Registry[T]{
		name:   name,
		items:  make(map[string]*entry[T]),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Name returns the registry's domain name.
func (r *Registry[T]) Name() string { return r.name }

// Register adds a fully materialized definition under id.
// An existing entry is overwritten with a warning; last writer wins, which
// keeps hot reload cheap during development.
func (r *Registry[T]) Register(id string, def T) {
	r.RegisterWithMeta(id, domain.Meta{}, def)
}

// RegisterWithMeta adds a definition together with its display metadata.
func (r *Registry[T]) RegisterWithMeta(id string, meta domain.Meta, def T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[id]; exists {
		r.logger.Warn("overwriting registry entry", "registry", r.name, "id", id)
	}
	r.items[id] = &entry[T]{loaded: true, def: def, meta: meta}
}

// RegisterLazy adds an entry whose definition is produced by loader on
// first GetAsync. Metadata is available immediately for catalogs.
func (r *Registry[T]) RegisterLazy(id string, meta domain.Meta, loader Loader[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[id]; exists {
		r.logger.Warn("overwriting registry entry", "registry", r.name, "id", id)
	}
	r.items[id] = &entry[T]{meta: meta, loader: loader}
}

// Get returns the definition for id if it is already materialized.
// Unknown IDs warn and report false; they never fail the caller, so a
// missing plugin degrades a single feature, not the whole render.
// A known-but-unloaded lazy entry also reports false, silently: callers
// must tolerate a sync miss that resolves after an async load.
func (r *Registry[T]) Get(id string) (T, bool) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	var zero T
	if !ok {
		r.miss(id)
		return zero, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return zero, false
	}
	return e.def, true
}

// GetAsync returns the definition for id, running the lazy loader on first
// access and caching the result. Concurrent callers share one load; the
// loader runs at most once for a successful load. A failed load is not
// cached, so a later call may retry.
func (r *Registry[T]) GetAsync(ctx context.Context, id string) (T, error) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()

	var zero T
	if !ok {
		r.miss(id)
		return zero, fmt.Errorf("%s %q: %w", r.name, id, domain.ErrNotRegistered)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded {
		return e.def, nil
	}

	def, err := e.loader(ctx)
	if err != nil {
		return zero, fmt.Errorf("%s %q: %w: %w", r.name, id, domain.ErrLoaderFailed, err)
	}
	e.def = def
	e.loaded = true
	e.loader = nil
	return def, nil
}

// Meta returns the metadata recorded for id, loaded or not.
func (r *Registry[T]) Meta(id string) (domain.Meta, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok {
		return domain.Meta{}, false
	}
	return e.meta, true
}

// All returns every materialized definition, ordered by ID.
// Lazy entries that have not loaded yet are skipped.
func (r *Registry[T]) All() []T {
	r.mu.RLock()
	entries := make([]*entry[T], 0, len(r.items))
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		entries = append(entries, r.items[id])
	}
	r.mu.RUnlock()

	out := make([]T, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		if e.loaded {
			out = append(out, e.def)
		}
		e.mu.Unlock()
	}
	return out
}

// IDs returns every registered ID (eager and lazy), sorted.
func (r *Registry[T]) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len reports the number of registered entries.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func (r *Registry[T]) miss(id string) {
	r.logger.Warn("unknown registry id", "registry", r.name, "id", id)
	if r.onMiss != nil {
		r.onMiss(r.name, id)
	}
}
