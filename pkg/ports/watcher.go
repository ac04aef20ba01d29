package ports

import "context"

// ConfigWatcher is implemented by config loaders that can notify about
// backend changes. Used for hot reload in dev mode: the channel signals
// only that a reload is required, never what changed.
type ConfigWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
