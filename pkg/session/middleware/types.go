// Package middleware wraps a SnapshotStore with cross-cutting concerns:
// at-rest encryption and signal scrubbing. Middlewares compose, outermost
// first, so scrubbing can run before encryption.
package middleware

import "github.com/vitrinehq/vitrine/pkg/ports"

// Middleware allows wrapping a SnapshotStore to add behavior.
type Middleware func(ports.SnapshotStore) ports.SnapshotStore

// Chain applies middlewares to the store, first argument outermost.
func Chain(store ports.SnapshotStore, middlewares ...Middleware) ports.SnapshotStore {
	for i := len(middlewares) - 1; i >= 0; i-- {
		store = middlewares[i](store)
	}
	return store
}
