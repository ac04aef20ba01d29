package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/vitrinehq/vitrine/internal/logging"
	"github.com/vitrinehq/vitrine/pkg/domain"
	"github.com/vitrinehq/vitrine/pkg/ports"
)

// lockTTL bounds how long a crashed replica can hold a session hostage.
const lockTTL = 30 * time.Second

// lockEntry pairs a per-session mutex with its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates preview-session access. Reference counting garbage
// collects lock entries once no caller holds them.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager over the given snapshot store.
func NewManager(store ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Start creates and persists a session under a freshly generated ID.
func (m *Manager) Start(ctx context.Context) (*domain.PreviewSession, error) {
	return m.LoadOrStart(ctx, uuid.NewString())
}

// Load retrieves an existing session.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.PreviewSession, error) {
	var session *domain.PreviewSession
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, sessionID)
		return err
	})
	return session, err
}

// LoadOrStart loads a session, creating and persisting an empty one when
// it does not exist yet.
func (m *Manager) LoadOrStart(ctx context.Context, sessionID string) (*domain.PreviewSession, error) {
	var session *domain.PreviewSession
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, sessionID)
		if err == nil {
			return nil
		}
		if err != domain.ErrSessionNotFound {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		session = domain.NewPreviewSession(sessionID)
		session.UpdatedAt = time.Now()

		// Persist immediately to reserve the ID.
		if err := m.store.Save(ctx, session); err != nil {
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		return nil
	})
	return session, err
}

// Save persists the session, stamping UpdatedAt.
func (m *Manager) Save(ctx context.Context, session *domain.PreviewSession) error {
	return m.WithLock(ctx, session.ID, func(ctx context.Context) error {
		session.UpdatedAt = time.Now()
		return m.store.Save(ctx, session)
	})
}

// Override merges a dev override into the session and persists it.
// Empty fields leave the current override untouched.
func (m *Manager) Override(ctx context.Context, sessionID string, override domain.DevOverride) (*domain.PreviewSession, error) {
	var session *domain.PreviewSession
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		session, err = m.store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		if override.Experience != "" {
			session.Overrides.Experience = override.Experience
		}
		if override.Transition != "" {
			session.Overrides.Transition = override.Transition
		}
		session.UpdatedAt = time.Now()
		return m.store.Save(ctx, session)
	})
	return session, err
}

// Delete removes the session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// WithLock executes fn while holding the session's lock, distributed lock
// included when configured.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
