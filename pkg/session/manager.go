package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stepedge/concierge/internal/logging"
	"github.com/stepedge/concierge/pkg/domain"
	"github.com/stepedge/concierge/pkg/ports"
)

// lockTTL bounds the distributed lock so a crashed replica cannot hold a
// session forever.
const lockTTL = 30 * time.Second

// lockEntry holds the mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager serializes access to conversation state: no two turns for the same
// session id run concurrently. It uses reference counting to garbage collect
// unused locks, and an optional distributed locker to extend the guarantee
// across replicas.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker ports.DistributedLocker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) { m.locker = locker }
}

// WithLogger configures a logger for internal events (like deferred errors).
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// NewManager creates a session manager over the given store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
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

// NewID allocates a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST lock entry.mu and call release(sessionID) after unlocking.
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

// release decrements the reference count and deletes the entry at zero.
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

// Load retrieves an existing session from the store.
func (m *Manager) Load(ctx context.Context, sessionID string) (*domain.Session, error) {
	var sess *domain.Session
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		sess, err = m.store.Load(ctx, sessionID)
		return err
	})
	return sess, err
}

// Save persists the session state.
func (m *Manager) Save(ctx context.Context, sessionID string, sess *domain.Session) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Save(ctx, sessionID, sess)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.store.Delete(ctx, sessionID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying session store.
func (m *Manager) Store() ports.SessionStore {
	return m.store
}

// Turn runs one whole load-transition-save cycle atomically against the
// session: fn receives the current session (a fresh one if the id is unknown
// or missing from the store) and mutates it; the result is persisted before
// the lock is released.
func (m *Manager) Turn(ctx context.Context, sessionID string, fn func(ctx context.Context, sess *domain.Session) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		sess, err := m.store.Load(ctx, sessionID)
		if err == domain.ErrSessionNotFound {
			sess = domain.NewSession()
		} else if err != nil {
			return fmt.Errorf("load session: %w", err)
		}

		if err := fn(ctx, sess); err != nil {
			return err
		}

		if err := m.store.Save(ctx, sessionID, sess); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
}

// WithLock executes fn while holding the lock for the session.
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
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
