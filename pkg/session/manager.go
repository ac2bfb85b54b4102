package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/edulab/stepwise/internal/logging"
	"github.com/edulab/stepwise/pkg/domain"
	"github.com/edulab/stepwise/pkg/ports"
	"github.com/edulab/stepwise/pkg/timeline"
)

// Manager maps session IDs to timeline controllers. Controllers serialize
// their own operations; the Manager only guards the registry itself.
type Manager struct {
	builder ports.TraceBuilder
	store   ports.TimelineStore // Optional long-term storage
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	mu       sync.Mutex
	sessions map[string]*timeline.Controller
}

// Option configures the Manager.
type Option func(*Manager)

// WithStore enables snapshot persistence.
func WithStore(store ports.TimelineStore) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks passes observability callbacks to every controller
// the Manager creates.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// NewManager creates a new session Manager over the given trace builder.
func NewManager(builder ports.TraceBuilder, opts ...Option) *Manager {
	m := &Manager{
		builder:  builder,
		logger:   logging.NewNop(),
		sessions: make(map[string]*timeline.Controller),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create builds a trace for the source text and registers a new session
// for it, returning the generated session ID.
func (m *Manager) Create(ctx context.Context, code, language string) (string, *timeline.Controller, error) {
	id := uuid.NewString()

	c := timeline.NewController(m.builder, timeline.WithLifecycleHooks(m.hooks))
	c.Load(code, language)

	m.mu.Lock()
	m.sessions[id] = c
	m.mu.Unlock()

	if err := m.Persist(ctx, id); err != nil {
		return "", nil, err
	}

	m.logger.Debug("session created", "session_id", id, "language", language)
	return id, c, nil
}

// Get returns the controller for a session. Sessions not held in memory
// are revived from the store, if one is configured.
// Returns domain.ErrSessionNotFound if the session does not exist.
func (m *Manager) Get(ctx context.Context, sessionID string) (*timeline.Controller, error) {
	m.mu.Lock()
	c, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if ok {
		return c, nil
	}

	if m.store == nil {
		return nil, domain.ErrSessionNotFound
	}

	snap, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	c = timeline.NewController(m.builder, timeline.WithLifecycleHooks(m.hooks))
	c.Restore(snap)

	m.mu.Lock()
	// Another caller may have revived the session in the meantime; keep
	// the first one so both see the same controller.
	if existing, ok := m.sessions[sessionID]; ok {
		c = existing
	} else {
		m.sessions[sessionID] = c
	}
	m.mu.Unlock()

	m.logger.Debug("session revived from store", "session_id", sessionID)
	return c, nil
}

// Persist saves the session's current snapshot to the store. With no
// store configured it is a no-op.
func (m *Manager) Persist(ctx context.Context, sessionID string) error {
	if m.store == nil {
		return nil
	}

	m.mu.Lock()
	c, ok := m.sessions[sessionID]
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	if err := m.store.Save(ctx, sessionID, c.Snapshot()); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Delete stops and removes the session, both in memory and in the store.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	c, ok := m.sessions[sessionID]
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	if ok {
		c.Pause()
	}

	if m.store != nil {
		return m.store.Delete(ctx, sessionID)
	}
	if !ok {
		return domain.ErrSessionNotFound
	}
	return nil
}

// List returns the known session IDs: the in-memory ones merged with the
// store's, deduplicated.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)

	m.mu.Lock()
	for id := range m.sessions {
		seen[id] = true
	}
	m.mu.Unlock()

	if m.store != nil {
		stored, err := m.store.List(ctx)
		if err != nil {
			return nil, err
		}
		for _, id := range stored {
			seen[id] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	return ids, nil
}

// Store returns the underlying timeline store, or nil.
func (m *Manager) Store() ports.TimelineStore {
	return m.store
}
