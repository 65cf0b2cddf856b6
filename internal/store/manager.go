package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/Dev-hari1433/Quiz-and-Learning-Analytics-sub000/internal/domain"
)

// Manager keeps one initialized Store per active user. The server is
// multi-tenant but each Store is single-user, so all requests for a user
// funnel through the same instance and keep the single-writer rule intact.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store

	local  LocalCache
	remote domain.RemoteSyncAdapter
	logger *zap.Logger
	opts   Options
}

// NewManager creates a Manager. The Options' Local and Remote fields are
// shared across all stores; per-store state lives in the Store itself.
func NewManager(opts Options) *Manager {
	return &Manager{
		stores: make(map[string]*Store),
		local:  opts.Local,
		remote: opts.Remote,
		logger: opts.Logger,
		opts:   opts,
	}
}

// Open returns the store for userID, initializing one on first use.
// Subsequent calls with the same userID return the existing instance, so
// Open is safe to call on every request.
func (m *Manager) Open(ctx context.Context, userID, displayName string) (*Store, error) {
	m.mu.Lock()
	if s, ok := m.stores[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	s := New(m.opts)
	if err := s.Init(ctx, userID, displayName); err != nil {
		s.Close()
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// A concurrent Open for the same user may have won the race.
	if existing, ok := m.stores[userID]; ok {
		go s.Close()
		return existing, nil
	}
	m.stores[userID] = s
	return s, nil
}

// Get returns the store for userID, or a no-session error when the user has
// not opened a session on this server yet.
func (m *Manager) Get(userID string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[userID]; ok {
		return s, nil
	}
	return nil, domain.NewNoSessionError()
}

// Evict closes and removes a user's store. Used after a full reset when the
// next request should rebuild from persistent state.
func (m *Manager) Evict(userID string) {
	m.mu.Lock()
	s, ok := m.stores[userID]
	delete(m.stores, userID)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}

// CloseAll flushes and closes every open store. Called on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.stores = make(map[string]*Store)
	m.mu.Unlock()

	for _, s := range stores {
		s.Close()
	}
}
