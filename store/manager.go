package store

import (
	"sync"

	"flowerhub/storage"
)

// Manager hands out one Store per user session. Carts are snapshotted under
// a per-user key so they survive restarts and logouts.
type Manager struct {
	mu       sync.Mutex
	storage  storage.Storage
	sessions map[string]*Store
}

// NewManager creates a Manager over the given snapshot storage.
func NewManager(st storage.Storage) *Manager {
	return &Manager{
		storage:  st,
		sessions: make(map[string]*Store),
	}
}

// Session returns the Store for the given user id, creating and restoring
// it on first use.
func (m *Manager) Session(userID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[userID]; ok {
		return s
	}
	s := New(m.storage, "cart:"+userID)
	m.sessions[userID] = s
	return s
}

// Drop forgets the in-memory session for a user, e.g. on logout. The
// persisted cart snapshot is kept, so the cart is restored on next login.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}
