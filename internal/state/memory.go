package state

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage keeps sessions in a process-local map. Sessions are ephemeral
// and disappear on restart, which is acceptable for this flow.
type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewMemoryStorage constructs an empty in-memory Storage implementation.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		sessions: make(map[int64]*Session),
	}
}

// GetState returns a copy of the stored session or ErrStateNotFound.
func (m *MemoryStorage) GetState(_ context.Context, userID int64) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	session, ok := m.sessions[userID]
	if !ok {
		return nil, ErrStateNotFound
	}

	return session.Clone(), nil
}

// SetState stores a copy of the session, stamping UpdatedAt.
func (m *MemoryStorage) SetState(_ context.Context, userID int64, session *Session) error {
	session.UpdatedAt = time.Now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[userID] = session.Clone()
	return nil
}

// ClearState removes the session for the given user. Clearing an absent
// session is not an error.
func (m *MemoryStorage) ClearState(_ context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, userID)
	return nil
}

// GetAllStates returns copies of every stored session.
func (m *MemoryStorage) GetAllStates(_ context.Context) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session.Clone())
	}

	return result, nil
}
