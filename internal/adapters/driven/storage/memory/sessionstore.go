// Package memory provides in-memory store implementations used by tests
// and as lightweight stand-ins for the SQLite store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.Session)}
}

// Create stores a new session.
func (s *SessionStore) Create(_ context.Context, session domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// List returns all sessions, most recently updated first.
func (s *SessionStore) List(_ context.Context) ([]domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]domain.Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

// Rename updates a session's name.
func (s *SessionStore) Rename(_ context.Context, id, name string) error {
	return s.update(id, func(session *domain.Session) {
		session.Name = name
	})
}

// SetArticle sets or clears the selected article for a session.
func (s *SessionStore) SetArticle(_ context.Context, id, title, url string) error {
	return s.update(id, func(session *domain.Session) {
		session.ArticleTitle = title
		session.ArticleURL = url
	})
}

// SetLanguage updates the Wikipedia language edition for a session.
func (s *SessionStore) SetLanguage(_ context.Context, id, language string) error {
	return s.update(id, func(session *domain.Session) {
		session.Language = language
	})
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) update(id string, apply func(*domain.Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrNotFound
	}
	apply(&session)
	session.UpdatedAt = time.Now().UTC()
	s.sessions[id] = session
	return nil
}
