package memory

import (
	"context"
	"sync"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// Ensure MessageStore implements the interface.
var _ driven.MessageStore = (*MessageStore)(nil)

// MessageStore is an in-memory implementation of driven.MessageStore.
// IDs are assigned from a single counter so insertion order is preserved.
type MessageStore struct {
	mu       sync.RWMutex
	nextID   int64
	messages map[string][]domain.Message
}

// NewMessageStore creates a new in-memory message store.
func NewMessageStore() *MessageStore {
	return &MessageStore{messages: make(map[string][]domain.Message)}
}

// Append stores a message and returns its assigned ID.
func (s *MessageStore) Append(_ context.Context, msg domain.Message) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	msg.ID = s.nextID
	s.messages[msg.SessionID] = append(s.messages[msg.SessionID], msg)
	return msg.ID, nil
}

// List returns all messages for a session ordered by ID ascending.
func (s *MessageStore) List(_ context.Context, sessionID string) ([]domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	msgs := s.messages[sessionID]
	out := make([]domain.Message, len(msgs))
	copy(out, msgs)
	return out, nil
}
