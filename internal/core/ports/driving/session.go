package driving

import (
	"context"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

// SessionService manages session lifecycle and article selection.
// Article-selection changes go through here, never through ChatService.
type SessionService interface {
	// CreateSession creates a named session for a language edition and
	// returns it. An empty language defaults to domain.DefaultLanguage.
	CreateSession(ctx context.Context, name, language string) (*domain.Session, error)

	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// ListSessions returns all sessions, most recently updated first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// RenameSession updates a session's display name.
	RenameSession(ctx context.Context, id, name string) error

	// DeleteSession removes a session and its messages.
	DeleteSession(ctx context.Context, id string) error

	// SetLanguage updates the session's Wikipedia language edition.
	SetLanguage(ctx context.Context, id, language string) error

	// SelectArticle binds an article to the session. The reference may be
	// a full Wikipedia article URL (its language overrides the session's)
	// or a bare title. Returns the resolved session.
	SelectArticle(ctx context.Context, id, reference string) (*domain.Session, error)

	// ClearArticle removes the session's article selection.
	ClearArticle(ctx context.Context, id string) error

	// ListMessages returns the session's messages in insertion order.
	ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error)

	// RecordExchange persists a completed question/answer exchange:
	// the user question followed by the assistant answer with citations.
	RecordExchange(ctx context.Context, sessionID, question string, answer domain.Answer) error
}
