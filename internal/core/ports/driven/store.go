package driven

import (
	"context"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

// SessionStore persists chat sessions.
// Backed by SQLite; implementations must serialize concurrent callers.
type SessionStore interface {
	// Create stores a new session.
	Create(ctx context.Context, session domain.Session) error

	// Get retrieves a session by ID.
	// Returns domain.ErrNotFound if the session does not exist.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// List returns all sessions, most recently updated first.
	List(ctx context.Context) ([]domain.Session, error)

	// Rename updates a session's name.
	Rename(ctx context.Context, id, name string) error

	// SetArticle sets or clears the selected article for a session.
	SetArticle(ctx context.Context, id, title, url string) error

	// SetLanguage updates the Wikipedia language edition for a session.
	SetLanguage(ctx context.Context, id, language string) error

	// Delete removes a session and its messages.
	Delete(ctx context.Context, id string) error
}

// MessageStore persists chat messages.
// Message IDs are assigned by the store and are monotonic in insertion
// order; List returns messages in that order.
type MessageStore interface {
	// Append stores a message and returns its assigned ID.
	Append(ctx context.Context, msg domain.Message) (int64, error)

	// List returns all messages for a session ordered by ID ascending.
	List(ctx context.Context, sessionID string) ([]domain.Message, error)
}

// ArticleStore persists fetched article extracts keyed by (title, language).
type ArticleStore interface {
	// Get retrieves a cached article.
	// Returns domain.ErrNotFound on a cache miss.
	Get(ctx context.Context, title, language string) (*domain.CachedArticle, error)

	// Upsert stores an article, replacing all fields of an existing entry
	// with the same (title, language) key.
	Upsert(ctx context.Context, article domain.CachedArticle) error
}
