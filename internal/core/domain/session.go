package domain

import "time"

// DefaultLanguage is the Wikipedia language edition used when a session
// does not specify one.
const DefaultLanguage = "en"

// Session identifies one conversation bound to a selected Wikipedia article.
type Session struct {
	// ID is the unique identifier for the session.
	ID string

	// Name is the human-readable session name shown in listings.
	Name string

	// Language is the Wikipedia language edition code (e.g. "en", "de").
	Language string

	// ArticleTitle is the selected article title, empty when none is set.
	ArticleTitle string

	// ArticleURL is the canonical URL of the selected article, if known.
	ArticleURL string

	// CreatedAt is when the session was created.
	CreatedAt time.Time

	// UpdatedAt is when the session was last modified.
	UpdatedAt time.Time
}

// HasArticle reports whether an article has been selected for the session.
func (s Session) HasArticle() bool {
	return s.ArticleTitle != ""
}

// Role identifies the author of a chat message.
type Role string

// Message roles.
const (
	// RoleUser marks a question entered by the user.
	RoleUser Role = "user"

	// RoleAssistant marks an answer produced by the engine.
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// String returns the string representation.
func (r Role) String() string {
	return string(r)
}

// Message is one turn in a session. Messages are ordered by ID, which is
// assigned by the store and is monotonic in insertion order.
type Message struct {
	// ID is the store-assigned, monotonically increasing identifier.
	ID int64

	// SessionID links the message to its session.
	SessionID string

	// Role is who authored the message.
	Role Role

	// Text is the message body.
	Text string

	// CreatedAt is when the message was persisted.
	CreatedAt time.Time

	// Citations is the provenance record attached to assistant messages.
	// Nil for user messages and for answers produced without context.
	Citations *Citations
}
