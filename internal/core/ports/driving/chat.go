package driving

import (
	"context"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

// ChatService answers questions grounded in a session's selected article.
type ChatService interface {
	// AnswerQuestion produces an answer and its citation record for a
	// question asked in a session. It fails with domain.ErrInvalidSession
	// when the session is unknown, domain.ErrNoArticleSelected when the
	// session has no article set, and domain.ErrArticleNotFound when the
	// article cannot be fetched on first use. All other failures are
	// absorbed by the fallback chain.
	//
	// The in-flight question is not read from the store; persisting the
	// exchange is the caller's responsibility (SessionService.RecordExchange).
	AnswerQuestion(ctx context.Context, sessionID, question string) (domain.Answer, error)

	// EnsureArticleCached guarantees the article's chunks are available,
	// fetching and caching the extract on first use. Returns the resolved
	// title, canonical URL, and the article's chunk sequence.
	EnsureArticleCached(ctx context.Context, title, language string) (string, string, []domain.Chunk, error)
}
