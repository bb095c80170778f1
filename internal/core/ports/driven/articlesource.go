package driven

import "context"

// ArticleExtract is the plain-text content and minimal metadata returned
// by an article source.
type ArticleExtract struct {
	// Title is the canonical title as resolved by the source (may differ
	// from the requested title after normalisation/redirects).
	Title string

	// PageID is the source's page identifier.
	PageID int64

	// RevisionID is the revision the extract was taken from.
	RevisionID int64

	// URL is the canonical article URL.
	URL string

	// Extract is the plain-text article content.
	Extract string
}

// ArticleSource fetches article extracts for one language edition.
// Implementations are bound to a language at construction time.
type ArticleSource interface {
	// FetchExtract retrieves the plain-text extract for a title.
	// Returns domain.ErrNotFound when no such article exists.
	FetchExtract(ctx context.Context, title string) (*ArticleExtract, error)
}

// ArticleSourceFactory derives language-bound article sources.
// Sessions carry their own language edition, so the orchestrator asks
// the factory for a source matching the session at hand.
type ArticleSourceFactory interface {
	// ForLanguage returns an ArticleSource bound to a language edition.
	ForLanguage(language string) ArticleSource
}
