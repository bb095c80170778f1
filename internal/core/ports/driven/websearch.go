package driven

import "context"

// SearchLink is one external search result.
type SearchLink struct {
	// Label is the human-readable result title.
	Label string

	// URL is the result location.
	URL string
}

// WebSearch performs a best-effort external search.
// It is the last link of the fallback chain: failures and empty result
// sets are swallowed by the caller, never surfaced to the user.
type WebSearch interface {
	// Search returns up to limit results for a free-text query.
	Search(ctx context.Context, query string, limit int) ([]SearchLink, error)
}
