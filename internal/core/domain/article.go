package domain

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// CachedArticle is a fetched article extract stored by (title, language).
// A refetch replaces all fields; cache hits are treated as authoritative
// for the lifetime of a session.
type CachedArticle struct {
	// Title is the article title the entry is cached under (the title as
	// requested, which may differ from the source's normalised form).
	Title string

	// CanonicalTitle is the title the source resolved the request to.
	// It is the display form used in citations; empty means the source
	// reported none and Title stands in.
	CanonicalTitle string

	// Language is the Wikipedia language edition code.
	Language string

	// PageID is the source's page identifier.
	PageID int64

	// RevisionID is the revision the content was taken from.
	RevisionID int64

	// URL is the canonical article URL.
	URL string

	// Content is the plain-text extract.
	Content string

	// FetchedAt is when the extract was retrieved.
	FetchedAt time.Time
}

// ParseArticleURL extracts (language, title) from a Wikipedia article URL
// such as https://en.wikipedia.org/wiki/Alan_Turing or its mobile variant.
// The title is percent-decoded with underscores mapped back to spaces.
func ParseArticleURL(rawURL string) (language, title string, err error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", "", fmt.Errorf("%w: not a valid URL", ErrInvalidInput)
	}
	if parsed.Scheme == "" || parsed.Host == "" || !strings.Contains(parsed.Host, "wikipedia.org") {
		return "", "", fmt.Errorf("%w: expected a Wikipedia article URL (e.g. https://en.wikipedia.org/wiki/Alan_Turing)", ErrInvalidInput)
	}

	for _, part := range strings.Split(parsed.Host, ".") {
		switch part {
		case "www", "m", "wikipedia", "org":
		default:
			language = part
		}
		if language != "" {
			break
		}
	}
	if language == "" {
		language = DefaultLanguage
	}

	if !strings.HasPrefix(parsed.Path, "/wiki/") {
		return "", "", fmt.Errorf("%w: URL must be an article path like /wiki/Alan_Turing", ErrInvalidInput)
	}
	encoded := strings.TrimPrefix(parsed.Path, "/wiki/")
	if encoded == "" {
		return "", "", fmt.Errorf("%w: article title missing in URL", ErrInvalidInput)
	}
	decoded, err := url.PathUnescape(encoded)
	if err != nil {
		decoded = encoded
	}
	title = strings.TrimSpace(strings.ReplaceAll(decoded, "_", " "))
	if title == "" {
		return "", "", fmt.Errorf("%w: article title missing in URL", ErrInvalidInput)
	}
	return language, title, nil
}

// ArticleURL builds the canonical article URL for a title on a language
// edition. Used when the source did not report one.
func ArticleURL(language, title string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/wiki/%s",
		language, url.PathEscape(strings.ReplaceAll(title, " ", "_")))
}
