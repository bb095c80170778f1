package wikipedia

import (
	"context"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// Ensure TitleSearch implements the interface.
var _ driven.WebSearch = (*TitleSearch)(nil)

// TitleSearch adapts the client's title search to the WebSearch port.
// Results link to articles on the client's language edition, so the
// fallback chain can point the user somewhere even when the loaded
// article had nothing relevant.
type TitleSearch struct {
	client *Client
}

// NewTitleSearch creates a web search backed by Wikipedia title search.
func NewTitleSearch(client *Client) *TitleSearch {
	return &TitleSearch{client: client}
}

// Search returns up to limit article links matching the query.
func (s *TitleSearch) Search(ctx context.Context, query string, limit int) ([]driven.SearchLink, error) {
	titles, err := s.client.SearchTitles(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	links := make([]driven.SearchLink, 0, len(titles))
	for _, title := range titles {
		links = append(links, driven.SearchLink{
			Label: title,
			URL:   domain.ArticleURL(s.client.Language(), title),
		})
	}
	return links, nil
}
