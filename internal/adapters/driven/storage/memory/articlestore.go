package memory

import (
	"context"
	"sync"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// Ensure ArticleStore implements the interface.
var _ driven.ArticleStore = (*ArticleStore)(nil)

// articleKey is the composite cache key.
type articleKey struct {
	title    string
	language string
}

// ArticleStore is an in-memory implementation of driven.ArticleStore.
type ArticleStore struct {
	mu       sync.RWMutex
	articles map[articleKey]domain.CachedArticle
}

// NewArticleStore creates a new in-memory article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{articles: make(map[articleKey]domain.CachedArticle)}
}

// Get retrieves a cached article by (title, language).
func (s *ArticleStore) Get(_ context.Context, title, language string) (*domain.CachedArticle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.articles[articleKey{title: title, language: language}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &article, nil
}

// Upsert stores an article, replacing any entry with the same key.
func (s *ArticleStore) Upsert(_ context.Context, article domain.CachedArticle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[articleKey{title: article.Title, language: article.Language}] = article
	return nil
}
