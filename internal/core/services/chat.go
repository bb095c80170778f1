package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IrfanSethi/WikiTalk/internal/chunker"
	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driving"
	"github.com/IrfanSethi/WikiTalk/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// snippetSentences is how many leading sentences each extractive snippet keeps.
const snippetSentences = 3

// externalResultLimit is how many search links the external fallback renders.
const externalResultLimit = 5

// ChatService is the answer orchestration engine. For each question it
// validates the session, guarantees the article's chunks are cached,
// retrieves relevant chunks, and drives the fallback chain
// (model -> extractive snippets -> external search).
type ChatService struct {
	sessions  driven.SessionStore
	messages  driven.MessageStore
	articles  driven.ArticleStore
	sources   driven.ArticleSourceFactory
	llm       driven.LLMService
	webSearch driven.WebSearch

	splitter  *chunker.Splitter
	retriever Retriever
}

// NewChatService creates the orchestration engine.
// The llm and webSearch parameters are optional (can be nil).
func NewChatService(
	sessions driven.SessionStore,
	messages driven.MessageStore,
	articles driven.ArticleStore,
	sources driven.ArticleSourceFactory,
	llm driven.LLMService,
	webSearch driven.WebSearch,
) *ChatService {
	return &ChatService{
		sessions:  sessions,
		messages:  messages,
		articles:  articles,
		sources:   sources,
		llm:       llm,
		webSearch: webSearch,
		splitter:  chunker.New(),
		retriever: NewRetriever(),
	}
}

// EnsureArticleCached guarantees the article's chunks are available,
// fetching from the source and caching on first use. A cache hit is
// authoritative; staleness is never re-validated within a session's
// lifetime. Returns the resolved title, canonical URL, and chunks.
func (s *ChatService) EnsureArticleCached(ctx context.Context, title, language string) (string, string, []domain.Chunk, error) {
	if language == "" {
		language = domain.DefaultLanguage
	}

	cached, err := s.articles.Get(ctx, title, language)
	if err == nil {
		logger.Debug("Article cache hit: %q (%s)", title, language)
		return displayTitle(cached), cached.URL, s.splitter.Split(cached.Content), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", "", nil, fmt.Errorf("article cache lookup: %w", err)
	}

	logger.Debug("Article cache miss: %q (%s), fetching", title, language)
	extract, err := s.sources.ForLanguage(language).FetchExtract(ctx, title)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", "", nil, fmt.Errorf("%w: %q", domain.ErrArticleNotFound, title)
		}
		return "", "", nil, fmt.Errorf("fetching article %q: %w", title, err)
	}

	resolved := extract.Title
	if resolved == "" {
		resolved = title
	}
	// Cache under the requested title so the next lookup hits even when
	// the source normalises the title; the resolved form is stored
	// alongside so cache hits cite the same title as the first fetch.
	if err := s.articles.Upsert(ctx, domain.CachedArticle{
		Title:          title,
		CanonicalTitle: resolved,
		Language:       language,
		PageID:         extract.PageID,
		RevisionID:     extract.RevisionID,
		URL:            extract.URL,
		Content:        extract.Extract,
		FetchedAt:      time.Now().UTC(),
	}); err != nil {
		return "", "", nil, fmt.Errorf("caching article %q: %w", resolved, err)
	}

	return resolved, extract.URL, s.splitter.Split(extract.Extract), nil
}

// displayTitle is the citation form of a cached article's title.
func displayTitle(article *domain.CachedArticle) string {
	if article.CanonicalTitle != "" {
		return article.CanonicalTitle
	}
	return article.Title
}

// AnswerQuestion runs the full answer pipeline for one question and
// returns the answer text together with its citation record.
func (s *ChatService) AnswerQuestion(ctx context.Context, sessionID, question string) (domain.Answer, error) {
	logger.Section("Answer Question")
	logger.Debug("Session: %s, question: %q", sessionID, question)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Answer{}, domain.ErrInvalidSession
		}
		return domain.Answer{}, fmt.Errorf("loading session: %w", err)
	}
	if !session.HasArticle() {
		return domain.Answer{}, domain.ErrNoArticleSelected
	}

	title, url, chunks, err := s.EnsureArticleCached(ctx, session.ArticleTitle, session.Language)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Debug("Article %q split into %d chunks", title, len(chunks))

	msgs, err := s.messages.List(ctx, sessionID)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("loading messages: %w", err)
	}
	pairs := historyPairs(msgs)

	top := s.retriever.TopK(chunks, question, questionTexts(pairs), DefaultTopK)
	logger.Debug("Retrieved %d relevant chunks", len(top))

	citations := domain.Citations{
		Article:  domain.ArticleRef{Title: title, URL: url},
		Sections: sectionNames(top),
	}

	// Fallback chain: model first, then extractive snippets, then one
	// best-effort external search.
	answer := ""
	snippetChunks := top
	if s.llm != nil && s.llm.Available() {
		text, chatErr := s.llm.Chat(ctx, buildMessages(question, pairs, top, title, url), driven.ChatOptions{})
		switch {
		case chatErr != nil:
			// Any model error, transport included, is treated the same as
			// "model unavailable" and routed into the fallback chain.
			logger.Warn("Model call failed, falling back: %v", chatErr)
		case strings.TrimSpace(text) == "":
			// Soft failure: the retrieved chunks are dropped for the
			// extractive step so its "nothing relevant" branch fires.
			logger.Info("Model returned an empty response, falling back")
			snippetChunks = nil
		default:
			answer = text
		}
	} else {
		logger.Info("Model not configured, using extractive fallback")
	}

	if answer == "" {
		answer = extractiveAnswer(snippetChunks)

		// The external search fires only when retrieval found nothing and
		// the model produced nothing; its failures are swallowed.
		if len(top) == 0 {
			if links := s.searchExternal(ctx, question); len(links) > 0 {
				answer = renderSearchLinks(question, links)
				citations.External = true
			}
		}
	}

	return domain.Answer{Text: answer, Citations: citations}, nil
}

// searchExternal issues one best-effort web search. Errors and empty
// result sets are swallowed; the caller keeps whatever answer it has.
func (s *ChatService) searchExternal(ctx context.Context, query string) []driven.SearchLink {
	if s.webSearch == nil {
		return nil
	}
	links, err := s.webSearch.Search(ctx, query, externalResultLimit)
	if err != nil {
		logger.Warn("External search failed: %v", err)
		return nil
	}
	// Filter into a fresh slice; the result the port returned stays intact.
	kept := make([]driven.SearchLink, 0, len(links))
	for _, l := range links {
		if l.Label != "" && l.URL != "" {
			kept = append(kept, l)
		}
	}
	if len(kept) > externalResultLimit {
		kept = kept[:externalResultLimit]
	}
	return kept
}

// extractiveAnswer renders labelled snippet blocks from the retrieved
// chunks, or a distinct "nothing relevant" message when there are none.
func extractiveAnswer(chunks []domain.Chunk) string {
	if len(chunks) == 0 {
		return "LLM is unavailable and I couldn't find relevant content in the provided article. " +
			"Try rephrasing the question or loading a different section/article."
	}
	if len(chunks) > DefaultTopK {
		chunks = chunks[:DefaultTopK]
	}
	blocks := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		snippet := strings.Join(firstSentences(ch.Text, snippetSentences), " ")
		blocks = append(blocks, fmt.Sprintf("[Section: %s] %s", ch.Section, snippet))
	}
	return "LLM is unavailable. Based on the article context, here are the most relevant snippets and where to look next:\n\n" +
		strings.Join(blocks, "\n\n") +
		"\n\nSuggestions: consider reading the cited sections in full for more detail, or refine your question to target a specific part."
}

// renderSearchLinks renders external results as a bulleted link list.
func renderSearchLinks(query string, links []driven.SearchLink) string {
	var b strings.Builder
	fmt.Fprintf(&b, "I couldn't answer from the loaded article, but here are web results for %q:\n", query)
	for _, l := range links {
		fmt.Fprintf(&b, "\n- %s - %s", l.Label, l.URL)
	}
	return b.String()
}

// firstSentences returns up to n leading sentences, splitting on '.',
// '!', or '?' followed by whitespace.
func firstSentences(text string, n int) []string {
	text = strings.TrimSpace(text)
	var (
		sentences []string
		start     int
	)
	runes := []rune(text)
	for i := 0; i < len(runes) && len(sentences) < n; i++ {
		switch runes[i] {
		case '.', '!', '?':
			if i+1 >= len(runes) {
				break
			}
			j := i + 1
			for j < len(runes) && (runes[j] == ' ' || runes[j] == '\t' || runes[j] == '\n' || runes[j] == '\r') {
				j++
			}
			if j > i+1 {
				sentences = append(sentences, string(runes[start:i+1]))
				start = j
				i = j - 1
			}
		}
	}
	if len(sentences) < n && start < len(runes) {
		if rest := strings.TrimSpace(string(runes[start:])); rest != "" {
			sentences = append(sentences, rest)
		}
	}
	return sentences
}

// sectionNames lists the section names of chunks in order.
func sectionNames(chunks []domain.Chunk) []string {
	names := make([]string, 0, len(chunks))
	for _, ch := range chunks {
		names = append(names, ch.Section)
	}
	return names
}
