package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IrfanSethi/WikiTalk/internal/adapters/driven/storage/memory"
	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockArticleSource implements driven.ArticleSource and its factory.
type mockArticleSource struct {
	extract    *driven.ArticleExtract
	err        error
	fetchCalls int
}

func (m *mockArticleSource) ForLanguage(_ string) driven.ArticleSource { return m }

func (m *mockArticleSource) FetchExtract(_ context.Context, _ string) (*driven.ArticleExtract, error) {
	m.fetchCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.extract, nil
}

// mockLLM implements driven.LLMService.
type mockLLM struct {
	available bool
	response  string
	err       error
	gotMsgs   []driven.ChatMessage
}

func (m *mockLLM) Available() bool { return m.available }

func (m *mockLLM) Chat(_ context.Context, msgs []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	m.gotMsgs = msgs
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// mockWebSearch implements driven.WebSearch.
type mockWebSearch struct {
	links    []driven.SearchLink
	err      error
	searches int
}

func (m *mockWebSearch) Search(_ context.Context, _ string, _ int) ([]driven.SearchLink, error) {
	m.searches++
	if m.err != nil {
		return nil, m.err
	}
	return m.links, nil
}

// --- Fixture ---

const articleText = "Alan Turing was an English mathematician and computer scientist.\n" +
	"== Early life ==\n" +
	"Turing was born in Maida Vale, London. His father worked in the Indian Civil Service.\n" +
	"== Legacy ==\n" +
	"The Turing Award is named after him. It is computing's highest honour."

type fixture struct {
	sessions  *memory.SessionStore
	messages  *memory.MessageStore
	articles  *memory.ArticleStore
	source    *mockArticleSource
	llm       *mockLLM
	webSearch *mockWebSearch
	svc       *ChatService
	sessionID string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sessions: memory.NewSessionStore(),
		messages: memory.NewMessageStore(),
		articles: memory.NewArticleStore(),
		source: &mockArticleSource{extract: &driven.ArticleExtract{
			Title:      "Alan Turing",
			PageID:     1208,
			RevisionID: 42,
			URL:        "https://en.wikipedia.org/wiki/Alan_Turing",
			Extract:    articleText,
		}},
		llm:       &mockLLM{},
		webSearch: &mockWebSearch{},
	}
	f.svc = NewChatService(f.sessions, f.messages, f.articles, f.source, f.llm, f.webSearch)

	f.sessionID = "s-1"
	require.NoError(t, f.sessions.Create(context.Background(), domain.Session{
		ID:           f.sessionID,
		Name:         "turing chat",
		Language:     "en",
		ArticleTitle: "Alan Turing",
	}))
	return f
}

// --- AnswerQuestion preconditions ---

func TestAnswerQuestion_UnknownSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AnswerQuestion(context.Background(), "missing", "q")
	assert.ErrorIs(t, err, domain.ErrInvalidSession)
}

func TestAnswerQuestion_NoArticleSelected(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.sessions.SetArticle(context.Background(), f.sessionID, "", ""))
	_, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "q")
	assert.ErrorIs(t, err, domain.ErrNoArticleSelected)
}

func TestAnswerQuestion_ArticleNotFound(t *testing.T) {
	f := newFixture(t)
	f.source.err = domain.ErrNotFound
	_, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "q")
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}

// --- Model path ---

func TestAnswerQuestion_ModelAnswers(t *testing.T) {
	f := newFixture(t)
	f.llm.available = true
	f.llm.response = "Turing was born in Maida Vale. [Section: Early life]"

	answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "where was Turing born")
	require.NoError(t, err)

	assert.Equal(t, f.llm.response, answer.Text)
	assert.Equal(t, "Alan Turing", answer.Citations.Article.Title)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Alan_Turing", answer.Citations.Article.URL)
	assert.NotEmpty(t, answer.Citations.Sections)
	assert.False(t, answer.Citations.External)
	assert.Zero(t, f.webSearch.searches, "external search must not fire when the model answers")

	// The prompt ends with the current question.
	require.NotEmpty(t, f.llm.gotMsgs)
	last := f.llm.gotMsgs[len(f.llm.gotMsgs)-1]
	assert.Equal(t, driven.ChatRoleUser, last.Role)
	assert.Equal(t, "where was Turing born", last.Content)
}

func TestAnswerQuestion_CitationFidelity(t *testing.T) {
	f := newFixture(t)
	f.llm.available = true
	f.llm.response = "answer"

	answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "Turing early life born")
	require.NoError(t, err)

	// Sections mirror the chunks actually handed to the prompt builder,
	// in retrieval order.
	var fromPrompt []string
	for _, m := range f.llm.gotMsgs {
		if m.Role != driven.ChatRoleSystem {
			continue
		}
		for _, line := range strings.Split(m.Content, "\n") {
			if strings.HasPrefix(line, "[Chunk ") {
				_, section, ok := strings.Cut(line, "Section: ")
				require.True(t, ok)
				fromPrompt = append(fromPrompt, section)
			}
		}
	}
	assert.Equal(t, fromPrompt, answer.Citations.Sections)
}

// --- Fallback chain ---

func TestAnswerQuestion_ModelUnavailable_ExtractiveSnippets(t *testing.T) {
	f := newFixture(t)
	f.llm.available = false

	answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "where was Turing born")
	require.NoError(t, err)

	assert.Contains(t, answer.Text, "LLM is unavailable")
	assert.Contains(t, answer.Text, "[Section: Early life]")
	assert.Contains(t, answer.Text, "Turing was born in Maida Vale, London.")
	assert.False(t, answer.Citations.External)
	assert.Zero(t, f.webSearch.searches, "chunks were retrieved, search must not fire")
}

func TestAnswerQuestion_ModelError_TreatedAsUnavailable(t *testing.T) {
	f := newFixture(t)
	f.llm.available = true
	f.llm.err = errors.New("transport: connection reset")

	answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "where was Turing born")
	require.NoError(t, err, "model transport errors never propagate")
	assert.Contains(t, answer.Text, "LLM is unavailable")
	assert.Contains(t, answer.Text, "[Section:")
}

// TestAnswerQuestion_FallbackChainDeterminism walks the documented
// scenario: model unconfigured, nonsense query, no overlap -> empty
// retrieval -> "nothing relevant" message -> external search fires.
func TestAnswerQuestion_FallbackChainDeterminism(t *testing.T) {
	t.Run("search yields results", func(t *testing.T) {
		f := newFixture(t)
		f.llm.available = false
		f.webSearch.links = []driven.SearchLink{
			{Label: "Result One", URL: "https://example.org/1"},
			{Label: "", URL: "https://example.org/skipped"},
			{Label: "Result Two", URL: "https://example.org/2"},
		}

		answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "zzqqxx123")
		require.NoError(t, err)

		assert.True(t, answer.Citations.External)
		assert.Empty(t, answer.Citations.Sections)
		assert.Contains(t, answer.Text, "- Result One - https://example.org/1")
		assert.Contains(t, answer.Text, "- Result Two - https://example.org/2")
		assert.NotContains(t, answer.Text, "skipped", "results missing a label are dropped")
	})

	t.Run("search yields nothing", func(t *testing.T) {
		f := newFixture(t)
		f.llm.available = false
		f.webSearch.links = nil

		answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "zzqqxx123")
		require.NoError(t, err)

		assert.False(t, answer.Citations.External)
		assert.Contains(t, answer.Text, "couldn't find relevant content")
		assert.Equal(t, 1, f.webSearch.searches)
	})

	t.Run("search error swallowed", func(t *testing.T) {
		f := newFixture(t)
		f.llm.available = false
		f.webSearch.err = errors.New("network down")

		answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "zzqqxx123")
		require.NoError(t, err)
		assert.False(t, answer.Citations.External)
		assert.Contains(t, answer.Text, "couldn't find relevant content")
	})
}

func TestSearchExternal_DoesNotMutateResults(t *testing.T) {
	f := newFixture(t)
	f.webSearch.links = []driven.SearchLink{
		{Label: "Keep", URL: "https://example.org/keep"},
		{Label: "", URL: "https://example.org/dropped"},
		{Label: "Also keep", URL: "https://example.org/also"},
	}
	original := make([]driven.SearchLink, len(f.webSearch.links))
	copy(original, f.webSearch.links)

	kept := f.svc.searchExternal(context.Background(), "q")

	require.Len(t, kept, 2)
	assert.Equal(t, original, f.webSearch.links, "the slice returned by the search port is not written to")
}

func TestAnswerQuestion_EmptyModelResponse(t *testing.T) {
	f := newFixture(t)
	f.llm.available = true
	f.llm.response = "   \n  "

	answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "where was Turing born")
	require.NoError(t, err)

	// Empty model output discards the retrieved chunks for the fallback
	// step, so the "nothing relevant" branch renders.
	assert.Contains(t, answer.Text, "couldn't find relevant content")
	// Chunks were retrieved, so the external search stays quiet and the
	// citation record still names the retrieved sections.
	assert.Zero(t, f.webSearch.searches)
	assert.NotEmpty(t, answer.Citations.Sections)
	assert.False(t, answer.Citations.External)
}

// --- EnsureArticleCached ---

func TestEnsureArticleCached_FetchesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, first, err := f.svc.EnsureArticleCached(ctx, "Alan Turing", "en")
	require.NoError(t, err)
	_, _, second, err := f.svc.EnsureArticleCached(ctx, "Alan Turing", "en")
	require.NoError(t, err)

	assert.Equal(t, 1, f.source.fetchCalls, "second call must be a cache hit")
	assert.Equal(t, first, second, "both calls return identical chunk sequences")
}

func TestEnsureArticleCached_TitleStableAcrossCache(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// The source normalises the requested title.
	first, _, _, err := f.svc.EnsureArticleCached(ctx, "alan turing", "en")
	require.NoError(t, err)
	second, _, _, err := f.svc.EnsureArticleCached(ctx, "alan turing", "en")
	require.NoError(t, err)

	assert.Equal(t, 1, f.source.fetchCalls, "second call must be a cache hit")
	assert.Equal(t, "Alan Turing", first)
	assert.Equal(t, first, second, "cache hits cite the same title as the first fetch")

	// The entry stays keyed under the requested form.
	cached, err := f.articles.Get(ctx, "alan turing", "en")
	require.NoError(t, err)
	assert.Equal(t, "alan turing", cached.Title)
	assert.Equal(t, "Alan Turing", cached.CanonicalTitle)
}

func TestEnsureArticleCached_NoCanonicalTitleFromSource(t *testing.T) {
	f := newFixture(t)
	f.source.extract.Title = ""
	ctx := context.Background()

	first, _, _, err := f.svc.EnsureArticleCached(ctx, "Alan Turing", "en")
	require.NoError(t, err)
	second, _, _, err := f.svc.EnsureArticleCached(ctx, "Alan Turing", "en")
	require.NoError(t, err)

	assert.Equal(t, "Alan Turing", first, "requested title stands in")
	assert.Equal(t, first, second)
}

func TestEnsureArticleCached_DefaultLanguage(t *testing.T) {
	f := newFixture(t)
	_, _, _, err := f.svc.EnsureArticleCached(context.Background(), "Alan Turing", "")
	require.NoError(t, err)

	cached, err := f.articles.Get(context.Background(), "Alan Turing", domain.DefaultLanguage)
	require.NoError(t, err)
	assert.Equal(t, int64(1208), cached.PageID)
	assert.Equal(t, int64(42), cached.RevisionID)
	assert.False(t, cached.FetchedAt.IsZero())
}

func TestEnsureArticleCached_SourceFailure(t *testing.T) {
	f := newFixture(t)
	f.source.err = errors.New("503 from upstream")
	_, _, _, err := f.svc.EnsureArticleCached(context.Background(), "Alan Turing", "en")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrArticleNotFound)
}

// --- History threading ---

func TestAnswerQuestion_HistoryInPrompt(t *testing.T) {
	f := newFixture(t)
	f.llm.available = true
	f.llm.response = "follow-up answer"
	ctx := context.Background()

	for _, m := range []domain.Message{
		{SessionID: f.sessionID, Role: domain.RoleUser, Text: "who was Turing"},
		{SessionID: f.sessionID, Role: domain.RoleAssistant, Text: "a mathematician"},
	} {
		_, err := f.messages.Append(ctx, m)
		require.NoError(t, err)
	}

	_, err := f.svc.AnswerQuestion(ctx, f.sessionID, "where was he born")
	require.NoError(t, err)

	var contents []string
	for _, m := range f.llm.gotMsgs {
		contents = append(contents, m.Role+":"+m.Content)
	}
	assert.Contains(t, contents, "user:who was Turing")
	assert.Contains(t, contents, "assistant:a mathematician")
}

func TestAnswerQuestion_NilOptionalServices(t *testing.T) {
	f := newFixture(t)
	f.svc = NewChatService(f.sessions, f.messages, f.articles, f.source, nil, nil)

	answer, err := f.svc.AnswerQuestion(context.Background(), f.sessionID, "zzqqxx123")
	require.NoError(t, err)
	assert.Contains(t, answer.Text, "couldn't find relevant content")
	assert.False(t, answer.Citations.External)
}
