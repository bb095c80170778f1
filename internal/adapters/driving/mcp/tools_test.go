package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

func TestHandleAsk(t *testing.T) {
	chat := &fakeChat{answer: domain.Answer{
		Text: "He broke codes at Bletchley Park.",
		Citations: domain.Citations{
			Article:  domain.ArticleRef{Title: "Alan Turing", URL: "https://en.wikipedia.org/wiki/Alan_Turing"},
			Sections: []string{"World War II"},
		},
	}}
	sessions := &fakeSessions{}
	server, err := NewServer(&Ports{Chat: chat, Session: sessions})
	require.NoError(t, err)

	_, output, err := server.handleAsk(context.Background(), nil, AskInput{
		SessionID: "s1",
		Question:  "What did Turing do in the war?",
	})
	require.NoError(t, err)

	assert.Equal(t, "He broke codes at Bletchley Park.", output.Answer)
	assert.Equal(t, "Alan Turing", output.Article)
	assert.Equal(t, []string{"World War II"}, output.Sections)
	assert.False(t, output.External)

	// The exchange lands in the session history.
	assert.Equal(t, []string{"What did Turing do in the war?"}, sessions.recorded)
}

func TestHandleAsk_ChatError(t *testing.T) {
	chat := &fakeChat{err: domain.ErrNoArticleSelected}
	sessions := &fakeSessions{}
	server, err := NewServer(&Ports{Chat: chat, Session: sessions})
	require.NoError(t, err)

	_, _, err = server.handleAsk(context.Background(), nil, AskInput{SessionID: "s1", Question: "Q"})

	assert.ErrorIs(t, err, domain.ErrNoArticleSelected)
	assert.Empty(t, sessions.recorded)
}

func TestHandleSelectArticle_ExistingSession(t *testing.T) {
	sessions := &fakeSessions{}
	server, err := NewServer(&Ports{Chat: &fakeChat{}, Session: sessions})
	require.NoError(t, err)

	_, output, err := server.handleSelectArticle(context.Background(), nil, SelectArticleInput{
		SessionID: "s1",
		Article:   "Alan Turing",
	})
	require.NoError(t, err)

	assert.Equal(t, "s1", output.SessionID)
	assert.Equal(t, "Alan Turing", output.Article)
	assert.Zero(t, sessions.created)
}

func TestHandleSelectArticle_CreatesSession(t *testing.T) {
	sessions := &fakeSessions{}
	server, err := NewServer(&Ports{Chat: &fakeChat{}, Session: sessions})
	require.NoError(t, err)

	_, output, err := server.handleSelectArticle(context.Background(), nil, SelectArticleInput{
		Article: "https://de.wikipedia.org/wiki/Alan_Turing",
	})
	require.NoError(t, err)

	assert.Equal(t, "new-session", output.SessionID)
	assert.Equal(t, 1, sessions.created)
}

func TestHandleSearchArticles(t *testing.T) {
	search := &fakeSearch{links: []driven.SearchLink{
		{Label: "Turing machine", URL: "https://en.wikipedia.org/wiki/Turing_machine"},
	}}
	server, err := NewServer(&Ports{Chat: &fakeChat{}, Session: &fakeSessions{}, Search: search})
	require.NoError(t, err)

	_, output, err := server.handleSearchArticles(context.Background(), nil, SearchArticlesInput{
		Query: "turing machine",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, output.Count)
	assert.Equal(t, "Turing machine", output.Results[0].Title)
}

func TestHandleSearchArticles_NoSearchConfigured(t *testing.T) {
	server, err := NewServer(&Ports{Chat: &fakeChat{}, Session: &fakeSessions{}})
	require.NoError(t, err)

	_, output, err := server.handleSearchArticles(context.Background(), nil, SearchArticlesInput{Query: "q"})

	require.NoError(t, err)
	assert.Zero(t, output.Count)
	assert.NotNil(t, output.Results)
}
