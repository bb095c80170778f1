package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to ask in (see the wikitalk://sessions resource)"`
	Question  string `json:"question" jsonschema:"the question to answer from the session's article"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer   string   `json:"answer"`
	Article  string   `json:"article"`
	URL      string   `json:"url,omitempty"`
	Sections []string `json:"sections,omitempty"`
	External bool     `json:"external,omitempty"`
}

// SelectArticleInput is the input schema for the select_article tool.
type SelectArticleInput struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"the session to bind the article to; omit to create a new session"`
	Article   string `json:"article" jsonschema:"a Wikipedia article URL or bare title"`
}

// SelectArticleOutput is the output schema for the select_article tool.
type SelectArticleOutput struct {
	SessionID string `json:"session_id"`
	Article   string `json:"article"`
	Language  string `json:"language"`
}

// SearchArticlesInput is the input schema for the search_articles tool.
type SearchArticlesInput struct {
	Query string `json:"query" jsonschema:"free text to find article titles for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchArticlesOutput is the output schema for the search_articles tool.
type SearchArticlesOutput struct {
	Results []ArticleLink `json:"results"`
	Count   int           `json:"count"`
}

// ArticleLink is one search result.
type ArticleLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered strictly from the session's Wikipedia article",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "select_article",
		Description: "Bind a Wikipedia article to a session (creating the session if needed)",
	}, s.handleSelectArticle)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_articles",
		Description: "Search Wikipedia for article titles matching a query",
	}, s.handleSearchArticles)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Chat.AnswerQuestion(ctx, input.SessionID, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	if err := s.ports.Session.RecordExchange(ctx, input.SessionID, input.Question, answer); err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:   answer.Text,
		Article:  answer.Citations.Article.Title,
		URL:      answer.Citations.Article.URL,
		Sections: answer.Citations.Sections,
		External: answer.Citations.External,
	}, nil
}

// handleSelectArticle handles the select_article tool invocation.
func (s *Server) handleSelectArticle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SelectArticleInput,
) (*mcp.CallToolResult, SelectArticleOutput, error) {
	sessionID := input.SessionID
	if sessionID == "" {
		session, err := s.ports.Session.CreateSession(ctx, input.Article, "")
		if err != nil {
			return nil, SelectArticleOutput{}, err
		}
		sessionID = session.ID
	}

	session, err := s.ports.Session.SelectArticle(ctx, sessionID, input.Article)
	if err != nil {
		return nil, SelectArticleOutput{}, err
	}

	return nil, SelectArticleOutput{
		SessionID: session.ID,
		Article:   session.ArticleTitle,
		Language:  session.Language,
	}, nil
}

// handleSearchArticles handles the search_articles tool invocation.
func (s *Server) handleSearchArticles(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchArticlesInput,
) (*mcp.CallToolResult, SearchArticlesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	output := SearchArticlesOutput{Results: []ArticleLink{}}
	if s.ports.Search == nil {
		return nil, output, nil
	}

	links, err := s.ports.Search.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchArticlesOutput{}, err
	}

	for _, link := range links {
		output.Results = append(output.Results, ArticleLink{Title: link.Label, URL: link.URL})
	}
	output.Count = len(output.Results)
	return nil, output, nil
}
