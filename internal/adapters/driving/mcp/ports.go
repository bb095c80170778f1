package mcp

import (
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Chat answers questions from a session's article.
	Chat driving.ChatService

	// Session manages sessions and article selection.
	Session driving.SessionService

	// Search finds article titles for the search_articles tool.
	Search driven.WebSearch
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return ErrMissingChatService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	// Search is optional; without it the search_articles tool returns
	// empty results.
	return nil
}
