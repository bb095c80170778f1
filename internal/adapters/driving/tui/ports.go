// Package tui provides the interactive chat interface for WikiTalk.
// It follows the Elm architecture via Bubbletea: one model, messages in,
// view out.
package tui

import (
	"errors"

	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the chat TUI needs.
type Ports struct {
	// Chat answers questions from the session's article.
	Chat driving.ChatService

	// Session persists the conversation.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Chat == nil {
		return errors.New("tui: chat service is required")
	}
	if p.Session == nil {
		return errors.New("tui: session service is required")
	}
	return nil
}
