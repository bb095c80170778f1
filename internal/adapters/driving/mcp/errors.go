// Package mcp provides an MCP (Model Context Protocol) server adapter
// for WikiTalk. It lets AI assistants load Wikipedia articles and ask
// questions answered strictly from their text.
package mcp

import "errors"

// ErrMissingChatService is returned when the chat service is not provided.
var ErrMissingChatService = errors.New("mcp: chat service is required")

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")
