package driven

import "context"

// LLMService produces free-text answers from a structured message list.
// This is an optional service - when nil or unconfigured, answering
// degrades gracefully to extractive snippets.
//
// Implementations may include:
//   - Gemini (Google generative language API)
//   - Any chat-completion style endpoint
type LLMService interface {
	// Available reports whether the service is configured and usable.
	// Callers must check this before Chat; Chat fails when unconfigured.
	Available() bool

	// Chat sends an ordered message list and returns the model's text.
	// Message order is significant and preserved as given.
	Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the configuration by making a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// ChatMessage represents a single message in a conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}

// Chat message roles.
const (
	// ChatRoleSystem carries grounding instructions and context.
	ChatRoleSystem = "system"
	// ChatRoleUser carries questions.
	ChatRoleUser = "user"
	// ChatRoleAssistant carries prior model answers.
	ChatRoleAssistant = "assistant"
)

// ChatOptions configures chat behaviour.
type ChatOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic, 1.0 = creative).
	Temperature float64
}
