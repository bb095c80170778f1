// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - SessionStore: Session persistence
//   - MessageStore: Chat message persistence
//   - ArticleStore: Article cache persistence
//   - ArticleSource: Fetches article extracts (MediaWiki API)
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Language model answering. Without it, answers degrade
//     to extractive snippets from the retrieved chunks.
//   - WebSearch: External search used only as the last fallback when no
//     relevant chunks exist and the answer is still blank.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
