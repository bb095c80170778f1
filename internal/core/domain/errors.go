package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSession indicates the session id is unknown.
	// The user must pick or create a session before asking questions.
	ErrInvalidSession = errors.New("invalid session")

	// ErrNoArticleSelected indicates the session has no article set.
	// Article selection is a precondition for answering questions.
	ErrNoArticleSelected = errors.New("no article selected")

	// ErrArticleNotFound indicates the article source reported the title
	// as missing on first fetch. There is no fallback content source, so
	// this aborts the whole operation.
	ErrArticleNotFound = errors.New("article not found")

	// ErrLLMUnavailable indicates the language model is not configured.
	// Answering degrades to the extractive fallback.
	ErrLLMUnavailable = errors.New("LLM service unavailable")
)
