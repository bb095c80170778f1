// Package domain defines the core business entities for WikiTalk.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Session: A chat conversation bound to one Wikipedia article
//   - Message: A single user or assistant turn within a session
//   - Chunk: A section-tagged, length-bounded slice of article text
//   - CachedArticle: A fetched article extract keyed by (title, language)
//   - Citations: Provenance data returned alongside an answer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
