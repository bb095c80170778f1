// Package services implements the driving port interfaces.
// Services contain the core business logic: chunk retrieval, prompt
// assembly, and the answer fallback chain. They orchestrate calls to
// driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond uuid.
package services
