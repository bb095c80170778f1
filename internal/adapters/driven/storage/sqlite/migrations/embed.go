// Package migrations embeds the SQL schema migrations for the WikiTalk
// store. Files are applied in lexical order of their numeric prefix.
package migrations

import "embed"

// FS holds every .sql migration, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
