// Package sqlite provides the persistent store for sessions, chat
// messages, and the article cache, backed by modernc.org/sqlite.
//
// The database serialises concurrent readers and writers itself (WAL
// mode plus a busy timeout); callers treat the store as an atomic
// request/response dependency and hold no locks of their own.
package sqlite
