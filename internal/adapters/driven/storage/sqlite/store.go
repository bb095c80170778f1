package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/IrfanSethi/WikiTalk/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// DefaultFilename is the database file name inside the data directory.
const DefaultFilename = "wikitalk.db"

// Store is a unified SQLite-based storage that provides access to the
// session, message, and article store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.wikitalk/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wikitalk", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DefaultFilename)

	// WAL mode plus a busy timeout so concurrent worker goroutines are
	// serialised by the database rather than failing fast.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// SessionStore returns a SessionStore interface backed by this store.
func (s *Store) SessionStore() driven.SessionStore {
	return &sessionStore{store: s}
}

// MessageStore returns a MessageStore interface backed by this store.
func (s *Store) MessageStore() driven.MessageStore {
	return &messageStore{store: s}
}

// ArticleStore returns an ArticleStore interface backed by this store.
func (s *Store) ArticleStore() driven.ArticleStore {
	return &articleStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}
		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Session Store ====================

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// Create stores a new session.
func (s *sessionStore) Create(ctx context.Context, session domain.Session) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, language, article_title, article_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, session.ID, session.Name, session.Language, session.ArticleTitle, session.ArticleURL,
		session.CreatedAt, session.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// Get retrieves a session by ID.
func (s *sessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, name, language, article_title, article_url, created_at, updated_at
		FROM sessions WHERE id = ?
	`, id)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return session, nil
}

// List returns all sessions, most recently updated first.
func (s *sessionStore) List(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, name, language, article_title, article_url, created_at, updated_at
		FROM sessions ORDER BY updated_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.Session //nolint:prealloc // size unknown from query
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

// Rename updates a session's name.
func (s *sessionStore) Rename(ctx context.Context, id, name string) error {
	return s.touch(ctx, id, "UPDATE sessions SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", name)
}

// SetArticle sets or clears the selected article for a session.
func (s *sessionStore) SetArticle(ctx context.Context, id, title, url string) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE sessions SET article_title = ?, article_url = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, title, url, id)
	if err != nil {
		return fmt.Errorf("setting article: %w", err)
	}
	return requireRow(res)
}

// SetLanguage updates the Wikipedia language edition for a session.
func (s *sessionStore) SetLanguage(ctx context.Context, id, language string) error {
	return s.touch(ctx, id, "UPDATE sessions SET language = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", language)
}

// Delete removes a session; messages go with it via ON DELETE CASCADE.
func (s *sessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func (s *sessionStore) touch(ctx context.Context, id, query string, value any) error {
	res, err := s.store.db.ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("updating session: %w", err)
	}
	return requireRow(res)
}

// requireRow maps a zero-row update to domain.ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*domain.Session, error) {
	var session domain.Session
	if err := row.Scan(&session.ID, &session.Name, &session.Language,
		&session.ArticleTitle, &session.ArticleURL,
		&session.CreatedAt, &session.UpdatedAt); err != nil {
		return nil, err
	}
	return &session, nil
}

// ==================== Message Store ====================

// messageStore implements driven.MessageStore.
type messageStore struct {
	store *Store
}

var _ driven.MessageStore = (*messageStore)(nil)

// Append stores a message and returns its assigned ID.
func (s *messageStore) Append(ctx context.Context, msg domain.Message) (int64, error) {
	var citationsJSON sql.NullString
	if msg.Citations != nil {
		data, err := json.Marshal(msg.Citations)
		if err != nil {
			return 0, fmt.Errorf("marshalling citations: %w", err)
		}
		citationsJSON = sql.NullString{String: string(data), Valid: true}
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO messages (session_id, role, text, citations, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, msg.SessionID, string(msg.Role), msg.Text, citationsJSON, msg.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("appending message: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// List returns all messages for a session ordered by ID ascending.
func (s *messageStore) List(ctx context.Context, sessionID string) ([]domain.Message, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, session_id, role, text, citations, created_at
		FROM messages WHERE session_id = ? ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var msgs []domain.Message //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			msg           domain.Message
			role          string
			citationsJSON sql.NullString
		)
		if err := rows.Scan(&msg.ID, &msg.SessionID, &role, &msg.Text,
			&citationsJSON, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Role = domain.Role(role)
		if citationsJSON.Valid && citationsJSON.String != "" {
			var citations domain.Citations
			if err := json.Unmarshal([]byte(citationsJSON.String), &citations); err != nil {
				return nil, fmt.Errorf("unmarshaling citations: %w", err)
			}
			msg.Citations = &citations
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}
	return msgs, nil
}

// ==================== Article Store ====================

// articleStore implements driven.ArticleStore.
type articleStore struct {
	store *Store
}

var _ driven.ArticleStore = (*articleStore)(nil)

// Get retrieves a cached article by (title, language).
func (s *articleStore) Get(ctx context.Context, title, language string) (*domain.CachedArticle, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT title, canonical_title, language, page_id, revision_id, url, content, fetched_at
		FROM articles WHERE title = ? AND language = ?
	`, title, language)

	var article domain.CachedArticle
	if err := row.Scan(&article.Title, &article.CanonicalTitle, &article.Language, &article.PageID,
		&article.RevisionID, &article.URL, &article.Content, &article.FetchedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}
	return &article, nil
}

// Upsert stores an article; a refetch replaces every field.
func (s *articleStore) Upsert(ctx context.Context, article domain.CachedArticle) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO articles (title, canonical_title, language, page_id, revision_id, url, content, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title, language) DO UPDATE SET
			canonical_title = excluded.canonical_title,
			page_id = excluded.page_id,
			revision_id = excluded.revision_id,
			url = excluded.url,
			content = excluded.content,
			fetched_at = excluded.fetched_at
	`, article.Title, article.CanonicalTitle, article.Language, article.PageID, article.RevisionID,
		article.URL, article.Content, article.FetchedAt)
	if err != nil {
		return fmt.Errorf("upserting article: %w", err)
	}
	return nil
}
