package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driving"
	"github.com/IrfanSethi/WikiTalk/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService manages session lifecycle and article selection.
type SessionService struct {
	sessions driven.SessionStore
	messages driven.MessageStore
}

// NewSessionService creates a session service.
func NewSessionService(sessions driven.SessionStore, messages driven.MessageStore) *SessionService {
	return &SessionService{sessions: sessions, messages: messages}
}

// CreateSession creates a named session for a language edition.
func (s *SessionService) CreateSession(ctx context.Context, name, language string) (*domain.Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: session name is required", domain.ErrInvalidInput)
	}
	if language == "" {
		language = domain.DefaultLanguage
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        uuid.New().String(),
		Name:      name,
		Language:  language,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}
	logger.Debug("Created session %s (%q, %s)", session.ID, name, language)
	return &session, nil
}

// GetSession retrieves a session by ID.
func (s *SessionService) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// ListSessions returns all sessions, most recently updated first.
func (s *SessionService) ListSessions(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.List(ctx)
}

// RenameSession updates a session's display name.
func (s *SessionService) RenameSession(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: session name is required", domain.ErrInvalidInput)
	}
	return s.sessions.Rename(ctx, id, name)
}

// DeleteSession removes a session and its messages.
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// SetLanguage updates the session's Wikipedia language edition.
func (s *SessionService) SetLanguage(ctx context.Context, id, language string) error {
	language = strings.TrimSpace(language)
	if language == "" {
		return fmt.Errorf("%w: language code is required", domain.ErrInvalidInput)
	}
	return s.sessions.SetLanguage(ctx, id, language)
}

// SelectArticle binds an article to the session. A full Wikipedia URL is
// parsed for language and title (the URL's language wins); anything else
// is treated as a bare title on the session's current language.
func (s *SessionService) SelectArticle(ctx context.Context, id, reference string) (*domain.Session, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("%w: article reference is required", domain.ErrInvalidInput)
	}

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	title := reference
	url := ""
	if strings.Contains(reference, "wikipedia.org") {
		language, parsed, parseErr := domain.ParseArticleURL(reference)
		if parseErr != nil {
			return nil, parseErr
		}
		title = parsed
		url = reference
		if language != session.Language {
			if err := s.sessions.SetLanguage(ctx, id, language); err != nil {
				return nil, fmt.Errorf("updating session language: %w", err)
			}
			session.Language = language
		}
	}

	if err := s.sessions.SetArticle(ctx, id, title, url); err != nil {
		return nil, fmt.Errorf("selecting article: %w", err)
	}
	session.ArticleTitle = title
	session.ArticleURL = url
	logger.Debug("Session %s article set to %q (%s)", id, title, session.Language)
	return session, nil
}

// ClearArticle removes the session's article selection.
func (s *SessionService) ClearArticle(ctx context.Context, id string) error {
	return s.sessions.SetArticle(ctx, id, "", "")
}

// ListMessages returns the session's messages in insertion order.
func (s *SessionService) ListMessages(ctx context.Context, sessionID string) ([]domain.Message, error) {
	return s.messages.List(ctx, sessionID)
}

// RecordExchange persists a completed question/answer exchange. The user
// question is stored first so message order mirrors the conversation.
func (s *SessionService) RecordExchange(ctx context.Context, sessionID, question string, answer domain.Answer) error {
	now := time.Now().UTC()
	if _, err := s.messages.Append(ctx, domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Text:      question,
		CreatedAt: now,
	}); err != nil {
		return fmt.Errorf("recording question: %w", err)
	}

	citations := answer.Citations
	if _, err := s.messages.Append(ctx, domain.Message{
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Text:      answer.Text,
		CreatedAt: time.Now().UTC(),
		Citations: &citations,
	}); err != nil {
		return fmt.Errorf("recording answer: %w", err)
	}
	return nil
}
