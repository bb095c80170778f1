package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

var askSessionID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about the session's article",
	Long: `Ask a single question and print the answer with its citations.

The question goes to the most recently used session unless --session
names another one. The session must have an article selected; see
'wikitalk session select'.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askSessionID, "session", "s", "", "session ID (default: most recent)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	ctx := cmd.Context()

	session, err := resolveSession(ctx, askSessionID)
	if err != nil {
		return err
	}

	answer, err := chatService.AnswerQuestion(ctx, session.ID, args[0])
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoArticleSelected):
			return fmt.Errorf("session %q has no article selected - run 'wikitalk session select %s <article>' first", session.Name, session.ID)
		case errors.Is(err, domain.ErrArticleNotFound):
			return fmt.Errorf("article %q was not found on %s.wikipedia.org", session.ArticleTitle, session.Language)
		default:
			return err
		}
	}

	if err := sessionService.RecordExchange(ctx, session.ID, args[0], answer); err != nil {
		return fmt.Errorf("recording exchange: %w", err)
	}

	cmd.Println(answer.Text)
	cmd.Println()
	cmd.Println(formatCitations(answer.Citations))
	return nil
}

// resolveSession returns the named session, or the most recently used
// one when id is empty.
func resolveSession(ctx context.Context, id string) (*domain.Session, error) {
	if id != "" {
		session, err := sessionService.GetSession(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("no session with ID %q", id)
			}
			return nil, err
		}
		return session, nil
	}

	sessions, err := sessionService.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	if len(sessions) == 0 {
		return nil, errors.New("no sessions yet - create one with 'wikitalk session new'")
	}
	return &sessions[0], nil
}

// formatCitations renders a one-block provenance footer.
func formatCitations(c domain.Citations) string {
	var b strings.Builder
	b.WriteString("Sources: ")
	b.WriteString(c.Article.Title)
	if c.Article.URL != "" {
		b.WriteString(" <" + c.Article.URL + ">")
	}
	if len(c.Sections) > 0 {
		b.WriteString("\nSections: " + strings.Join(dedupe(c.Sections), ", "))
	}
	if c.External {
		b.WriteString("\n(answered via external search)")
	}
	return b.String()
}

// dedupe keeps the first occurrence of each section name.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
