package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/IrfanSethi/WikiTalk/internal/adapters/driving/tui"
)

var chatSessionID string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat",
	Long: `Open the interactive chat for a session.

Uses the most recently used session unless --session names another
one. The session must have an article selected.

Controls:
  Enter - Ask the typed question
  Esc   - Quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatSessionID, "session", "s", "", "session ID (default: most recent)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("chat needs an interactive terminal - use 'wikitalk ask' in scripts")
	}

	if err := ensureServices(); err != nil {
		return err
	}

	session, err := resolveSession(cmd.Context(), chatSessionID)
	if err != nil {
		return err
	}
	if !session.HasArticle() {
		return fmt.Errorf("session %q has no article selected - run 'wikitalk session select %s <article>' first", session.Name, session.ID)
	}

	// Panic recovery so a TUI crash still prints a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	app, err := tui.NewApp(&tui.Ports{
		Chat:    chatService,
		Session: sessionService,
	}, session)
	if err != nil {
		return fmt.Errorf("failed to create chat: %w", err)
	}
	app.WithContext(cmd.Context())

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat error: %w", err)
	}
	return nil
}
