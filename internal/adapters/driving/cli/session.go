package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage chat sessions",
	Long: `Create, list, and manage chat sessions.

Each session has its own article, language edition, and conversation
history. Selecting a new article keeps the history but answers are
grounded in the new article from then on.`,
	RunE: runSessionList,
}

var sessionNewLanguage string

var sessionNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create a new session",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSessionNew,
}

var sessionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sessions",
	RunE:  runSessionList,
}

var sessionRenameCmd = &cobra.Command{
	Use:   "rename <session-id> <name>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionRename,
}

var sessionDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its messages",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionDelete,
}

var sessionSelectCmd = &cobra.Command{
	Use:   "select <session-id> <article>",
	Short: "Select the article for a session",
	Long: `Select the Wikipedia article a session answers from.

The article may be a full URL (https://en.wikipedia.org/wiki/Alan_Turing)
or a bare title ("Alan Turing"). A URL's language edition overrides the
session's language.`,
	Args: cobra.ExactArgs(2),
	RunE: runSessionSelect,
}

var sessionLanguageCmd = &cobra.Command{
	Use:   "language <session-id> <code>",
	Short: "Set the session's Wikipedia language edition",
	Args:  cobra.ExactArgs(2),
	RunE:  runSessionLanguage,
}

var sessionClearCmd = &cobra.Command{
	Use:   "clear <session-id>",
	Short: "Clear the session's article selection",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionClear,
}

var sessionHistoryCmd = &cobra.Command{
	Use:   "history <session-id>",
	Short: "Show the session's conversation history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionHistory,
}

func init() {
	sessionNewCmd.Flags().StringVarP(&sessionNewLanguage, "language", "l", "", "Wikipedia language edition (default: en)")

	sessionCmd.AddCommand(sessionNewCmd)
	sessionCmd.AddCommand(sessionListCmd)
	sessionCmd.AddCommand(sessionRenameCmd)
	sessionCmd.AddCommand(sessionDeleteCmd)
	sessionCmd.AddCommand(sessionSelectCmd)
	sessionCmd.AddCommand(sessionLanguageCmd)
	sessionCmd.AddCommand(sessionClearCmd)
	sessionCmd.AddCommand(sessionHistoryCmd)
	rootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}

	session, err := sessionService.CreateSession(cmd.Context(), name, sessionNewLanguage)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	cmd.Printf("Created session %q (%s)\n", session.Name, session.ID)
	return nil
}

func runSessionList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	sessions, err := sessionService.ListSessions(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions yet. Create one with 'wikitalk session new'.")
		return nil
	}

	for i := range sessions {
		article := "(no article)"
		if sessions[i].HasArticle() {
			article = sessions[i].ArticleTitle
		}
		cmd.Printf("%s  %-20s  [%s]  %s\n", sessions[i].ID, sessions[i].Name, sessions[i].Language, article)
	}
	return nil
}

func runSessionRename(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if err := sessionService.RenameSession(cmd.Context(), args[0], args[1]); err != nil {
		return sessionError(args[0], err)
	}
	cmd.Printf("Renamed session to %q\n", args[1])
	return nil
}

func runSessionDelete(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if err := sessionService.DeleteSession(cmd.Context(), args[0]); err != nil {
		return sessionError(args[0], err)
	}
	cmd.Println("Session deleted")
	return nil
}

func runSessionSelect(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	session, err := sessionService.SelectArticle(cmd.Context(), args[0], args[1])
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("invalid article reference %q: %w", args[1], err)
		}
		return sessionError(args[0], err)
	}

	cmd.Printf("Session %q now answers from %q (%s)\n", session.Name, session.ArticleTitle, session.Language)
	return nil
}

func runSessionLanguage(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if err := sessionService.SetLanguage(cmd.Context(), args[0], args[1]); err != nil {
		return sessionError(args[0], err)
	}
	cmd.Printf("Language set to %s\n", args[1])
	return nil
}

func runSessionClear(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if err := sessionService.ClearArticle(cmd.Context(), args[0]); err != nil {
		return sessionError(args[0], err)
	}
	cmd.Println("Article selection cleared")
	return nil
}

func runSessionHistory(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	messages, err := sessionService.ListMessages(cmd.Context(), args[0])
	if err != nil {
		return sessionError(args[0], err)
	}

	if len(messages) == 0 {
		cmd.Println("No messages yet.")
		return nil
	}

	for i := range messages {
		switch messages[i].Role {
		case domain.RoleUser:
			cmd.Printf("You: %s\n", messages[i].Text)
		case domain.RoleAssistant:
			cmd.Printf("WikiTalk: %s\n", messages[i].Text)
			if messages[i].Citations != nil && len(messages[i].Citations.Sections) > 0 {
				cmd.Printf("  [%s]\n", strings.Join(dedupe(messages[i].Citations.Sections), ", "))
			}
		}
		cmd.Println()
	}
	return nil
}

func sessionError(id string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("no session with ID %q", id)
	}
	return err
}
