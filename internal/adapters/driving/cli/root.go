// Package cli provides the wikitalk command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	configfile "github.com/IrfanSethi/WikiTalk/internal/adapters/driven/config/file"
	"github.com/IrfanSethi/WikiTalk/internal/adapters/driven/llm/gemini"
	"github.com/IrfanSethi/WikiTalk/internal/adapters/driven/storage/sqlite"
	"github.com/IrfanSethi/WikiTalk/internal/adapters/driven/wikipedia"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driving"
	"github.com/IrfanSethi/WikiTalk/internal/core/services"
	"github.com/IrfanSethi/WikiTalk/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Wired services. Tests inject fakes here; ensureServices builds the
// real stack on first use.
var (
	configStore    driven.ConfigStore
	store          *sqlite.Store
	wikiClient     *wikipedia.Client
	llmService     driven.LLMService
	sessionService driving.SessionService
	chatService    driving.ChatService
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "wikitalk",
	Short: "Chat with Wikipedia articles from your terminal",
	Long: `WikiTalk loads a Wikipedia article and answers your questions
strictly from its text.

Pick an article for a session, then ask away. Answers come from a
language model grounded in the article; without a model (or when it
has nothing to say) you get extractive snippets from the most relevant
sections instead.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// ensureServices wires the real adapter stack on first use.
// Commands that touch sessions or articles call this from their RunE;
// commands like version and help never pay the startup cost.
func ensureServices() error {
	if sessionService != nil && chatService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	configStore = cfg

	st, err := sqlite.NewStore(cfg.GetString(driven.ConfigDataDir))
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	store = st

	wikiClient = wikipedia.NewClient(wikipedia.Config{
		Language: cfg.GetString(driven.ConfigWikipediaLanguage),
	})

	llmService = gemini.NewLLMService(gemini.Config{
		APIKey: cfg.GetString(driven.ConfigLLMAPIKey),
		Model:  cfg.GetString(driven.ConfigLLMModel),
	})
	if llmService.Available() {
		logger.Debug("LLM configured: %s", llmService.ModelName())
	} else {
		logger.Debug("No LLM configured, answers fall back to extractive snippets")
	}

	sessionService = services.NewSessionService(st.SessionStore(), st.MessageStore())
	chatService = services.NewChatService(
		st.SessionStore(),
		st.MessageStore(),
		st.ArticleStore(),
		wikiClient,
		llmService,
		wikipedia.NewTitleSearch(wikiClient),
	)
	return nil
}

func closeServices() {
	if llmService != nil {
		_ = llmService.Close()
	}
	if store != nil {
		_ = store.Close()
	}
}
