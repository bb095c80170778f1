package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage WikiTalk configuration",
	Long: `View and change configuration stored in ~/.wikitalk/config.toml.

Keys:
  llm.api_key         Gemini API key (or set GEMINI_API_KEY)
  llm.model           model name or alias ("flash", "pro")
  wikipedia.language  default language edition for new sessions
  data_dir            database location`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	cmd.Println("[llm]")
	if key := configStore.GetString(driven.ConfigLLMAPIKey); key != "" {
		cmd.Printf("  api_key: %s\n", maskAPIKey(key))
	} else {
		cmd.Println("  api_key: (not set)")
	}
	cmd.Printf("  model: %s\n", llmService.ModelName())
	cmd.Println()

	cmd.Println("[wikipedia]")
	cmd.Printf("  language: %s\n", wikiClient.Language())
	cmd.Println()

	cmd.Printf("data_dir: %s\n", store.Path())
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	key, value := args[0], args[1]
	switch key {
	case driven.ConfigLLMAPIKey, driven.ConfigLLMModel, driven.ConfigWikipediaLanguage, driven.ConfigDataDir:
	default:
		return fmt.Errorf("unknown configuration key %q", key)
	}

	if err := configStore.Set(key, value); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	cmd.Println(configStore.Path())
	return nil
}

// maskAPIKey hides all but the first and last few characters of a key.
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-8) + key[len(key)-4:]
}
