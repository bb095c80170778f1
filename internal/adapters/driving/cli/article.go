package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IrfanSethi/WikiTalk/internal/adapters/driven/wikipedia"
	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
)

var (
	articleLanguage string
	articleLimit    int
)

var articleCmd = &cobra.Command{
	Use:   "article",
	Short: "Search and inspect Wikipedia articles",
}

var articleSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for article titles",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticleSearch,
}

var articleSectionsCmd = &cobra.Command{
	Use:   "sections [title]",
	Short: "Show an article's sections as WikiTalk chunks them",
	Long: `Fetch an article (caching it for later questions) and list its
sections with the number of chunks each one produced.`,
	Args: cobra.ExactArgs(1),
	RunE: runArticleSections,
}

func init() {
	articleCmd.PersistentFlags().StringVarP(&articleLanguage, "language", "l", "", "Wikipedia language edition (default: configured)")
	articleSearchCmd.Flags().IntVarP(&articleLimit, "limit", "n", 10, "maximum number of results")

	articleCmd.AddCommand(articleSearchCmd)
	articleCmd.AddCommand(articleSectionsCmd)
	rootCmd.AddCommand(articleCmd)
}

// searchClient returns the Wikipedia client for the --language flag,
// falling back to the configured default edition.
func searchClient() *wikipedia.Client {
	if articleLanguage == "" || articleLanguage == wikiClient.Language() {
		return wikiClient
	}
	return wikiClient.ForLanguage(articleLanguage).(*wikipedia.Client)
}

func runArticleSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	client := searchClient()
	titles, err := client.SearchTitles(cmd.Context(), args[0], articleLimit)
	if err != nil {
		return fmt.Errorf("searching articles: %w", err)
	}

	if len(titles) == 0 {
		cmd.Println("No matching articles.")
		return nil
	}
	for _, title := range titles {
		cmd.Printf("%s\n  %s\n", title, domain.ArticleURL(client.Language(), title))
	}
	return nil
}

func runArticleSections(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	language := searchClient().Language()
	title, url, chunks, err := chatService.EnsureArticleCached(cmd.Context(), args[0], language)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			return fmt.Errorf("article %q was not found on %s.wikipedia.org", args[0], language)
		}
		return err
	}

	cmd.Printf("%s <%s>\n\n", title, url)

	// Chunks arrive in document order, so counting runs per section
	// preserves the article's layout.
	section := ""
	count := 0
	flush := func() {
		if section != "" {
			cmd.Printf("  %-40s %d chunk(s)\n", section, count)
		}
	}
	for i := range chunks {
		if chunks[i].Section != section {
			flush()
			section = chunks[i].Section
			count = 0
		}
		count++
	}
	flush()
	return nil
}
