// Package wikipedia fetches plain-text article extracts and title search
// results from the MediaWiki API of a Wikipedia language edition.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/IrfanSethi/WikiTalk/internal/core/domain"
	"github.com/IrfanSethi/WikiTalk/internal/core/ports/driven"
)

// Ensure Client implements the interfaces.
var (
	_ driven.ArticleSource        = (*Client)(nil)
	_ driven.ArticleSourceFactory = (*Client)(nil)
)

// Default configuration values.
const (
	DefaultLanguage = domain.DefaultLanguage
	DefaultTimeout  = 20 * time.Second

	// DefaultUserAgent identifies the client per the Wikimedia API policy,
	// which asks for a descriptive User-Agent with contact information.
	DefaultUserAgent = "WikiTalk/1.0 (https://github.com/IrfanSethi/WikiTalk)"

	// requestsPerSecond keeps well inside the Wikimedia rate guidance.
	requestsPerSecond = 5
)

// Config holds configuration for the Wikipedia client.
type Config struct {
	// Language is the Wikipedia edition code (default: "en").
	Language string

	// BaseURL overrides the API endpoint; used in tests. When empty the
	// endpoint is derived from Language.
	BaseURL string

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Timeout is the request timeout (default: 20s).
	Timeout time.Duration
}

// Client talks to the MediaWiki action API of one language edition.
// ForLanguage derives sibling clients that share the HTTP client and
// rate limiter, so the limit applies across editions.
type Client struct {
	client    *http.Client
	limiter   *rate.Limiter
	language  string
	baseURL   string
	userAgent string
}

// NewClient creates a Wikipedia client for the configured language edition.
func NewClient(cfg Config) *Client {
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		language:  cfg.Language,
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
	}
}

// Language returns the language edition code this client is bound to.
func (c *Client) Language() string {
	return c.language
}

// ForLanguage returns a client bound to another language edition.
// The HTTP client and rate limiter are shared with the receiver.
func (c *Client) ForLanguage(language string) driven.ArticleSource {
	if language == "" || language == c.language {
		return c
	}
	clone := *c
	clone.language = language
	if c.baseURL != "" {
		// An explicit BaseURL (tests, mirrors) serves every edition.
		clone.baseURL = c.baseURL
	}
	return &clone
}

func (c *Client) apiURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", c.language)
}

// extractResponse is the action=query&prop=extracts|revisions|info shape.
type extractResponse struct {
	Query struct {
		Pages []struct {
			PageID    int64  `json:"pageid"`
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Extract   string `json:"extract"`
			FullURL   string `json:"fullurl"`
			Revisions []struct {
				RevID int64 `json:"revid"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

// FetchExtract retrieves the plain-text extract for a title.
// Redirects are followed; domain.ErrNotFound is returned when the title
// does not resolve to an article.
func (c *Client) FetchExtract(ctx context.Context, title string) (*driven.ArticleExtract, error) {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"redirects":     {"1"},
		"titles":        {title},
		"prop":          {"extracts|revisions|info"},
		"explaintext":   {"1"},
		"rvprop":        {"ids"},
		"inprop":        {"url"},
	}

	var result extractResponse
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("wikipedia: API error %s: %s", result.Error.Code, result.Error.Info)
	}
	if len(result.Query.Pages) == 0 {
		return nil, fmt.Errorf("%w: no article %q on %s.wikipedia.org", domain.ErrNotFound, title, c.language)
	}

	page := result.Query.Pages[0]
	if page.Missing || page.Extract == "" {
		return nil, fmt.Errorf("%w: no article %q on %s.wikipedia.org", domain.ErrNotFound, title, c.language)
	}

	extract := &driven.ArticleExtract{
		Title:   page.Title,
		PageID:  page.PageID,
		URL:     page.FullURL,
		Extract: page.Extract,
	}
	if len(page.Revisions) > 0 {
		extract.RevisionID = page.Revisions[0].RevID
	}
	if extract.URL == "" {
		extract.URL = domain.ArticleURL(c.language, page.Title)
	}
	return extract, nil
}

// searchResponse is the list=search response shape.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title string `json:"title"`
		} `json:"search"`
	} `json:"query"`
	Error *struct {
		Code string `json:"code"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

// SearchTitles returns up to limit article titles matching the query.
func (c *Client) SearchTitles(ctx context.Context, query string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 10
	}
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"formatversion": {"2"},
		"list":          {"search"},
		"srsearch":      {query},
		"srlimit":       {fmt.Sprintf("%d", limit)},
		"srprop":        {""},
	}

	var result searchResponse
	if err := c.get(ctx, params, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, fmt.Errorf("wikipedia: API error %s: %s", result.Error.Code, result.Error.Info)
	}

	titles := make([]string, 0, len(result.Query.Search))
	for _, hit := range result.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// get performs one rate-limited API request and decodes the JSON body.
func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wikipedia: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL()+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return fmt.Errorf("wikipedia: create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("wikipedia: send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("wikipedia: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wikipedia: API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("wikipedia: decode response: %w", err)
	}
	return nil
}
