// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package preview fetches linked pages and extracts short display snippets.
// Every failure mode degrades to a fixed placeholder string; nothing here
// returns an error to the caller.
package preview

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Placeholder is returned whenever a snippet cannot be produced. Consumers
// rely on the preview fields never being empty.
const Placeholder = "No preview available."

// snippetMaxLen is the snippet length cap in characters; longer text is cut
// and marked with a trailing ellipsis.
const snippetMaxLen = 150

const (
	defaultTimeout = 5 * time.Second
	defaultWorkers = 4
)

// Client fetches preview snippets with a short per-request timeout. Snippets
// are memoized per URL for the client's lifetime, so repeated URLs across
// rows (or between the link and publisher columns) cost one round trip.
type Client struct {
	httpClient *http.Client
	userAgent  string
	workers    int

	mu    sync.Mutex
	cache map[string]string
}

// NewClient builds a preview client from cfg, applying the 5 s timeout and
// worker-count defaults.
func NewClient(cfg types.PreviewConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  cfg.UserAgent,
		workers:    workers,
		cache:      make(map[string]string),
	}
}

// Snippet returns a short text extract for the page at rawURL. It prefers
// the meta description and falls back to the page's visible text. On any
// failure (missing URL, timeout, non-2xx status, parse error) it logs a
// warning to w and returns the placeholder.
func (c *Client) Snippet(ctx context.Context, rawURL string, w io.Writer) string {
	c.mu.Lock()
	if s, ok := c.cache[rawURL]; ok {
		c.mu.Unlock()
		return s
	}
	c.mu.Unlock()

	s, err := c.fetch(ctx, rawURL)
	if err != nil {
		fmt.Fprintf(w, "warning: preview for %q unavailable: %v\n", rawURL, err)
		s = Placeholder
	}

	c.mu.Lock()
	c.cache[rawURL] = s
	c.mu.Unlock()
	return s
}

// Enrich returns a copy of articles with LinkPreview and PublisherPreview
// populated. Distinct URLs are fetched by a bounded worker pool; the
// per-article assignment afterwards is served from the cache. Cancelling ctx
// stops further fetches, leaving the remaining rows on the placeholder.
func (c *Client) Enrich(ctx context.Context, articles []types.Article, w io.Writer) []types.Article {
	seen := make(map[string]struct{})
	var urls []string
	for _, a := range articles {
		for _, u := range []string{a.Link, a.PublisherURL} {
			if u == "" {
				continue
			}
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			urls = append(urls, u)
		}
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range jobs {
				if ctx.Err() != nil {
					continue
				}
				c.Snippet(ctx, u, w)
			}
		}()
	}
	for _, u := range urls {
		jobs <- u
	}
	close(jobs)
	wg.Wait()

	out := make([]types.Article, len(articles))
	copy(out, articles)
	for i := range out {
		out[i].LinkPreview = c.lookup(ctx, out[i].Link, w)
		out[i].PublisherPreview = c.lookup(ctx, out[i].PublisherURL, w)
	}
	return out
}

// lookup is Snippet that short-circuits absent URLs without logging a
// warning for them.
func (c *Client) lookup(ctx context.Context, rawURL string, w io.Writer) string {
	if rawURL == "" {
		return Placeholder
	}
	return c.Snippet(ctx, rawURL, w)
}

// fetch retrieves the page and extracts the snippet text.
func (c *Client) fetch(ctx context.Context, rawURL string) (string, error) {
	if rawURL == "" {
		return "", fmt.Errorf("no URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("page returned HTTP %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parsing page: %w", err)
	}

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		if desc = strings.TrimSpace(desc); desc != "" {
			return truncateSnippet(desc), nil
		}
	}

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if text == "" {
		return "", fmt.Errorf("page has no extractable text")
	}
	return truncateSnippet(text), nil
}

// truncateSnippet cuts s to the snippet cap, appending an ellipsis marker
// only when something was actually cut.
func truncateSnippet(s string) string {
	runes := []rune(s)
	if len(runes) <= snippetMaxLen {
		return s
	}
	return string(runes[:snippetMaxLen]) + "..."
}
