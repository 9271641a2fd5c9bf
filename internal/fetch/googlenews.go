// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed/rss"

	"github.com/pdiddy/news-engine/internal/httputil"
	"github.com/pdiddy/news-engine/pkg/types"
)

// googleNewsBase is the Google News RSS search endpoint. Declared as a var so
// tests can substitute an httptest server.
var googleNewsBase = "https://news.google.com/rss/search"

// Language and region are fixed; the provider query surface does not expose
// them.
const (
	gnLanguage = "en-US"
	gnCountry  = "US"
	gnEdition  = "US:en"
)

// GoogleNews fetches articles from the Google News RSS search feed.
type GoogleNews struct {
	Client *http.Client

	// Log receives retry diagnostics; nil discards them.
	Log io.Writer
}

// Name returns the provider identifier.
func (g *GoogleNews) Name() string { return "google-news" }

// Fetch issues one GET against the RSS search endpoint and maps the feed
// items to raw article records. The date window is encoded with the feed's
// after:/before: query operators.
func (g *GoogleNews) Fetch(ctx context.Context, query Query, cfg types.ScrapeConfig) ([]types.RawArticle, error) {
	feedURL := buildFeedURL(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	client := g.Client
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	logw := g.Log
	if logw == nil {
		logw = io.Discard
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries, logw)
	if err != nil {
		return nil, fmt.Errorf("news feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned HTTP %d", resp.StatusCode)
	}

	parser := &rss.Parser{}
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing news feed: %w", err)
	}

	var articles []types.RawArticle
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		raw := types.RawArticle{
			Title:         strings.TrimSpace(item.Title),
			Description:   strings.TrimSpace(item.Description),
			PublishedDate: strings.TrimSpace(item.PubDate),
			URL:           strings.TrimSpace(item.Link),
		}
		if item.Source != nil {
			raw.Publisher = types.Publisher{
				Kind: types.PublisherStructured,
				Name: strings.TrimSpace(item.Source.Title),
				URL:  strings.TrimSpace(item.Source.URL),
			}
		}
		articles = append(articles, raw)
	}
	return articles, nil
}

// buildFeedURL constructs the search feed URL. Google News scopes the date
// window through after:/before: operators inside the q parameter rather than
// separate query fields.
func buildFeedURL(query Query) string {
	q := query.Text
	if !query.From.IsZero() {
		q += " after:" + query.From.Format(dateFmt)
	}
	if !query.To.IsZero() {
		q += " before:" + query.To.Format(dateFmt)
	}

	v := url.Values{}
	v.Set("q", q)
	v.Set("hl", gnLanguage)
	v.Set("gl", gnCountry)
	v.Set("ceid", gnEdition)
	return googleNewsBase + "?" + v.Encode()
}
