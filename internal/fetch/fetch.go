// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries the news aggregation provider and returns raw
// article records for downstream normalization.
package fetch

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/news-engine/pkg/types"
)

// MaxResultsLimit is the upper bound the provider accepts per request.
const MaxResultsLimit = 100

// Query holds the scrape parameters: search text, a calendar date window,
// and a result cap.
type Query struct {
	Text       string
	From       time.Time
	To         time.Time
	MaxResults int
}

// Validate rejects unusable parameters before any network call is made.
func (q Query) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("query text is empty")
	}
	if q.MaxResults < 1 || q.MaxResults > MaxResultsLimit {
		return fmt.Errorf("max results %d out of range [1, %d]", q.MaxResults, MaxResultsLimit)
	}
	if !q.From.IsZero() && !q.To.IsZero() && q.To.Before(q.From) {
		return fmt.Errorf("date range is inverted: %s is after %s",
			q.From.Format(dateFmt), q.To.Format(dateFmt))
	}
	return nil
}

// window describes the date range for log output.
func (q Query) window() string {
	if q.From.IsZero() && q.To.IsZero() {
		return "any date"
	}
	return q.From.Format(dateFmt) + " to " + q.To.Format(dateFmt)
}

// Provider fetches raw articles from a single aggregation source.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, query Query, cfg types.ScrapeConfig) ([]types.RawArticle, error)
}

// Scrape validates the query, runs it against the provider, and caps the
// result count. A provider failure yields an empty slice plus the error so
// the caller can report it without crashing; zero matches yield an empty
// slice and no error. Progress and warnings are written to w.
func Scrape(ctx context.Context, query Query, provider Provider, cfg types.ScrapeConfig, w io.Writer) ([]types.RawArticle, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "scraping %s for %q (%s, max %d)\n",
		provider.Name(), query.Text, query.window(), query.MaxResults)

	raw, err := provider.Fetch(ctx, query, cfg)
	if err != nil {
		fmt.Fprintf(w, "error: scraping %s failed: %v\n", provider.Name(), err)
		return nil, fmt.Errorf("scraping %s: %w", provider.Name(), err)
	}

	if len(raw) == 0 {
		fmt.Fprintln(w, "warning: no articles found for the given query and date range")
		return nil, nil
	}

	if len(raw) > query.MaxResults {
		raw = raw[:query.MaxResults]
	}

	fmt.Fprintf(w, "scraped %d articles\n", len(raw))
	return raw, nil
}

const dateFmt = "2006-01-02"
