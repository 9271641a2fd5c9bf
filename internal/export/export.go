// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes the normalized result table: CSV and XLSX byte
// streams for download, a terminal table and JSON for browsing, and YAML
// result files that let a scrape be re-exported without re-querying.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Default artifact names for the download formats.
const (
	DefaultCSVName  = "google_news_results.csv"
	DefaultXLSXName = "google_news_results.xlsx"
)

// columns is the export schema, in order. CSV and XLSX share it.
var columns = []string{
	"title",
	"description",
	"published_at",
	"link",
	"publisher_name",
	"publisher_url",
	"link_preview",
	"publisher_preview",
}

// row renders one article in schema order. Timestamps are RFC 3339 UTC so
// identical tables always serialize identically.
func row(a types.Article) []string {
	return []string{
		a.Title,
		a.Description,
		a.PublishedAt.UTC().Format(time.RFC3339),
		a.Link,
		a.PublisherName,
		a.PublisherURL,
		a.LinkPreview,
		a.PublisherPreview,
	}
}

// FormatTable writes articles as a human-readable table to w.
func FormatTable(articles []types.Article, w io.Writer) {
	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-12s  %-24s  %s\n", "Rank", "Title", "Published", "Publisher", "Link")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, a := range articles {
		title := a.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		publisher := a.PublisherName
		if len(publisher) > 24 {
			publisher = publisher[:21] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-12s  %-24s  %s\n",
			i+1, title, a.PublishedAt.UTC().Format("2006-01-02"), publisher, a.Link)
	}

	fmt.Fprintf(w, "\n%d articles\n", len(articles))
}

// FormatJSON writes articles as indented JSON to w.
func FormatJSON(articles []types.Article, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(articles)
}
