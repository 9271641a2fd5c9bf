// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/news-engine/internal/export"
	"github.com/pdiddy/news-engine/internal/fetch"
	"github.com/pdiddy/news-engine/internal/normalize"
	"github.com/pdiddy/news-engine/internal/preview"
	"github.com/pdiddy/news-engine/internal/store"
	"github.com/pdiddy/news-engine/pkg/types"
)

const dateFmt = "2006-01-02"

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape the news aggregator and normalize the results",
	Long: `Scrape queries the Google News feed for articles matching a search term and
date window, normalizes the raw records (lenient date parsing, flattened
publisher fields, newest-first ordering), optionally enriches each row with
page preview snippets, and writes the table to the requested outputs.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().String("query", "", "search query (required)")
	scrapeCmd.Flags().String("from", "", "date range start (YYYY-MM-DD)")
	scrapeCmd.Flags().String("to", "", "date range end (YYYY-MM-DD)")
	scrapeCmd.Flags().Int("max-results", 10, "maximum number of articles (1-100)")
	scrapeCmd.Flags().Bool("previews", false, "fetch preview snippets for article and publisher pages")
	scrapeCmd.Flags().String("csv", "", "write CSV to this path (e.g. "+export.DefaultCSVName+")")
	scrapeCmd.Flags().String("xlsx", "", "write XLSX to this path (e.g. "+export.DefaultXLSXName+")")
	scrapeCmd.Flags().String("save", "", "save the scrape as a reloadable YAML result file")
	scrapeCmd.Flags().String("db", "", "append the table to a SQLite archive at this path")
	scrapeCmd.Flags().Bool("json", false, "print the table as JSON instead of the text table")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	query, err := queryFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg := pipelineConfig()
	ctx := cmd.Context()

	provider := &fetch.GoogleNews{
		Client: &http.Client{Timeout: cfg.Scrape.Timeout},
		Log:    os.Stderr,
	}

	raw, err := fetch.Scrape(ctx, query, provider, cfg.Scrape, os.Stderr)
	if err != nil {
		return err
	}

	articles := normalize.Normalize(raw, os.Stderr)

	withPreviews, _ := cmd.Flags().GetBool("previews")
	if withPreviews && len(articles) > 0 {
		articles = preview.NewClient(cfg.Preview).Enrich(ctx, articles, os.Stderr)
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		if err := export.FormatJSON(articles, os.Stdout); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	} else {
		export.FormatTable(articles, os.Stdout)
	}

	return writeOutputs(cmd, query, withPreviews, articles, cfg.Store)
}

// queryFromFlags builds and validates the scrape query.
func queryFromFlags(cmd *cobra.Command) (fetch.Query, error) {
	text, _ := cmd.Flags().GetString("query")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	query := fetch.Query{Text: text, MaxResults: maxResults}

	var err error
	if query.From, err = parseDateFlag(cmd, "from"); err != nil {
		return fetch.Query{}, err
	}
	if query.To, err = parseDateFlag(cmd, "to"); err != nil {
		return fetch.Query{}, err
	}

	if err := query.Validate(); err != nil {
		return fetch.Query{}, err
	}
	return query, nil
}

func parseDateFlag(cmd *cobra.Command, name string) (time.Time, error) {
	s, _ := cmd.Flags().GetString(name)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFmt, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", name, s)
	}
	return t, nil
}

// writeOutputs handles the file and archive sinks selected by flags.
func writeOutputs(cmd *cobra.Command, query fetch.Query, previews bool, articles []types.Article, storeCfg types.StoreConfig) error {
	if path, _ := cmd.Flags().GetString("csv"); path != "" {
		data, err := export.CSV(articles)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d rows)\n", path, len(articles))
	}

	if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
		data, err := export.XLSX(articles)
		if err != nil {
			return err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d rows)\n", path, len(articles))
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := export.WriteResultFile(path, query, previews, articles); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", path)
	}

	if path, _ := cmd.Flags().GetString("db"); path != "" {
		storeCfg.Path = path
		s, err := store.Open(storeCfg)
		if err != nil {
			return err
		}
		defer s.Close()
		n, err := s.Append(cmd.Context(), articles)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "archived %d rows to %s\n", n, path)
	}

	return nil
}
