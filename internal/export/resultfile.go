// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/news-engine/internal/fetch"
	"github.com/pdiddy/news-engine/pkg/types"
)

// ResultFile is the on-disk representation of a scrape and its normalized
// table. A saved scrape can be re-exported to CSV or XLSX later without
// touching the network again.
type ResultFile struct {
	Query    ResultQuery     `yaml:"query"`
	Articles []types.Article `yaml:"articles"`
	Summary  ResultSummary   `yaml:"summary"`
}

// ResultQuery stores the scrape parameters in a serializable form.
type ResultQuery struct {
	Text       string `yaml:"text"`
	From       string `yaml:"from,omitempty"`
	To         string `yaml:"to,omitempty"`
	MaxResults int    `yaml:"max_results"`
	Previews   bool   `yaml:"previews"`
}

// ResultSummary stores table statistics and a timestamp.
type ResultSummary struct {
	Total     int       `yaml:"total"`
	Timestamp time.Time `yaml:"timestamp"`
}

const dateFmt = "2006-01-02"

// WriteResultFile saves the query parameters and normalized articles to a
// YAML file.
func WriteResultFile(path string, query fetch.Query, previews bool, articles []types.Article) error {
	rf := ResultFile{
		Query: ResultQuery{
			Text:       query.Text,
			MaxResults: query.MaxResults,
			Previews:   previews,
		},
		Articles: articles,
		Summary: ResultSummary{
			Total:     len(articles),
			Timestamp: time.Now(),
		},
	}

	if !query.From.IsZero() {
		rf.Query.From = query.From.Format(dateFmt)
	}
	if !query.To.IsZero() {
		rf.Query.To = query.To.Format(dateFmt)
	}

	data, err := yaml.Marshal(&rf)
	if err != nil {
		return fmt.Errorf("marshaling result file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadResultFile loads a previously saved scrape from disk.
func ReadResultFile(path string) (*ResultFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading result file: %w", err)
	}
	var rf ResultFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing result file: %w", err)
	}
	return &rf, nil
}
