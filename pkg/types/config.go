// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "news-engine/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScrapeConfig holds settings for the fetch stage.
type ScrapeConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxRetries is the number of retry attempts on rate-limit responses.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PreviewConfig holds settings for the preview-enrichment stage.
type PreviewConfig struct {
	HTTPConfig `yaml:",inline"`

	// Workers is the number of concurrent preview fetches (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// StoreConfig holds settings for the optional SQLite archive sink.
type StoreConfig struct {
	// Path is the database file (e.g. "google_news.db").
	Path string `json:"path" yaml:"path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Scrape  ScrapeConfig  `json:"scrape" yaml:"scrape"`
	Preview PreviewConfig `json:"preview" yaml:"preview"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
