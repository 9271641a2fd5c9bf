// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the news-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/news-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the news-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "news-engine",
	Short: "Scrape, normalize, and export news-article metadata",
	Long: `news-engine queries the Google News aggregation feed for articles matching
a search term and date window, normalizes the raw records into a clean table
(parsed timestamps, flattened publishers, optional page previews), and browses
or exports the result as CSV, XLSX, JSON, or a reloadable result file.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./news-engine.yaml or ~/.config/news-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("news-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "news-engine"))
		}
	}

	viper.SetEnvPrefix("NEWS_ENGINE")
	viper.AutomaticEnv()

	viper.SetDefault("scrape.timeout", 20*time.Second)
	viper.SetDefault("scrape.max_retries", 3)
	viper.SetDefault("preview.timeout", 5*time.Second)
	viper.SetDefault("preview.workers", 4)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig assembles stage configs from viper.
func pipelineConfig() types.PipelineConfig {
	userAgent := viper.GetString("user_agent")
	if userAgent == "" {
		userAgent = "news-engine/" + version
	}
	return types.PipelineConfig{
		Scrape: types.ScrapeConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("scrape.timeout"),
				UserAgent: userAgent,
			},
			MaxRetries: viper.GetInt("scrape.max_retries"),
		},
		Preview: types.PreviewConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("preview.timeout"),
				UserAgent: userAgent,
			},
			Workers: viper.GetInt("preview.workers"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
