// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/news-engine/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Re-export a saved scrape without re-querying",
	Long: `Export loads a result file saved by "scrape --save" and emits the stored
table as CSV, XLSX, or JSON. The network is never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		rf, err := export.ReadResultFile(input)
		if err != nil {
			return err
		}

		wrote := false

		if path, _ := cmd.Flags().GetString("csv"); path != "" {
			data, err := export.CSV(rf.Articles)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d rows)\n", path, len(rf.Articles))
			wrote = true
		}

		if path, _ := cmd.Flags().GetString("xlsx"); path != "" {
			data, err := export.XLSX(rf.Articles)
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d rows)\n", path, len(rf.Articles))
			wrote = true
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			if err := export.FormatJSON(rf.Articles, os.Stdout); err != nil {
				return fmt.Errorf("encoding JSON: %w", err)
			}
			wrote = true
		}

		if !wrote {
			export.FormatTable(rf.Articles, os.Stdout)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().String("input", "", "result file saved by scrape --save (required)")
	exportCmd.Flags().String("csv", "", "write CSV to this path")
	exportCmd.Flags().String("xlsx", "", "write XLSX to this path")
	exportCmd.Flags().Bool("json", false, "print the table as JSON")
	exportCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(exportCmd)
}
