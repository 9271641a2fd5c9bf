// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/pdiddy/news-engine/pkg/types"
)

// CSV serializes articles to CSV bytes: a header row followed by one data
// row per article. An empty table yields the header row only. Output is a
// pure function of the table contents.
func CSV(articles []types.Article) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}
	for _, a := range articles {
		if err := w.Write(row(a)); err != nil {
			return nil, fmt.Errorf("writing CSV row for %q: %w", a.Title, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}
