// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize turns raw provider records into the clean, sorted result
// table. Every step is fault tolerant per row: a bad timestamp drops the row,
// a bad publisher blob empties the derived fields, and neither aborts the
// batch.
package normalize

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/araddon/dateparse"

	"github.com/pdiddy/news-engine/pkg/types"
)

// Normalize converts raw articles into the result table: it parses the
// free-text timestamps leniently, drops records that have none, flattens the
// publisher variant into two scalar fields, and sorts the survivors by
// publication time, newest first. Ties keep their input order. The input
// slice is never mutated; diagnostics go to w.
//
// Preview enrichment is a separate stage (see the preview package) so that
// normalization stays a pure function of its input.
func Normalize(raw []types.RawArticle, w io.Writer) []types.Article {
	out := make([]types.Article, 0, len(raw))

	for _, rec := range raw {
		publishedAt, err := dateparse.ParseAny(rec.PublishedDate)
		if err != nil {
			fmt.Fprintf(w, "warning: dropping %q: unparseable published date %q\n", rec.Title, rec.PublishedDate)
			continue
		}

		article := types.Article{
			Title:       rec.Title,
			Description: rec.Description,
			PublishedAt: publishedAt,
			Link:        rec.URL,
		}

		name, pubURL, err := flattenPublisher(rec.Publisher)
		if err != nil {
			fmt.Fprintf(w, "warning: %q: unparseable publisher: %v\n", rec.Title, err)
		} else {
			article.PublisherName = name
			article.PublisherURL = pubURL
		}

		out = append(out, article)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	return out
}

// flattenPublisher resolves the publisher variant into its two scalar
// fields. An encoded blob that fails to decode returns an error; the caller
// logs it and keeps the record with empty fields.
func flattenPublisher(p types.Publisher) (name, url string, err error) {
	switch p.Kind {
	case types.PublisherStructured:
		return p.Name, p.URL, nil
	case types.PublisherEncoded:
		var obj struct {
			Href  string `json:"href"`
			Title string `json:"title"`
		}
		if err := json.Unmarshal([]byte(p.Raw), &obj); err != nil {
			return "", "", fmt.Errorf("decoding publisher blob %q: %w", p.Raw, err)
		}
		return obj.Title, obj.Href, nil
	default:
		return "", "", nil
	}
}
