// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the news-engine pipeline.
package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// RawArticle is an article entry exactly as the aggregation provider returned
// it: loosely typed, every field optional, the timestamp free text. The
// normalize stage turns these into Articles.
type RawArticle struct {
	// Title is the article headline.
	Title string `json:"title"`

	// Description is the provider's summary text, possibly empty and
	// possibly containing markup.
	Description string `json:"description,omitempty"`

	// PublishedDate is the publication timestamp as free text
	// (e.g. "Mon, 05 Jun 2023 07:00:00 GMT"). May be empty or malformed.
	PublishedDate string `json:"published date,omitempty"`

	// URL is the article link.
	URL string `json:"url"`

	// Publisher identifies the publishing outlet. See the Publisher variant.
	Publisher Publisher `json:"publisher,omitempty"`
}

// PublisherKind discriminates the Publisher variant.
type PublisherKind int

const (
	// PublisherAbsent means the provider returned no publisher at all.
	PublisherAbsent PublisherKind = iota

	// PublisherStructured means the provider returned an object with
	// href/title fields.
	PublisherStructured

	// PublisherEncoded means the provider returned a text blob that should
	// itself be JSON. It is decoded during flattening, not here.
	PublisherEncoded
)

// Publisher is the provider's publisher field. The aggregation source returns
// it in three shapes — absent, an embedded {href,title} object, or a
// JSON-encoded string — so it is modeled as an explicit variant rather than
// an any-typed field.
type Publisher struct {
	Kind PublisherKind

	// Name and URL are populated when Kind is PublisherStructured.
	Name string
	URL  string

	// Raw holds the undecoded text when Kind is PublisherEncoded.
	Raw string
}

// publisherObject is the structured wire shape.
type publisherObject struct {
	Href  string `json:"href"`
	Title string `json:"title"`
}

// UnmarshalJSON accepts null, an {href,title} object, or a bare string and
// records which shape was seen. Decoding of the string payload is deferred to
// the flattening step so that a bad blob can be logged per record.
func (p *Publisher) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*p = Publisher{Kind: PublisherAbsent}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decoding publisher string: %w", err)
		}
		*p = Publisher{Kind: PublisherEncoded, Raw: raw}
		return nil
	}
	var obj publisherObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding publisher object: %w", err)
	}
	*p = Publisher{Kind: PublisherStructured, Name: obj.Title, URL: obj.Href}
	return nil
}

// MarshalJSON writes the variant back in its source shape.
func (p Publisher) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PublisherStructured:
		return json.Marshal(publisherObject{Href: p.URL, Title: p.Name})
	case PublisherEncoded:
		return json.Marshal(p.Raw)
	default:
		return []byte("null"), nil
	}
}

// Article is one normalized row of the result table. Every Article has a
// valid PublishedAt — raw records whose timestamp cannot be parsed are
// dropped, not zero-filled — and the preview fields are always populated
// once enrichment has run.
type Article struct {
	// Title is the article headline.
	Title string `json:"title" yaml:"title"`

	// Description is the provider's summary text.
	Description string `json:"description" yaml:"description"`

	// PublishedAt is the parsed publication timestamp.
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`

	// Link is the article URL.
	Link string `json:"link" yaml:"link"`

	// PublisherName and PublisherURL are the flattened publisher fields;
	// empty when the provider supplied no usable publisher.
	PublisherName string `json:"publisher_name" yaml:"publisher_name"`
	PublisherURL  string `json:"publisher_url" yaml:"publisher_url"`

	// LinkPreview and PublisherPreview are short page snippets, or the
	// fixed placeholder when enrichment failed or was skipped.
	LinkPreview      string `json:"link_preview,omitempty" yaml:"link_preview,omitempty"`
	PublisherPreview string `json:"publisher_preview,omitempty" yaml:"publisher_preview,omitempty"`
}
