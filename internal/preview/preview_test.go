// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/news-engine/pkg/types"
)

func testClient() *Client {
	return NewClient(types.PreviewConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 2 * time.Second, UserAgent: "test/0.1"},
		Workers:    2,
	})
}

func page(meta, body string) string {
	head := ""
	if meta != "" {
		head = fmt.Sprintf(`<meta name="description" content="%s">`, meta)
	}
	return fmt.Sprintf(`<html><head>%s</head><body><p>%s</p></body></html>`, head, body)
}

func TestSnippetPrefersMetaDescription(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("A concise summary.", "Much longer body text."))
	}))
	defer ts.Close()

	got := testClient().Snippet(context.Background(), ts.URL, io.Discard)
	if got != "A concise summary." {
		t.Errorf("snippet = %q, want meta description", got)
	}
}

func TestSnippetFallsBackToBodyText(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page("", "Visible   body\n text here."))
	}))
	defer ts.Close()

	got := testClient().Snippet(context.Background(), ts.URL, io.Discard)
	if got != "Visible body text here." {
		t.Errorf("snippet = %q, want collapsed body text", got)
	}
}

func TestSnippetTruncation(t *testing.T) {
	long := strings.Repeat("a", 200)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page(long, ""))
	}))
	defer ts.Close()

	got := testClient().Snippet(context.Background(), ts.URL, io.Discard)
	want := strings.Repeat("a", 150) + "..."
	if got != want {
		t.Errorf("snippet length = %d, want 150 chars plus ellipsis", len(got))
	}
}

func TestSnippetExactlyAtCapNotTruncated(t *testing.T) {
	exact := strings.Repeat("b", 150)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, page(exact, ""))
	}))
	defer ts.Close()

	got := testClient().Snippet(context.Background(), ts.URL, io.Discard)
	if got != exact {
		t.Errorf("snippet = %q, 150-char text must not gain an ellipsis", got)
	}
}

func TestSnippetFailuresYieldPlaceholder(t *testing.T) {
	notFound := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer notFound.Close()

	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, page("too late", ""))
	}))
	defer slow.Close()

	slowClient := NewClient(types.PreviewConfig{
		HTTPConfig: types.HTTPConfig{Timeout: 20 * time.Millisecond},
	})

	tests := []struct {
		name   string
		client *Client
		url    string
	}{
		{"missing URL", testClient(), ""},
		{"non-2xx status", testClient(), notFound.URL},
		{"unreachable host", testClient(), "http://127.0.0.1:1"},
		{"timeout", slowClient, slow.URL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var log bytes.Buffer
			got := tt.client.Snippet(context.Background(), tt.url, &log)
			if got != Placeholder {
				t.Errorf("snippet = %q, want placeholder", got)
			}
			if !strings.Contains(log.String(), "preview") {
				t.Errorf("log output %q should contain a preview warning", log.String())
			}
		})
	}
}

func TestSnippetMemoized(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, page("cached", ""))
	}))
	defer ts.Close()

	c := testClient()
	for i := 0; i < 3; i++ {
		if got := c.Snippet(context.Background(), ts.URL, io.Discard); got != "cached" {
			t.Fatalf("snippet = %q", got)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestEnrichPopulatesBothPreviewFields(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, page("snippet for "+r.URL.Path, ""))
	}))
	defer ts.Close()

	articles := []types.Article{
		{Title: "a", Link: ts.URL + "/a", PublisherURL: ts.URL + "/pub"},
		{Title: "b", Link: ts.URL + "/b", PublisherURL: ts.URL + "/pub"},
		{Title: "c", Link: ts.URL + "/c"},
	}

	out := testClient().Enrich(context.Background(), articles, io.Discard)

	if out[0].LinkPreview != "snippet for /a" {
		t.Errorf("link preview = %q", out[0].LinkPreview)
	}
	if out[0].PublisherPreview != "snippet for /pub" || out[1].PublisherPreview != "snippet for /pub" {
		t.Errorf("publisher previews = %q / %q", out[0].PublisherPreview, out[1].PublisherPreview)
	}
	if out[2].PublisherPreview != Placeholder {
		t.Errorf("article without publisher URL should get the placeholder, got %q", out[2].PublisherPreview)
	}

	// The shared publisher URL is fetched once: /a, /b, /c, /pub.
	if n := atomic.LoadInt32(&hits); n != 4 {
		t.Errorf("server hit %d times, want 4", n)
	}

	// Enrichment works on a copy.
	if articles[0].LinkPreview != "" {
		t.Error("input slice was mutated")
	}
}
