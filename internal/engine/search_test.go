package engine

import (
	"strings"
	"testing"
)

func TestBuildSourcesText(t *testing.T) {
	results := []SearxngResult{
		{Title: "Go Docs", URL: "https://go.dev/doc", Content: "snippet text"},
		{Title: "Career Guide", URL: "https://example.com/guide", Content: "guide snippet"},
	}
	contents := map[string]string{
		"https://go.dev/doc": "fetched page text that is much longer than the snippet",
	}

	got := BuildSourcesText(results, contents, 20)

	if !strings.Contains(got, "[1] Go Docs") || !strings.Contains(got, "[2] Career Guide") {
		t.Errorf("missing numbered titles:\n%s", got)
	}
	if !strings.Contains(got, "Content: fetched page text th...") {
		t.Errorf("fetched content not truncated at limit:\n%s", got)
	}
	if !strings.Contains(got, "Snippet: guide snippet") {
		t.Errorf("unfetched result should fall back to its snippet:\n%s", got)
	}
}

func TestBuildAttributions(t *testing.T) {
	results := []SearxngResult{
		{Title: "Go Docs", URL: "https://go.dev/doc"},
	}
	chunks := BuildAttributions(results)
	if len(chunks) != 1 {
		t.Fatalf("chunks = %d, want 1", len(chunks))
	}
	if chunks[0].Web == nil || chunks[0].Web.URI != "https://go.dev/doc" || chunks[0].Web.Title != "Go Docs" {
		t.Errorf("chunk = %+v", chunks[0])
	}
}

func TestCacheKeyStable(t *testing.T) {
	a := CacheKey("grounding", "query one")
	b := CacheKey("grounding", "query one")
	c := CacheKey("grounding", "query two")
	if a != b {
		t.Error("same inputs produced different keys")
	}
	if a == c {
		t.Error("different inputs produced the same key")
	}
}
