package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

// SearxngResult is one raw result from the SearXNG instance.
type SearxngResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searxngResponse struct {
	Results []SearxngResult `json:"results"`
}

// SearchSearXNG queries the SearXNG instance and returns raw results.
func SearchSearXNG(ctx context.Context, query string) ([]SearxngResult, error) {
	u, err := url.Parse(cfg.SearxngURL + "/search")
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	metrics.SearchRequests.Add(1)

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var data searxngResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	return data.Results, nil
}

// GroundingContext searches the web for query, fetches top result pages in
// parallel and formats them as a sources block for the LLM prompt. Returns
// the block and the attribution chunks for the results actually included.
// Grounding is best-effort: on search failure the call proceeds ungrounded.
func GroundingContext(ctx context.Context, query string) (string, []GroundingChunk) {
	cacheKey := CacheKey("grounding", query)
	if data, ok := CacheGet(ctx, cacheKey); ok {
		var cached groundingPayload
		if json.Unmarshal(data, &cached) == nil {
			return cached.Sources, cached.Attributions
		}
	}

	results, err := SearchSearXNG(ctx, query)
	if err != nil {
		slog.Warn("grounding: search failed, proceeding ungrounded",
			slog.String("query", query), slog.Any("error", err))
		return "", nil
	}
	if len(results) > cfg.MaxFetchURLs {
		results = results[:cfg.MaxFetchURLs]
	}

	contents := fetchContentsParallel(ctx, results)
	sources := BuildSourcesText(results, contents, cfg.MaxContentChars)
	chunks := BuildAttributions(results)

	if data, err := json.Marshal(groundingPayload{Sources: sources, Attributions: chunks}); err == nil {
		CacheSet(ctx, cacheKey, data)
	}
	return sources, chunks
}

type groundingPayload struct {
	Sources      string           `json:"sources"`
	Attributions []GroundingChunk `json:"attributions"`
}

// BuildSourcesText formats search results and their fetched content for LLM context.
func BuildSourcesText(results []SearxngResult, contents map[string]string, contentLimit int) string {
	var sb strings.Builder
	for i, r := range results {
		fmt.Fprintf(&sb, "\n[%d] %s\nURL: %s\n", i+1, r.Title, r.URL)
		if c, ok := contents[r.URL]; ok && c != "" {
			if len(c) > contentLimit {
				c = c[:contentLimit] + "..."
			}
			fmt.Fprintf(&sb, "Content: %s\n", c)
		} else if r.Content != "" {
			fmt.Fprintf(&sb, "Snippet: %s\n", r.Content)
		}
	}
	return sb.String()
}

// BuildAttributions converts search results into attribution metadata.
func BuildAttributions(results []SearxngResult) []GroundingChunk {
	chunks := make([]GroundingChunk, 0, len(results))
	for _, r := range results {
		chunks = append(chunks, GroundingChunk{Web: &WebSource{URI: r.URL, Title: r.Title}})
	}
	return chunks
}

// fetchContentsParallel fetches text content from result URLs in parallel.
func fetchContentsParallel(ctx context.Context, results []SearxngResult) map[string]string {
	contents := make(map[string]string, len(results))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, r := range results {
		wg.Add(1)
		go func(u string) {
			defer wg.Done()
			_, text, err := FetchURLContent(ctx, u)
			if err == nil && text != "" {
				mu.Lock()
				contents[u] = text
				mu.Unlock()
			}
		}(r.URL)
	}
	wg.Wait()
	return contents
}
