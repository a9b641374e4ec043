package engine

import (
	"context"
	"io"
	"net/http"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
)

// FetchURLContent downloads a page and extracts readable text for LLM
// context. Markdown conversion is attempted first; on failure the visible
// text is collected from the parsed HTML tree.
func FetchURLContent(ctx context.Context, rawURL string) (title, content string, err error) {
	metrics.FetchRequests.Add(1)
	defer func() {
		if err != nil {
			metrics.FetchErrors.Add(1)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("User-Agent", UserAgentBot)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := RetryHTTP(ctx, DefaultRetryConfig, func() (*http.Response, error) {
		return cfg.HTTPClient.Do(req)
	})
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
	if err != nil {
		return "", "", err
	}

	doc, err := html.Parse(strings.NewReader(string(body)))
	if err != nil {
		return "", "", err
	}
	title = findTitle(doc)

	if md, mdErr := htmltomarkdown.ConvertString(string(body)); mdErr == nil && strings.TrimSpace(md) != "" {
		return title, strings.TrimSpace(md), nil
	}
	return title, collectVisibleText(doc), nil
}

// findTitle walks the tree for the <title> element.
func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
		return strings.TrimSpace(n.FirstChild.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

// collectVisibleText gathers text nodes, skipping script/style/nav chrome.
func collectVisibleText(doc *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "nav", "footer", "header":
				return
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				sb.WriteString(t)
				sb.WriteByte('\n')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.TrimSpace(sb.String())
}
