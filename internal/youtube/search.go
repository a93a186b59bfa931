package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/pavelc4/nimbus-tg-bot/pkg/logger"
)

const (
	searchEndpoint = "https://www.youtube.com/youtubei/v1/search?prettyPrint=false"
	searchClient   = "WEB"
	searchVersion  = "2.20240726.00.00"
)

// SearchResult is one ranked video hit.
type SearchResult struct {
	VideoID  string
	Title    string
	Channel  string
	Duration string
}

func (r SearchResult) URL() string {
	return WatchURL(r.VideoID)
}

// SearchClient talks to the public innertube search endpoint.
type SearchClient struct {
	http *http.Client
}

func NewSearchClient() *SearchClient {
	return &SearchClient{
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

type searchRequest struct {
	Context searchContext `json:"context"`
	Query   string        `json:"query"`
}

type searchContext struct {
	Client searchClientInfo `json:"client"`
}

type searchClientInfo struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	AcceptLang    string `json:"hl"`
	Region        string `json:"gl"`
}

var punctuation = regexp.MustCompile(`[^\w\s]`)

// Search returns up to limit ranked video results. A query that yields
// nothing is retried once with punctuation stripped; zero hits after the
// retry returns an empty slice and no error — not finding anything is an
// expected outcome, not a fault.
func (c *SearchClient) Search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	results, err := c.searchOnce(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(results) > 0 {
		return results, nil
	}

	simplified := strings.TrimSpace(punctuation.ReplaceAllString(query, ""))
	if simplified == "" || simplified == query {
		return nil, nil
	}
	logger.Debug("Retrying search without punctuation", "query", simplified)
	return c.searchOnce(ctx, simplified, limit)
}

func (c *SearchClient) searchOnce(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	body, err := json.Marshal(searchRequest{
		Context: searchContext{
			Client: searchClientInfo{
				ClientName:    searchClient,
				ClientVersion: searchVersion,
				AcceptLang:    "en",
				Region:        "US",
			},
		},
		Query: query,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/91.0.4472.124")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request: HTTP %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("search response: %w", err)
	}

	var results []SearchResult
	collectVideoRenderers(payload, &results, limit)
	return results, nil
}

// collectVideoRenderers walks the response tree in document order and pulls
// out every videoRenderer node until limit is reached. The surrounding shelf
// structure changes too often to model with typed structs.
func collectVideoRenderers(node any, out *[]SearchResult, limit int) {
	if limit > 0 && len(*out) >= limit {
		return
	}
	switch v := node.(type) {
	case map[string]any:
		if renderer, ok := v["videoRenderer"].(map[string]any); ok {
			if r, ok := parseVideoRenderer(renderer); ok {
				*out = append(*out, r)
			}
			return
		}
		for _, child := range v {
			collectVideoRenderers(child, out, limit)
		}
	case []any:
		for _, child := range v {
			collectVideoRenderers(child, out, limit)
		}
	}
}

func parseVideoRenderer(renderer map[string]any) (SearchResult, bool) {
	id, _ := renderer["videoId"].(string)
	if id == "" {
		return SearchResult{}, false
	}
	return SearchResult{
		VideoID:  id,
		Title:    firstRunText(renderer["title"]),
		Channel:  firstRunText(renderer["ownerText"]),
		Duration: simpleText(renderer["lengthText"]),
	}, true
}

func firstRunText(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	runs, ok := m["runs"].([]any)
	if !ok || len(runs) == 0 {
		return ""
	}
	run, ok := runs[0].(map[string]any)
	if !ok {
		return ""
	}
	text, _ := run["text"].(string)
	return text
}

func simpleText(node any) string {
	m, ok := node.(map[string]any)
	if !ok {
		return ""
	}
	text, _ := m["simpleText"].(string)
	return text
}
