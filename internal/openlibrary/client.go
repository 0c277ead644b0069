// Package openlibrary looks up book candidates in the Open Library catalog.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://openlibrary.org"

// fields trims the search response to what we actually use.
const fields = "title,author_name,key"

// Book is one catalog candidate.
type Book struct {
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	Key        string   `json:"key"`
}

type searchResponse struct {
	Docs []Book `json:"docs"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. baseURL overrides the public Open
// Library host, mainly for tests; pass "" for the default.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search returns the first catalog candidate for a free-text title, or nil
// when the catalog has no match. A non-200 upstream response is an error,
// not a miss.
func (c *Client) Search(ctx context.Context, title string) (*Book, error) {
	q := url.Values{}
	q.Set("q", title)
	q.Set("fields", fields)
	searchURL := c.baseURL + "/search.json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(sr.Docs) == 0 {
		return nil, nil
	}
	return &sr.Docs[0], nil
}
