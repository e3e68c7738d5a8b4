// Package extraction talks to the external document-AI extraction service
// and caches its responses.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/taxdesk-erp/taxdesk/internal/extract"
)

// Client wraps interactions with the extraction service API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
}

// NewClient constructs a client. The cache is optional.
func NewClient(baseURL string, cache *Cache) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache: cache,
	}
}

// Ping checks if the remote extraction service is available.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/health", c.baseURL), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return fmt.Errorf("extraction service returned status %d", resp.StatusCode)
	}
	return nil
}

type extractRequest struct {
	DocumentID   string `json:"documentId"`
	CategoryHint string `json:"categoryHint,omitempty"`
}

// Extract requests extraction output for a stored document. Responses come
// back as loosely shaped JSON; parsing degrades to an empty document rather
// than failing on malformed sections.
func (c *Client) Extract(ctx context.Context, documentID, categoryHint string) (extract.Document, error) {
	if c.cache != nil {
		if doc, ok := c.cache.Get(ctx, documentID, categoryHint); ok {
			return doc, nil
		}
	}

	payload, err := json.Marshal(extractRequest{DocumentID: documentID, CategoryHint: categoryHint})
	if err != nil {
		return extract.Document{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/extract", c.baseURL), bytes.NewReader(payload))
	if err != nil {
		return extract.Document{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return extract.Document{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 400 {
		return extract.Document{}, fmt.Errorf("extraction failed with status %d", resp.StatusCode)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return extract.Document{}, err
	}

	doc := extract.ParseDocument(raw)
	if c.cache != nil {
		c.cache.Put(ctx, documentID, categoryHint, doc)
	}
	return doc, nil
}
