package cms

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client fetches studio content from a remote CMS over JSON.
type Client struct {
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
}

// NewClient constructs a Client with the provided base URL.
func NewClient(baseURL string) *Client {
	baseURL = strings.TrimSpace(baseURL)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		retries: 1,
		backoff: 250 * time.Millisecond,
	}
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool { return c != nil && c.baseURL != "" }

// LoadContent implements Provider. A failed request is retried once.
func (c *Client) LoadContent(ctx context.Context) (Content, error) {
	if !c.Configured() {
		return Content{}, ErrNotFound
	}
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Content{}, ctx.Err()
			case <-time.After(c.backoff):
			}
		}
		content, err := c.fetch(ctx)
		if err == nil {
			return content, nil
		}
		if errors.Is(err, ErrNotFound) {
			return Content{}, err
		}
		lastErr = err
	}
	return Content{}, lastErr
}

func (c *Client) fetch(ctx context.Context) (Content, error) {
	endpoint, err := url.JoinPath(c.baseURL, "content", "studio")
	if err != nil {
		return Content{}, err
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: 5 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Content{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Content{}, fmt.Errorf("cms: content request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return Content{}, ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return Content{}, fmt.Errorf("cms: content remote status %d", resp.StatusCode)
	}
	var payload Content
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Content{}, fmt.Errorf("cms: decode content: %w", err)
	}
	if strings.TrimSpace(payload.Studio.Name) == "" && len(payload.Projects) == 0 && len(payload.Team) == 0 {
		return Content{}, fmt.Errorf("cms: empty content payload")
	}
	payload.Source = "remote:" + c.baseURL
	return payload, nil
}
