package avl

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a simple HTTP client for fetching the AVL feed and roster.
// Library users embedding the wrapper directly can fetch bytes themselves.
type Client struct {
	httpClient *http.Client
}

// NewClient creates an AVL HTTP client. A zero timeout means no timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Fetch fetches one document and returns its raw bytes.
// Returns nil if url is empty (allows optional endpoints).
func (c *Client) Fetch(url string) ([]byte, error) {
	if url == "" {
		return nil, nil
	}

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}

// FetchAll fetches the vehicle-positions feed and the roster document.
// An empty roster URL is skipped and returns nil for that document.
func (c *Client) FetchAll(vehiclePositionsURL, rosterURL string) ([]byte, []byte, error) {
	vp, err := c.Fetch(vehiclePositionsURL)
	if err != nil {
		return nil, nil, fmt.Errorf("vehicle positions: %w", err)
	}

	roster, err := c.Fetch(rosterURL)
	if err != nil {
		return nil, nil, fmt.Errorf("roster: %w", err)
	}

	return vp, roster, nil
}
