// Package gsheet loads the spreadsheet source of truth: fetching the
// public Google Sheet export, caching it locally, and parsing the cached
// workbook into publication records.
package gsheet

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the HTTP request timeout for sheet exports.
	DefaultTimeout = 60 * time.Second

	// RateLimit keeps us polite with the export endpoint.
	RateLimit = 1.0
)

// Client fetches spreadsheet exports over HTTP with rate limiting.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a spreadsheet fetch client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch downloads the xlsx export of a public spreadsheet URL and writes it
// to cachePath, creating parent directories as needed. The whole workbook
// is materialized before parsing begins; nothing is consumed streaming.
func (c *Client) Fetch(ctx context.Context, sheetURL, cachePath string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sheetURL+"/export?format=xlsx", nil)
	if err != nil {
		return fmt.Errorf("building export request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching spreadsheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetching spreadsheet: unexpected status %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(cachePath), "gsheet-*.xlsx")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache file: %w", err)
	}

	// Atomic replace so a failed download never clobbers a good cache.
	if err := os.Rename(tmp.Name(), cachePath); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}
