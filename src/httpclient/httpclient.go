// Package httpclient provides the process-wide HTTP client every fetch in
// this module goes through: a fixed user-agent and bounded retries on
// transient failures when talking to the upstream metadata services.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/voxforge/launcher-core/src/mcerr"
)

const userAgent = "voxforge-launcher-core/1.0"

// Client is a thin wrapper over a shared retryable HTTP client. Safe for
// concurrent use by any number of goroutines; there is exactly one
// underlying *http.Client per process.
type Client struct {
	rc *retryablehttp.Client
}

var shared = newShared()

func newShared() *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.Logger = nil
	// Explicit rather than relying on retryablehttp's own default: a pooled
	// transport with no environment-proxy surprises, shared by every
	// upstream call this process makes (metadata, maven, asset objects).
	rc.HTTPClient = cleanhttp.DefaultPooledClient()
	return &Client{rc: rc}
}

// Shared returns the process-wide client singleton.
func Shared() *Client { return shared }

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.rc.Do(req)
	if err != nil {
		return nil, mcerr.Network(url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, mcerr.Network(url, fmt.Errorf("http status %s", resp.Status))
	}
	return resp, nil
}

// GetBytes issues a GET and returns the full response body.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, mcerr.Network(url, err)
	}
	return body, nil
}

// GetJSON issues a GET and decodes the response body into dst.
func (c *Client) GetJSON(ctx context.Context, url string, dst any) error {
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode json from %s: %w", url, err)
	}
	return nil
}

// GetText issues a GET and returns the response body as a string.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.GetBytes(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Open issues a GET and returns the raw response for streaming callers
// (the verified downloader's streaming overload). The caller owns the
// returned body and must close it.
func (c *Client) Open(ctx context.Context, url string) (*http.Response, error) {
	return c.do(ctx, http.MethodGet, url)
}
