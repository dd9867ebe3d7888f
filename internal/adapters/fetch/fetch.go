// Package fetch implements the Fetcher port over HTTP.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opnix.dev/opnix/internal/core/ports"
	"go.trai.ch/zerr"
)

// ErrUnsupportedScheme indicates a source address the HTTP client
// cannot retrieve.
var ErrUnsupportedScheme = zerr.New("unsupported address scheme")

// ErrBadStatus indicates a non-successful HTTP response.
var ErrBadStatus = zerr.New("unexpected http status")

const requestTimeout = 5 * time.Minute

// Client fetches source archives over HTTP(S).
type Client struct {
	http *http.Client
}

// NewClient creates a fetcher with a bounded request timeout.
func NewClient() *Client {
	return &Client{
		http: &http.Client{Timeout: requestTimeout},
	}
}

// Fetch opens the content at the given address. The caller must close
// the returned reader.
func (c *Client) Fetch(ctx context.Context, address string) (io.ReadCloser, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to parse source address")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, zerr.With(ErrUnsupportedScheme, "scheme", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, address, nil)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to fetch source"), "address", address)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, zerr.With(zerr.With(ErrBadStatus, "status", resp.Status), "address", address)
	}
	return resp.Body, nil
}

var _ ports.Fetcher = (*Client)(nil)
