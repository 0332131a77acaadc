// Package httputil provides a security-hardened HTTP client and input sanitization utilities.
package httputil

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/121.0"

// MaxBodySize caps how much of a response body is read into memory.
const MaxBodySize = 10 * 1024 * 1024

const (
	AcceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	AcceptJSON = "application/json"
	AcceptAny  = "*/*"
)

// StreamHeaderTimeout bounds the wait for response headers on media transfers.
const StreamHeaderTimeout = 30 * time.Second

func newTransport() *http.Transport {
	return &http.Transport{
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
		DisableCompression:  false,
		MaxIdleConnsPerHost: 5,
	}
}

// NewClient creates a hardened HTTP client with secure defaults.
// Per-request deadlines are expected to come from the request context;
// the client timeout is only an upper bound.
func NewClient() *http.Client {
	return &http.Client{
		Timeout:   60 * time.Second,
		Transport: newTransport(),
	}
}

// NewStreamClient creates a client for media transfers that may run for
// minutes. It has no overall timeout: only the TLS handshake and the wait
// for response headers are bounded, and the request context cancels the
// body read.
func NewStreamClient(headerTimeout time.Duration) *http.Client {
	t := newTransport()
	t.TLSHandshakeTimeout = 10 * time.Second
	t.ResponseHeaderTimeout = headerTimeout
	return &http.Client{Transport: t}
}

// RequestOptions controls the headers sent with a request.
type RequestOptions struct {
	UserAgent string
	Accept    string
	Referer   string
}

// Get performs a GET request with standard browser-like headers.
func Get(ctx context.Context, client *http.Client, url string, opts RequestOptions) (*http.Response, error) {
	if err := ValidateURL(url); err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	accept := opts.Accept
	if accept == "" {
		accept = AcceptHTML
	}

	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	if opts.Referer != "" {
		req.Header.Set("Referer", opts.Referer)
	}

	return client.Do(req)
}

// GetBody performs a GET request and returns the body of a 2xx response.
func GetBody(ctx context.Context, client *http.Client, url string, opts RequestOptions) ([]byte, error) {
	resp, err := Get(ctx, client, url, opts)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return ReadBody(resp.Body)
}

// ReadBody reads at most MaxBodySize bytes from r.
func ReadBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, MaxBodySize))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return body, nil
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d", e.Code)
}
