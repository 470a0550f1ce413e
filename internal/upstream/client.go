// Package upstream implements the REST client for the restaurant backend.
// It is the only place that talks HTTP to the backend; response-shape
// normalization and error classification live here so call sites receive
// plain ordered sequences or a *LoadError.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/mirkafe/menu-web/internal/domain/menu"
)

// maxBodySize caps how much of a backend response is read. Menu payloads are
// small; anything larger indicates a misbehaving backend.
const maxBodySize = 8 << 20

// LoadError reports a failed backend fetch: either a non-2xx status or an
// underlying transport/decoding failure. There is no retry; the caller
// surfaces it as the view's error state.
type LoadError struct {
	Endpoint string
	Status   int // HTTP status when non-zero
	Err      error
}

func (e *LoadError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("backend %s: status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("backend %s: %v", e.Endpoint, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Options tunes the client.
type Options struct {
	// Timeout is the per-request timeout. Zero means 10s.
	Timeout time.Duration
	// Transport overrides the base round tripper (tests). Instrumentation is
	// layered on top of it either way.
	Transport http.RoundTripper
}

// Client is the HTTP client for the restaurant backend.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ menu.Source = (*Client)(nil)

// NewClient creates a Client for the given base origin, e.g.
// "https://api.mirkafe.uz". The transport is wrapped with otelhttp.
func NewClient(baseURL string, opts Options) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("base URL is required")
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Wrap(err, "parse base URL")
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, errors.Errorf("base URL %q must be absolute", baseURL)
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(transport),
		},
	}, nil
}

// Categories fetches the full catalog in backend order.
func (c *Client) Categories(ctx context.Context) ([]menu.Category, error) {
	body, err := c.fetch(ctx, http.MethodGet, "/category/", nil)
	if err != nil {
		return nil, err
	}
	cats, err := decodeSeq[menu.Category](body, catalogKeys...)
	if err != nil {
		return nil, &LoadError{Endpoint: "/category/", Err: err}
	}
	return cats, nil
}

// CategoryProducts fetches the products of one category in backend order.
func (c *Client) CategoryProducts(ctx context.Context, id int64) ([]menu.Product, error) {
	endpoint := fmt.Sprintf("/category/%d/", id)
	body, err := c.fetch(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	products, err := decodeSeq[menu.Product](body, productKeys...)
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, Err: err}
	}
	return products, nil
}

// CombinedMenu issues the legacy combined fetch: a POST with an empty JSON
// body returning contact settings plus every category with its products.
func (c *Client) CombinedMenu(ctx context.Context) (*menu.CombinedMenu, error) {
	body, err := c.fetch(ctx, http.MethodPost, "/products/", strings.NewReader("{}"))
	if err != nil {
		return nil, err
	}
	var m menu.CombinedMenu
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, &LoadError{Endpoint: "/products/", Err: errors.Wrap(err, "decode combined menu")}
	}
	if m.Groups == nil {
		m.Groups = []menu.CategoryGroup{}
	}
	return &m, nil
}

// Ping checks backend reachability for the readiness probe. Any complete
// HTTP exchange below 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.JoinPath("/category/").String(), nil)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "backend unreachable")
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	if resp.StatusCode >= http.StatusInternalServerError {
		return errors.Errorf("backend status %d", resp.StatusCode)
	}
	return nil
}

// fetch performs one request and returns the body of a 2xx response.
// Non-2xx statuses and transport failures become a *LoadError.
func (c *Client) fetch(ctx context.Context, method, endpoint string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(endpoint).String(), body)
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, Err: errors.Wrap(err, "build request")}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &LoadError{Endpoint: endpoint, Err: errors.Wrap(err, "read body")}
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &LoadError{Endpoint: endpoint, Status: resp.StatusCode}
	}
	return data, nil
}
