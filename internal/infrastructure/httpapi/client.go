// Package httpapi talks to the local service that fronts `synora ui`.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

// RequestIDHeader carries the per-call id for log correlation.
const RequestIDHeader = "X-Request-Id"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 8 << 20

// Client implements the search and action boundaries over HTTP. Responses
// are returned verbatim; status codes are not treated as errors here.
type Client struct {
	baseURL    string
	searchPath string
	actionPath string
	httpClient *http.Client
	logger     ports.Logger
}

// NewClient builds a Client from the boundary section of cfg.
func NewClient(cfg domain.Config, logger ports.Logger) *Client {
	return &Client{
		baseURL:    cfg.GetBaseURL(),
		searchPath: cfg.GetSearchPath(),
		actionPath: cfg.GetActionPath(),
		httpClient: &http.Client{Timeout: cfg.GetBoundaryTimeout()},
		logger:     logger,
	}
}

// WithHTTPClient swaps the underlying client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// BaseURL returns the boundary root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search issues GET {search_path}?q=<query>.
func (c *Client) Search(ctx context.Context, query string) (ports.RawResponse, error) {
	endpoint := c.baseURL + c.searchPath + "?" + url.Values{"q": {query}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.RawResponse{}, err
	}
	req.Header.Set("accept", "application/json")
	return c.do(ctx, req)
}

// RunAction issues POST {action_path} with a JSON body.
func (c *Client) RunAction(ctx context.Context, body domain.ActionRunBody) (ports.RawResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return ports.RawResponse{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.actionPath, bytes.NewReader(payload))
	if err != nil {
		return ports.RawResponse{}, err
	}
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	return c.do(ctx, req)
}

// Ping fetches the base URL; used by diagnostics.
func (c *Client) Ping(ctx context.Context) (ports.RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return ports.RawResponse{}, err
	}
	return c.do(ctx, req)
}

func (c *Client) do(ctx context.Context, req *http.Request) (ports.RawResponse, error) {
	id := domain.RequestIDFrom(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	req.Header.Set(RequestIDHeader, id)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.debug(req, id, 0, err)
		return ports.RawResponse{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.debug(req, id, resp.StatusCode, err)
		return ports.RawResponse{}, err
	}
	c.debug(req, id, resp.StatusCode, nil)
	return ports.RawResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("content-type"),
		Body:        data,
	}, nil
}

func (c *Client) debug(req *http.Request, id string, status int, err error) {
	if c.logger == nil {
		return
	}
	fields := map[string]interface{}{
		"request_id": id,
		"method":     req.Method,
		"path":       req.URL.Path,
		"status":     status,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	c.logger.Debug("boundary call", fields)
}

var (
	_ ports.SearchBoundary = (*Client)(nil)
	_ ports.ActionBoundary = (*Client)(nil)
)
