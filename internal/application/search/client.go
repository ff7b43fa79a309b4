// Package search runs live queries against the search boundary.
package search

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tidwall/pretty"

	"github.com/doeshing/synora-ui/internal/application/payload"
	"github.com/doeshing/synora-ui/internal/application/response"
	"github.com/doeshing/synora-ui/internal/domain"
	"github.com/doeshing/synora-ui/internal/ports"
)

var indent = &pretty.Options{Width: 80, Indent: "  "}

// Client allows one search in flight and numbers every accepted call.
type Client struct {
	Boundary ports.SearchBoundary
	Locale   ports.LocaleProvider
	Logger   ports.Logger

	busy  atomic.Bool
	token atomic.Uint64
}

// Search validates query, calls the boundary once and normalizes the result.
func (c *Client) Search(ctx context.Context, query string) (domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.SearchResult{}, domain.ErrEmptyQuery
	}
	if !c.busy.CompareAndSwap(false, true) {
		return domain.SearchResult{}, domain.ErrSearchInFlight
	}
	defer c.busy.Store(false)

	token := c.token.Add(1)
	requestID := uuid.NewString()
	ctx = domain.WithRequestID(ctx, requestID)

	resp, err := c.Boundary.Search(ctx, query)
	if err != nil {
		err = domain.NewError(domain.ErrKindTransport, "search request failed", err)
		c.debug(requestID, query, token, err)
		return domain.SearchResult{Token: token}, err
	}

	body, err := response.Classify(resp)
	if err != nil {
		c.debug(requestID, query, token, err)
		return domain.SearchResult{Token: token}, err
	}
	if !resp.OK() {
		msg := body.Get("error").String()
		if msg == "" {
			msg = c.resolve("prompts.liveFailed", "search failed")
		}
		err := &domain.ConsoleError{Kind: domain.ErrKindStructuredFailure, Message: msg, ExitCode: response.ExitCode(body.Get("exit_code"))}
		c.debug(requestID, query, token, err)
		return domain.SearchResult{Token: token}, err
	}

	result := domain.SearchResult{
		Token:   token,
		Payload: payload.Normalize([]byte(body.Raw)),
		Raw:     strings.TrimRight(string(pretty.PrettyOptions([]byte(body.Raw), indent)), "\n"),
	}
	c.debug(requestID, query, token, nil)
	return result, nil
}

// Busy reports whether a search is in flight.
func (c *Client) Busy() bool {
	return c.busy.Load()
}

// IsCurrent reports whether token belongs to the latest accepted search.
func (c *Client) IsCurrent(token uint64) bool {
	return token != 0 && token == c.token.Load()
}

func (c *Client) resolve(key, fallback string) string {
	if c.Locale == nil {
		return fallback
	}
	return c.Locale.Resolve(key)
}

func (c *Client) debug(requestID, query string, token uint64, err error) {
	if c.Logger == nil {
		return
	}
	fields := map[string]interface{}{
		"request_id": requestID,
		"query":      query,
		"token":      token,
		"outcome":    "ok",
	}
	if kind, ok := domain.KindOf(err); ok {
		fields["outcome"] = string(kind)
	}
	c.Logger.Debug("search finished", fields)
}
