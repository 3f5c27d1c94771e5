// Package upstream is the HTTP client for the external finance backend. It
// attaches the caller's bearer token, flattens query parameters (array
// values repeat the key) and maps every response into either a decoded body
// or an error. There is no retry and no client-side timeout: a call runs
// until it finishes or the caller's context is cancelled.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

// StatusError is a non-2xx upstream response. Body holds the raw response
// payload, JSON or plain text.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.Status, e.Body)
}

// IsStatus reports whether err is a StatusError with the given status code.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}

// Client is the shared transport for all resource gateways.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the given base URL. The underlying
// http.Client carries no timeout; cancellation is the caller's context.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// get issues a GET request and decodes a JSON response into out when out is
// non-nil.
func (c *Client) get(ctx context.Context, token, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, token, path, params, nil, out)
}

// send issues a request with a JSON body and decodes a JSON response into
// out when out is non-nil.
func (c *Client) send(ctx context.Context, method, token, path string, body, out any) error {
	return c.do(ctx, method, token, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, token, path string, params url.Values, body, out any) error {
	fullURL := c.baseURL + path
	if encoded := params.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).Msg("Upstream request failed")
		return fmt.Errorf("upstream request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read upstream response: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &StatusError{Status: res.StatusCode, Body: string(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}

	// Upstream answers JSON for entities and plain text for confirmations.
	if !strings.Contains(res.Header.Get("Content-Type"), "application/json") {
		if s, ok := out.(*string); ok {
			*s = string(data)
			return nil
		}
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode upstream response: %w", err)
	}
	return nil
}
