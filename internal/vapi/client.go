// Package vapi is a thin client for the Vapi REST API.
//
// Every call is a single attempt. A call either yields decoded JSON or a nil
// result together with a *RequestError describing the failure; callers only
// need to check for the failure, the error kind is for display.
package vapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/vapictl/cli/internal/output"
	"github.com/vapictl/cli/internal/pterm"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://api.vapi.ai"

// Record is a raw JSON object as returned by the API.
type Record = map[string]any

// Logger receives request diagnostics.
type Logger interface {
	Debugf(format string, args ...interface{})
}

// Client represents a Vapi API client
type Client struct {
	apiKey  string
	apiBase string
	http    *resty.Client
	logger  Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient makes the client send requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = resty.NewWithClient(hc)
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a client for apiBase authenticated with apiKey. An empty key is
// accepted; callers are expected to check for it before issuing requests.
func New(apiKey, apiBase string, opts ...Option) *Client {
	base := strings.TrimRight(apiBase, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	c := &Client{
		apiKey:  apiKey,
		apiBase: base,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = resty.New()
	}
	if c.logger == nil {
		c.logger = pterm.NewLogger(output.IsCI())
	}

	c.http.
		SetRetryCount(0).
		SetDisableWarn(true).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json")

	return c
}

// APIKey returns the key the client authenticates with.
func (c *Client) APIKey() string {
	return c.apiKey
}

// APIBase returns the normalized base URL.
func (c *Client) APIBase() string {
	return c.apiBase
}

// Request performs one round-trip and normalizes the outcome.
//
// 200 and 201 yield the decoded body (an empty object when the body is
// empty), 204 yields an empty object. Any other status, and any transport or
// decode failure, yields nil and a *RequestError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (any, error) {
	method = strings.ToUpper(method)

	req := c.http.R().SetContext(ctx)
	switch method {
	case http.MethodGet, http.MethodDelete:
	case http.MethodPost, http.MethodPatch:
		if body != nil {
			req.SetBody(body)
		}
	default:
		return nil, c.fail(&RequestError{
			Kind:   KindTransport,
			Method: method,
			Path:   path,
			Err:    fmt.Errorf("%w: %s", ErrUnsupportedMethod, method),
		})
	}

	c.logger.Debugf("%s %s%s", method, c.apiBase, path)

	resp, err := req.Execute(method, c.apiBase+path)
	if err != nil {
		return nil, c.fail(&RequestError{Kind: KindTransport, Method: method, Path: path, Err: err})
	}

	c.logger.Debugf("%s %s -> %d (took %dms)", method, path, resp.StatusCode(), resp.Time().Milliseconds())

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusCreated:
		raw := resp.Body()
		if len(raw) == 0 {
			return map[string]any{}, nil
		}
		var out any
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, c.fail(&RequestError{
				Kind:   KindTransport,
				Method: method,
				Path:   path,
				Err:    fmt.Errorf("failed to parse response: %w", err),
			})
		}
		return out, nil
	case http.StatusNoContent:
		return map[string]any{}, nil
	default:
		return nil, c.fail(&RequestError{
			Kind:       KindRemote,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		})
	}
}

// Ping issues a bounded list request and returns its failure, if any.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Request(ctx, http.MethodGet, "/assistant?limit=1", nil)
	return err
}

// TestConnection reports whether Ping succeeded.
func (c *Client) TestConnection(ctx context.Context) bool {
	return c.Ping(ctx) == nil
}

func (c *Client) fail(err *RequestError) *RequestError {
	c.logger.Debugf("%s", err.Error())
	return err
}

func (c *Client) object(ctx context.Context, method, path string, body any) (Record, error) {
	result, err := c.Request(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	rec, ok := result.(map[string]any)
	if !ok {
		return nil, c.fail(&RequestError{Kind: KindTransport, Method: method, Path: path, Err: ErrUnexpectedResponse})
	}
	return rec, nil
}

func (c *Client) list(ctx context.Context, path string) ([]Record, error) {
	result, err := c.Request(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	items, ok := result.([]any)
	if !ok {
		return nil, c.fail(&RequestError{Kind: KindTransport, Method: http.MethodGet, Path: path, Err: ErrUnexpectedResponse})
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		if rec, ok := item.(map[string]any); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}
