package vapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ListCalls lists calls, optionally only those placed by assistantID.
func (c *Client) ListCalls(ctx context.Context, assistantID string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	path := fmt.Sprintf("/call?limit=%d", limit)
	if assistantID != "" {
		path += "&assistantId=" + url.QueryEscape(assistantID)
	}
	return c.list(ctx, path)
}

// CreateCall starts a new call
func (c *Client) CreateCall(ctx context.Context, data map[string]any) (Record, error) {
	return c.object(ctx, http.MethodPost, "/call", data)
}
