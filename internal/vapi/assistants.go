package vapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultListLimit is used when a non-positive limit is given.
const DefaultListLimit = 100

// ListAssistants lists assistants, at most limit of them.
func (c *Client) ListAssistants(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return c.list(ctx, fmt.Sprintf("/assistant?limit=%d", limit))
}

// GetAssistant retrieves an assistant by ID
func (c *Client) GetAssistant(ctx context.Context, id string) (Record, error) {
	return c.object(ctx, http.MethodGet, "/assistant/"+url.PathEscape(id), nil)
}

// CreateAssistant creates a new assistant
func (c *Client) CreateAssistant(ctx context.Context, data map[string]any) (Record, error) {
	return c.object(ctx, http.MethodPost, "/assistant", data)
}

// UpdateAssistant patches an existing assistant
func (c *Client) UpdateAssistant(ctx context.Context, id string, data map[string]any) (Record, error) {
	return c.object(ctx, http.MethodPatch, "/assistant/"+url.PathEscape(id), data)
}

// DeleteAssistant deletes an assistant. It reports true exactly when the
// request succeeded (200 with or without a body, or 204).
func (c *Client) DeleteAssistant(ctx context.Context, id string) (bool, error) {
	result, err := c.Request(ctx, http.MethodDelete, "/assistant/"+url.PathEscape(id), nil)
	return result != nil, err
}
