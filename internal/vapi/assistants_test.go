package vapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListAssistants(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		wantLimit string
		response  string
		wantLen   int
		wantErr   bool
	}{
		{name: "default limit", limit: 0, wantLimit: "100", response: `[{"id":"a1"},{"id":"a2"}]`, wantLen: 2},
		{name: "explicit limit", limit: 5, wantLimit: "5", response: `[{"id":"a1"}]`, wantLen: 1},
		{name: "skips non-object items", limit: 10, wantLimit: "10", response: `[{"id":"a1"},null,"x"]`, wantLen: 1},
		{name: "object instead of list", limit: 10, wantLimit: "10", response: `{"id":"a1"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/assistant", r.URL.Path)
				assert.Equal(t, tt.wantLimit, r.URL.Query().Get("limit"))
				_, _ = w.Write([]byte(tt.response))
			})

			got, err := client.ListAssistants(context.Background(), tt.limit)
			if tt.wantErr {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, ErrUnexpectedResponse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestAssistantCRUD(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/assistant/a1":
			_, _ = w.Write([]byte(`{"id":"a1","name":"Support"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/assistant":
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id":"a2","name":"Sales"}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/assistant/a1":
			_, _ = w.Write([]byte(`{"id":"a1","name":"Renamed"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
		}
	})
	ctx := context.Background()

	got, err := client.GetAssistant(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Support", got["name"])

	created, err := client.CreateAssistant(ctx, map[string]any{"name": "Sales"})
	require.NoError(t, err)
	assert.Equal(t, "a2", created["id"])

	updated, err := client.UpdateAssistant(ctx, "a1", map[string]any{"name": "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated["name"])

	missing, err := client.GetAssistant(ctx, "nope")
	assert.Nil(t, missing)
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.StatusCode)
}

func TestDeleteAssistant(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		response   string
		want       bool
	}{
		{name: "200 with body", statusCode: http.StatusOK, response: `{"id":"a1"}`, want: true},
		{name: "200 empty", statusCode: http.StatusOK, want: true},
		{name: "204 no content", statusCode: http.StatusNoContent, want: true},
		{name: "404", statusCode: http.StatusNotFound, response: `{"message":"gone"}`, want: false},
		{name: "500", statusCode: http.StatusInternalServerError, response: `oops`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/assistant/a1", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			})

			ok, err := client.DeleteAssistant(context.Background(), "a1")
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.want, err == nil)
		})
	}
}
