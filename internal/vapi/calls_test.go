package vapi

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCalls(t *testing.T) {
	tests := []struct {
		name          string
		assistantID   string
		limit         int
		wantLimit     string
		wantAssistant string
	}{
		{name: "all calls", wantLimit: "100"},
		{name: "filtered by assistant", assistantID: "a1", limit: 20, wantLimit: "20", wantAssistant: "a1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/call", r.URL.Path)
				assert.Equal(t, tt.wantLimit, r.URL.Query().Get("limit"))
				assert.Equal(t, tt.wantAssistant, r.URL.Query().Get("assistantId"))
				_, _ = w.Write([]byte(`[{"id":"c1","status":"ended"}]`))
			})

			calls, err := client.ListCalls(context.Background(), tt.assistantID, tt.limit)
			require.NoError(t, err)
			require.Len(t, calls, 1)
			assert.Equal(t, "c1", calls[0]["id"])
		})
	}
}

func TestCreateCall(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/call", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"customer.number is required"}`))
	})

	call, err := client.CreateCall(context.Background(), map[string]any{"assistantId": "a1"})
	assert.Nil(t, call)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindRemote, reqErr.Kind)
	assert.Contains(t, reqErr.Error(), "customer.number is required")
}
