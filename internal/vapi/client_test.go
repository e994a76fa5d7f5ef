package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vapictl/cli/internal/pterm"
)

func setupTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	var logs bytes.Buffer
	client := New("test-key", server.URL+"/", WithLogger(pterm.NewPlainLogger(&logs, true)))
	return server, client
}

func TestNew(t *testing.T) {
	c := New("k", "https://example.test///")
	assert.Equal(t, "https://example.test", c.APIBase())
	assert.Equal(t, "k", c.APIKey())

	c = New("", "")
	assert.Equal(t, DefaultBaseURL, c.APIBase())
	assert.Equal(t, "", c.APIKey())
}

func TestRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		statusCode int
		response   string
		want       any
		wantKind   Kind
	}{
		{
			name:       "200 with object",
			method:     http.MethodGet,
			statusCode: http.StatusOK,
			response:   `{"id":"a1","name":"Support"}`,
			want:       map[string]any{"id": "a1", "name": "Support"},
		},
		{
			name:       "200 with list",
			method:     http.MethodGet,
			statusCode: http.StatusOK,
			response:   `[{"id":"a1"}]`,
			want:       []any{map[string]any{"id": "a1"}},
		},
		{
			name:       "201 created",
			method:     http.MethodPost,
			statusCode: http.StatusCreated,
			response:   `{"id":"new"}`,
			want:       map[string]any{"id": "new"},
		},
		{
			name:       "200 with empty body",
			method:     http.MethodPatch,
			statusCode: http.StatusOK,
			want:       map[string]any{},
		},
		{
			name:       "204 no content",
			method:     http.MethodDelete,
			statusCode: http.StatusNoContent,
			want:       map[string]any{},
		},
		{
			name:       "500 server error",
			method:     http.MethodGet,
			statusCode: http.StatusInternalServerError,
			response:   `{"message":"internal"}`,
			wantKind:   KindRemote,
		},
		{
			name:       "404 not found",
			method:     http.MethodGet,
			statusCode: http.StatusNotFound,
			response:   `{"message":"not found"}`,
			wantKind:   KindRemote,
		},
		{
			name:       "malformed json",
			method:     http.MethodGet,
			statusCode: http.StatusOK,
			response:   `{"id":`,
			wantKind:   KindTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.method, r.Method)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
				assert.Equal(t, "/assistant", r.URL.Path)
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			})

			got, err := client.Request(context.Background(), tt.method, "/assistant", nil)
			if tt.wantKind != 0 {
				assert.Nil(t, got)
				var reqErr *RequestError
				require.ErrorAs(t, err, &reqErr)
				assert.Equal(t, tt.wantKind, reqErr.Kind)
				assert.NotEmpty(t, reqErr.Error())
				if tt.wantKind == KindRemote {
					assert.Equal(t, tt.statusCode, reqErr.StatusCode)
					assert.Equal(t, tt.response, reqErr.Body)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestSendsBodyForWrites(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "Support", body["name"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(raw)
	})

	got, err := client.Request(context.Background(), "post", "/assistant", map[string]any{"name": "Support"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"name": "Support"}, got)
}

func TestRequestUnsupportedMethod(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.Method)
	})

	got, err := client.Request(context.Background(), http.MethodPut, "/assistant/a1", nil)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnsupportedMethod)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindTransport, reqErr.Kind)
}

func TestRequestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	var logs bytes.Buffer
	client := New("test-key", url, WithLogger(pterm.NewPlainLogger(&logs, true)))

	got, err := client.Request(context.Background(), http.MethodGet, "/assistant", nil)
	assert.Nil(t, got)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindTransport, reqErr.Kind)
	assert.NotEmpty(t, reqErr.Error())
	assert.Contains(t, logs.String(), "GET /assistant failed")
}

func TestTestConnection(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		want       bool
	}{
		{name: "reachable", statusCode: http.StatusOK, want: true},
		{name: "unauthorized", statusCode: http.StatusUnauthorized, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/assistant", r.URL.Path)
				assert.Equal(t, "1", r.URL.Query().Get("limit"))
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(`[]`))
			})

			assert.Equal(t, tt.want, client.TestConnection(context.Background()))
		})
	}
}

func TestPingReturnsRejection(t *testing.T) {
	_, client := setupTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid Key"}`))
	})

	err := client.Ping(context.Background())
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, KindRemote, reqErr.Kind)
	assert.Equal(t, http.StatusUnauthorized, reqErr.StatusCode)
	assert.Contains(t, reqErr.Body, "Invalid Key")
}
