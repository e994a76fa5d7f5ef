package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// MockVapiServer mocks the Vapi assistant and call endpoints for testing
type MockVapiServer struct {
	server *httptest.Server
	mu     sync.RWMutex

	// State
	assistants []map[string]any
	calls      []map[string]any
	apiKey     string
	reqLog     []RequestLog
	errorMode  bool
	nextID     int
}

// RequestLog records API requests for testing
type RequestLog struct {
	Method string
	Path   string
	Query  string
	Body   string
}

// NewMockVapiServer creates a new mock Vapi server
func NewMockVapiServer() *MockVapiServer {
	m := &MockVapiServer{
		apiKey: "test-api-key",
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/assistant", m.handleAssistants)
	mux.HandleFunc("/assistant/", m.handleAssistant)
	mux.HandleFunc("/call", m.handleCalls)

	m.server = httptest.NewServer(mux)
	return m
}

// URL returns the base URL of the mock server
func (m *MockVapiServer) URL() string {
	return m.server.URL
}

// APIKey returns the API key the server accepts
func (m *MockVapiServer) APIKey() string {
	return m.apiKey
}

// Close shuts down the mock server
func (m *MockVapiServer) Close() {
	m.server.Close()
}

// AddAssistant adds an assistant record
func (m *MockVapiServer) AddAssistant(a map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assistants = append(m.assistants, a)
}

// AddCall adds a call record
func (m *MockVapiServer) AddCall(c map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, c)
}

// GetAssistant returns the stored record for id, or nil
func (m *MockVapiServer) GetAssistant(id string) map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, a := m.find(id)
	return a
}

// AssistantCount returns the number of stored assistants
func (m *MockVapiServer) AssistantCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.assistants)
}

// SetErrorMode makes every request fail with 500 while enabled
func (m *MockVapiServer) SetErrorMode(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorMode = enabled
}

// GetRequestLog returns the log of API requests
func (m *MockVapiServer) GetRequestLog() []RequestLog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]RequestLog{}, m.reqLog...)
}

// LastRequest returns the most recent request matching method and path
func (m *MockVapiServer) LastRequest(method, path string) (RequestLog, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.reqLog) - 1; i >= 0; i-- {
		if r := m.reqLog[i]; r.Method == method && r.Path == path {
			return r, true
		}
	}
	return RequestLog{}, false
}

// ClearRequestLog clears the request log
func (m *MockVapiServer) ClearRequestLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reqLog = nil
}

// handleAssistants handles GET and POST /assistant
func (m *MockVapiServer) handleAssistants(w http.ResponseWriter, r *http.Request) {
	body, ok := m.begin(w, r)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, limited(m.assistants, r))
	case http.MethodPost:
		created, err := decodeObject(body)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		m.nextID++
		created["id"] = fmt.Sprintf("asst-%d", m.nextID)
		m.assistants = append(m.assistants, created)
		respondJSON(w, http.StatusCreated, created)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleAssistant handles GET, PATCH and DELETE /assistant/{id}
func (m *MockVapiServer) handleAssistant(w http.ResponseWriter, r *http.Request) {
	body, ok := m.begin(w, r)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := strings.TrimPrefix(r.URL.Path, "/assistant/")
	idx, existing := m.find(id)
	if existing == nil {
		respondError(w, http.StatusNotFound, "Couldn't Find Assistant")
		return
	}

	switch r.Method {
	case http.MethodGet:
		respondJSON(w, http.StatusOK, existing)
	case http.MethodPatch:
		patch, err := decodeObject(body)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		for k, v := range patch {
			existing[k] = v
		}
		respondJSON(w, http.StatusOK, existing)
	case http.MethodDelete:
		m.assistants = append(m.assistants[:idx], m.assistants[idx+1:]...)
		respondJSON(w, http.StatusOK, existing)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleCalls handles GET and POST /call
func (m *MockVapiServer) handleCalls(w http.ResponseWriter, r *http.Request) {
	body, ok := m.begin(w, r)
	if !ok {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		calls := m.calls
		if assistantID := r.URL.Query().Get("assistantId"); assistantID != "" {
			calls = nil
			for _, c := range m.calls {
				if c["assistantId"] == assistantID {
					calls = append(calls, c)
				}
			}
		}
		respondJSON(w, http.StatusOK, limited(calls, r))
	case http.MethodPost:
		created, err := decodeObject(body)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		m.nextID++
		created["id"] = fmt.Sprintf("call-%d", m.nextID)
		created["status"] = "queued"
		m.calls = append(m.calls, created)
		respondJSON(w, http.StatusCreated, created)
	default:
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// begin logs the request, then checks auth and error mode.
func (m *MockVapiServer) begin(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw, _ := io.ReadAll(r.Body)
	body := string(raw)

	m.mu.Lock()
	m.reqLog = append(m.reqLog, RequestLog{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
	})
	errorMode := m.errorMode
	m.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+m.apiKey {
		respondError(w, http.StatusUnauthorized, "Invalid Key. Hot tip, you may be using the private key instead of the public key, or vice versa.")
		return "", false
	}
	if errorMode {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return "", false
	}
	return body, true
}

// find returns the index and record of id. Callers hold the lock.
func (m *MockVapiServer) find(id string) (int, map[string]any) {
	for i, a := range m.assistants {
		if a["id"] == id {
			return i, a
		}
	}
	return -1, nil
}

func limited(records []map[string]any, r *http.Request) []map[string]any {
	out := []map[string]any{}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	for _, rec := range records {
		if err == nil && len(out) >= limit {
			break
		}
		out = append(out, rec)
	}
	return out
}

func decodeObject(body string) (map[string]any, error) {
	obj := map[string]any{}
	if body == "" {
		return obj, nil
	}
	if err := json.Unmarshal([]byte(body), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return obj, nil
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]any{"message": message, "statusCode": status})
}
