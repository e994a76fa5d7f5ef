// Package session keeps the state of one operator session: credentials, the
// client built from them, the last connectivity probe, and the most recently
// fetched assistant list.
package session

import (
	"context"
	"errors"

	"github.com/vapictl/cli/internal/shaper"
	"github.com/vapictl/cli/internal/vapi"
)

// ErrNoCredentials is returned, without any network I/O, when no API key is set.
var ErrNoCredentials = errors.New("Vapi API key is not configured")

// Credentials identify the account and endpoint the session talks to.
type Credentials struct {
	APIKey  string
	APIBase string
}

// Session is not safe for concurrent use; it is driven by one operator.
type Session struct {
	creds      Credentials
	client     *vapi.Client
	connected  bool
	assistants []vapi.Record
	loaded     bool

	clientOpts []vapi.Option
	listLimit  int
}

// Option configures a Session.
type Option func(*Session)

// WithClientOptions passes options to every client the session builds.
func WithClientOptions(opts ...vapi.Option) Option {
	return func(s *Session) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

// WithListLimit sets the limit used when refreshing the assistant list.
func WithListLimit(limit int) Option {
	return func(s *Session) {
		s.listLimit = limit
	}
}

// New creates a session for creds. No request is made until a client is needed.
func New(creds Credentials, opts ...Option) *Session {
	s := &Session{
		creds:     creds,
		listLimit: vapi.DefaultListLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Credentials returns the current credentials.
func (s *Session) Credentials() Credentials {
	return s.creds
}

// SetCredentials replaces the credentials. When they differ from the current
// ones the client is discarded and will be rebuilt and re-probed on next use.
func (s *Session) SetCredentials(creds Credentials) {
	if creds == s.creds {
		return
	}
	s.creds = creds
	s.client = nil
	s.connected = false
}

// SetListLimit changes the limit used by later refreshes.
func (s *Session) SetListLimit(limit int) {
	s.listLimit = limit
}

// Client returns the session's client, building it and probing connectivity
// if the credentials changed since the last call. It returns nil when no API
// key is configured.
func (s *Session) Client(ctx context.Context) *vapi.Client {
	if s.creds.APIKey == "" {
		return nil
	}
	if s.client == nil {
		s.client = vapi.New(s.creds.APIKey, s.creds.APIBase, s.clientOpts...)
		s.connected = s.client.TestConnection(ctx)
	}
	return s.client
}

// Connected reports the result of the last connectivity probe.
func (s *Session) Connected() bool {
	return s.connected
}

// TestConnection probes the API again and records the outcome.
func (s *Session) TestConnection(ctx context.Context) bool {
	return s.Ping(ctx) == nil
}

// Ping probes the API like TestConnection but returns the failure.
func (s *Session) Ping(ctx context.Context) error {
	if s.creds.APIKey == "" {
		return ErrNoCredentials
	}
	if s.client == nil {
		s.client = vapi.New(s.creds.APIKey, s.creds.APIBase, s.clientOpts...)
	}
	err := s.client.Ping(ctx)
	s.connected = err == nil
	return err
}

// Assistants returns the last fetched assistant list.
func (s *Session) Assistants() []vapi.Record {
	out := make([]vapi.Record, len(s.assistants))
	copy(out, s.assistants)
	return out
}

// Loaded reports whether the assistant list has been fetched at least once.
func (s *Session) Loaded() bool {
	return s.loaded
}

// Refresh fetches the assistant list and, on success, replaces the snapshot.
// On failure the previous snapshot is kept.
func (s *Session) Refresh(ctx context.Context) error {
	c := s.Client(ctx)
	if c == nil {
		return ErrNoCredentials
	}

	list, err := c.ListAssistants(ctx, s.listLimit)
	if err != nil {
		return err
	}

	s.assistants = list
	s.loaded = true
	s.connected = true
	return nil
}

// EnsureLoaded refreshes the list once, if the session is connected and the
// list has never been fetched.
func (s *Session) EnsureLoaded(ctx context.Context) error {
	if s.Client(ctx) == nil {
		return ErrNoCredentials
	}
	if s.loaded || !s.connected {
		return nil
	}
	return s.Refresh(ctx)
}

// Find looks an assistant up in the snapshot.
func (s *Session) Find(id string) (vapi.Record, bool) {
	for _, a := range s.assistants {
		if a["id"] == id {
			return a, true
		}
	}
	return nil, false
}

// Recent returns up to n assistants from the snapshot, most recently updated first.
func (s *Session) Recent(n int) []vapi.Record {
	return shaper.RecentlyUpdated(s.assistants, n)
}

// GetAssistant fetches a single assistant from the API.
func (s *Session) GetAssistant(ctx context.Context, id string) (vapi.Record, error) {
	c := s.Client(ctx)
	if c == nil {
		return nil, ErrNoCredentials
	}
	return c.GetAssistant(ctx, id)
}

// CreateAssistant cleans data, creates the assistant and reloads the list.
func (s *Session) CreateAssistant(ctx context.Context, data map[string]any) (vapi.Record, error) {
	c := s.Client(ctx)
	if c == nil {
		return nil, ErrNoCredentials
	}

	created, err := c.CreateAssistant(ctx, shaper.CleanPayload(data))
	if err != nil {
		return nil, err
	}
	s.reload(ctx)
	return created, nil
}

// UpdateAssistant cleans data, patches the assistant and reloads the list.
func (s *Session) UpdateAssistant(ctx context.Context, id string, data map[string]any) (vapi.Record, error) {
	c := s.Client(ctx)
	if c == nil {
		return nil, ErrNoCredentials
	}

	updated, err := c.UpdateAssistant(ctx, id, shaper.CleanPayload(data))
	if err != nil {
		return nil, err
	}
	s.reload(ctx)
	return updated, nil
}

// DeleteAssistant deletes the assistant and reloads the list.
func (s *Session) DeleteAssistant(ctx context.Context, id string) (bool, error) {
	c := s.Client(ctx)
	if c == nil {
		return false, ErrNoCredentials
	}

	ok, err := c.DeleteAssistant(ctx, id)
	if ok {
		s.reload(ctx)
	}
	return ok, err
}

// ListCalls lists calls, optionally for one assistant.
func (s *Session) ListCalls(ctx context.Context, assistantID string, limit int) ([]vapi.Record, error) {
	c := s.Client(ctx)
	if c == nil {
		return nil, ErrNoCredentials
	}
	return c.ListCalls(ctx, assistantID, limit)
}

// CreateCall starts a call.
func (s *Session) CreateCall(ctx context.Context, data map[string]any) (vapi.Record, error) {
	c := s.Client(ctx)
	if c == nil {
		return nil, ErrNoCredentials
	}
	return c.CreateCall(ctx, data)
}

// Reset drops the client, the probe result and the snapshot.
func (s *Session) Reset() {
	s.client = nil
	s.connected = false
	s.assistants = nil
	s.loaded = false
}

// reload refreshes after a write; a failed reload keeps the old snapshot and
// the write itself still counts as successful.
func (s *Session) reload(ctx context.Context) {
	_ = s.Refresh(ctx)
}
