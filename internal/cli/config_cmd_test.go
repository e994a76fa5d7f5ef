package cli

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vapictl/cli/internal/config"
	clierrors "github.com/vapictl/cli/internal/errors"
)

func TestConfigShowCommand(t *testing.T) {
	env := setupTestEnv(t)
	env.cfg.APIKey = "sk-live-abcdef1234"
	env.cfg.OrgID = "org-42"

	got, err := executeCommand(env.root(), "config", "show")
	require.NoError(t, err)
	assert.Contains(t, got, "********1234")
	assert.NotContains(t, got, "sk-live")
	assert.Contains(t, got, "org-42")

	got, err = executeCommand(env.root(), "config", "show", "-o", "json")
	require.NoError(t, err)
	var view map[string]any
	decodeJSON(t, got, &view)
	assert.Equal(t, "********1234", view["apiKey"])
	assert.Equal(t, env.server.URL(), view["apiBase"])
	assert.Empty(t, env.server.GetRequestLog())
}

func TestConfigSetCommand(t *testing.T) {
	t.Setenv("VAPI_API_KEY", "")
	t.Setenv("VAPI_API_BASE", "")
	t.Setenv("VAPI_ORG_ID", "")
	env := setupTestEnv(t)
	path := "/home/test/.config/vapi/config.yaml"
	cfg, err := config.LoadFrom(env.fs, path)
	require.NoError(t, err)
	env.cfg = cfg

	got, err := executeCommand(env.root(), "config", "set",
		"--api-key", env.server.APIKey(),
		"--api-base", env.server.URL(),
		"--org-id", "org-1",
	)
	require.NoError(t, err)
	assert.Contains(t, got, "Settings saved")
	assert.Contains(t, got, "CONNECTED")

	saved, err := config.LoadFrom(env.fs, path)
	require.NoError(t, err)
	assert.Equal(t, env.server.APIKey(), saved.APIKey)
	assert.Equal(t, env.server.URL(), saved.APIBase)
	assert.Equal(t, "org-1", saved.OrgID)
}

func TestConfigSetWarnsWhenConnectionFails(t *testing.T) {
	t.Setenv("VAPI_CONFIG", "/tmp/vapi/config.yaml")
	env := setupTestEnv(t)

	got, err := executeCommand(env.root(), "config", "set", "--api-key", "wrong-key")
	require.NoError(t, err)
	assert.Contains(t, got, "connection test failed")

	exists, err := afero.Exists(env.fs, env.cfg.Path())
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestConfigSetValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no flags", []string{"config", "set"}, "no settings given"},
		{"bad base url", []string{"config", "set", "--api-base", "ftp://example.com"}, "http"},
		{"empty key", []string{"config", "set", "--api-key", ""}, "API key is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			_, err := executeCommand(env.root(), tt.args...)
			requireErrorType(t, err, clierrors.ErrorTypeValidation)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfigTestCommand(t *testing.T) {
	env := setupTestEnv(t)

	got, err := executeCommand(env.root(), "config", "test")
	require.NoError(t, err)
	assert.Contains(t, got, "Connected to")

	env.cfg.APIKey = "wrong-key"
	_, err = executeCommand(env.root(), "config", "test")
	requireErrorType(t, err, clierrors.ErrorTypeAPI)
	assert.Equal(t, 4, clierrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "Invalid Key")

	env.cfg.APIKey = env.server.APIKey()
	env.cfg.APIBase = "http://127.0.0.1:1"
	_, err = executeCommand(env.root(), "config", "test")
	requireErrorType(t, err, clierrors.ErrorTypeNetwork)
	assert.Equal(t, 5, clierrors.ExitCodeFromError(err))
	assert.Contains(t, err.Error(), "could not connect to 127.0.0.1:1")

	env.cfg.APIKey = ""
	_, err = executeCommand(env.root(), "config", "test")
	requireErrorType(t, err, clierrors.ErrorTypeConfig)
}
