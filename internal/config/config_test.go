package config

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearVapiEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"VAPI_API_KEY", "VAPI_API_BASE", "VAPI_ORG_ID", "VAPI_DEBUG", "VAPI_CONFIG"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadFrom(t *testing.T) {
	const path = "/home/test/.config/vapi/config.yaml"

	tests := []struct {
		name        string
		file        string
		envVars     map[string]string
		wantErr     bool
		wantKey     string
		wantBaseURL string
		wantOrg     string
		wantDebug   bool
	}{
		{
			name:        "defaults only",
			wantBaseURL: "https://api.vapi.ai",
		},
		{
			name:        "environment only",
			envVars:     map[string]string{"VAPI_API_KEY": "env-key", "VAPI_API_BASE": "https://eu.api.vapi.ai", "VAPI_ORG_ID": "org-1", "VAPI_DEBUG": "true"},
			wantKey:     "env-key",
			wantBaseURL: "https://eu.api.vapi.ai",
			wantOrg:     "org-1",
			wantDebug:   true,
		},
		{
			name:        "file only",
			file:        "api_key: file-key\napi_base: https://staging.vapi.test\norg_id: org-2\n",
			wantKey:     "file-key",
			wantBaseURL: "https://staging.vapi.test",
			wantOrg:     "org-2",
		},
		{
			name:        "environment overrides file",
			file:        "api_key: file-key\napi_base: https://staging.vapi.test\n",
			envVars:     map[string]string{"VAPI_API_KEY": "env-key"},
			wantKey:     "env-key",
			wantBaseURL: "https://staging.vapi.test",
		},
		{
			name:        "empty base in file falls back to default",
			file:        "api_key: file-key\napi_base: \"\"\n",
			wantKey:     "file-key",
			wantBaseURL: "https://api.vapi.ai",
		},
		{
			name:    "malformed file",
			file:    "api_key: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearVapiEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			fs := afero.NewMemMapFs()
			if tt.file != "" {
				require.NoError(t, afero.WriteFile(fs, path, []byte(tt.file), 0o600))
			}

			cfg, err := LoadFrom(fs, path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantKey, cfg.APIKey)
			assert.Equal(t, tt.wantBaseURL, cfg.APIBase)
			assert.Equal(t, tt.wantOrg, cfg.OrgID)
			assert.Equal(t, tt.wantDebug, cfg.Debug)
			assert.Equal(t, path, cfg.Path())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearVapiEnv(t)
	fs := afero.NewMemMapFs()
	const path = "/cfg/vapi/config.yaml"

	cfg, err := LoadFrom(fs, path)
	require.NoError(t, err)

	cfg.APIKey = "secret-key-1234"
	cfg.OrgID = "org-9"
	require.NoError(t, cfg.Save(fs))

	info, err := fs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := LoadFrom(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "secret-key-1234", reloaded.APIKey)
	assert.Equal(t, "org-9", reloaded.OrgID)
	assert.Equal(t, DefaultAPIBase, reloaded.APIBase)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "valid", cfg: Config{APIKey: "k", APIBase: "https://api.vapi.ai"}},
		{name: "missing key", cfg: Config{APIBase: "https://api.vapi.ai"}, wantErr: "API key is required"},
		{name: "missing scheme", cfg: Config{APIKey: "k", APIBase: "api.vapi.ai"}, wantErr: "http:// or https://"},
		{name: "not a url", cfg: Config{APIKey: "k", APIBase: "https://exa mple"}, wantErr: "APIBase"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDisplayHelpers(t *testing.T) {
	cfg := &Config{APIKey: "sk-abcdef123456", APIBase: "https://api.vapi.ai"}
	assert.True(t, cfg.HasAPIKey())
	assert.Equal(t, "********3456", cfg.MaskedAPIKey())
	assert.Equal(t, "api.vapi.ai", cfg.Endpoint())

	empty := &Config{}
	assert.False(t, empty.HasAPIKey())
	assert.Equal(t, "Not Set", empty.MaskedAPIKey())
}
