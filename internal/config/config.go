package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBase is the public Vapi API endpoint.
const DefaultAPIBase = "https://api.vapi.ai"

// Config holds the credentials and settings of the CLI.
type Config struct {
	APIKey  string `yaml:"api_key,omitempty"`
	APIBase string `yaml:"api_base,omitempty"`
	// OrgID is shown in settings but not sent with requests.
	OrgID string `yaml:"org_id,omitempty"`
	Debug bool   `yaml:"debug,omitempty"`

	path string
}

var httpScheme = regexp.MustCompile(`^https?://`)

// DefaultPath returns the config file location. VAPI_CONFIG overrides it.
func DefaultPath() string {
	if p := os.Getenv("VAPI_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "vapi", "config.yaml")
}

// Load reads the configuration from the default file and the environment.
// A .env file in the working directory is exported first.
func Load() (*Config, error) {
	fs := afero.NewOsFs()
	if err := LoadDotEnv(fs, DotEnvFile); err != nil {
		return nil, err
	}
	return LoadFrom(fs, DefaultPath())
}

// LoadFrom builds the configuration from defaults, then the YAML file at
// path (if it exists), then VAPI_* environment variables. A missing API key
// is not an error here; commands that need it check before calling the API.
func LoadFrom(fs afero.Fs, path string) (*Config, error) {
	cfg := &Config{
		APIBase: DefaultAPIBase,
		path:    path,
	}

	data, err := afero.ReadFile(fs, path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if v := os.Getenv("VAPI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("VAPI_API_BASE"); v != "" {
		cfg.APIBase = v
	}
	if v := os.Getenv("VAPI_ORG_ID"); v != "" {
		cfg.OrgID = v
	}
	if os.Getenv("VAPI_DEBUG") == "true" {
		cfg.Debug = true
	}
	if cfg.APIBase == "" {
		cfg.APIBase = DefaultAPIBase
	}

	return cfg, nil
}

// Path returns the file the configuration is loaded from and saved to.
func (c *Config) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// Validate checks the settings before they are saved.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required.Error("API key is required")),
		validation.Field(&c.APIBase,
			validation.Required,
			is.URL,
			validation.Match(httpScheme).Error("must start with http:// or https://"),
		),
	)
}

// Save writes the configuration to Path() with owner-only permissions.
func (c *Config) Save(fs afero.Fs) error {
	path := c.Path()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// HasAPIKey reports whether an API key is configured.
func (c *Config) HasAPIKey() bool {
	return c.APIKey != ""
}

// MaskedAPIKey returns the key with all but its last four characters hidden.
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not Set"
	}
	if len(c.APIKey) <= 4 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return strings.Repeat("*", 8) + c.APIKey[len(c.APIKey)-4:]
}

// Endpoint returns the base URL without its scheme, for display.
func (c *Config) Endpoint() string {
	return httpScheme.ReplaceAllString(c.APIBase, "")
}
