package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	clierrors "github.com/vapictl/cli/internal/errors"
	"github.com/vapictl/cli/internal/formatter"
	"github.com/vapictl/cli/internal/style"
	"github.com/vapictl/cli/internal/vapi"
)

func newConfigCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"settings"},
		Short:   "⚙️  Manage API credentials and settings",
	}

	cmd.AddCommand(
		newConfigShowCommand(a),
		newConfigSetCommand(a),
		newConfigTestCommand(a),
	)

	return cmd
}

// settingsView is the displayable form of the configuration. The API key is
// always masked.
type settingsView struct {
	ConfigFile string `json:"configFile" yaml:"configFile"`
	APIBase    string `json:"apiBase" yaml:"apiBase"`
	APIKey     string `json:"apiKey" yaml:"apiKey"`
	OrgID      string `json:"orgId" yaml:"orgId"`
	Debug      bool   `json:"debug" yaml:"debug"`
}

func (a *app) settings() settingsView {
	orgID := a.cfg.OrgID
	if orgID == "" {
		orgID = "Not Set"
	}
	return settingsView{
		ConfigFile: a.cfg.Path(),
		APIBase:    a.cfg.APIBase,
		APIKey:     a.cfg.MaskedAPIKey(),
		OrgID:      orgID,
		Debug:      a.cfg.Debug,
	}
}

func (v settingsView) fields() []style.Field {
	return []style.Field{
		{Key: "Config File", Value: v.ConfigFile},
		{Key: "API Base", Value: v.APIBase},
		{Key: "API Key", Value: v.APIKey},
		{Key: "Org ID", Value: v.OrgID},
		{Key: "Debug", Value: strconv.FormatBool(v.Debug)},
	}
}

func newConfigShowCommand(a *app) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}

			view := a.settings()
			if format != formatter.FormatTable {
				return formatter.Encode(cmd.OutOrStdout(), format, view)
			}
			formatter.DetailOutput(cmd.OutOrStdout(), "Settings", "⚙️", view.fields())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func newConfigSetCommand(a *app) *cobra.Command {
	var (
		apiKey  string
		apiBase string
		orgID   string
		debug   bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Save credentials and settings",
		Example: `  # Save an API key
  vapi config set --api-key sk-...

  # Point at another endpoint
  vapi config set --api-base https://api.example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.NFlag() == 0 {
				return clierrors.ValidationError(errors.New("no settings given"),
					"Pass at least one of --api-key, --api-base, --org-id or --debug.")
			}

			if flags.Changed("api-key") {
				a.cfg.APIKey = apiKey
			}
			if flags.Changed("api-base") {
				a.cfg.APIBase = apiBase
			}
			if flags.Changed("org-id") {
				a.cfg.OrgID = orgID
			}
			if flags.Changed("debug") {
				a.cfg.Debug = debug
				a.logger.SetDebug(debug)
			}

			if err := a.cfg.Validate(); err != nil {
				return clierrors.ValidationError(err, "")
			}
			if err := a.cfg.Save(a.fs); err != nil {
				return clierrors.ConfigError(err)
			}

			w := cmd.OutOrStdout()
			formatter.SuccessMessage(w, "Settings saved to "+a.cfg.Path(), nil)

			sess := a.session()
			sess.SetCredentials(a.credentials())
			var connected bool
			_ = a.run(cmd, "Testing connection", func() error {
				connected = sess.TestConnection(cmd.Context())
				return nil
			})
			if connected {
				fmt.Fprintf(w, "%s %s\n", style.CreateConnectionBadge(true), a.cfg.Endpoint())
			} else {
				formatter.WarningMessage(w, "Settings saved, but the connection test failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Vapi private API key")
	cmd.Flags().StringVar(&apiBase, "api-base", "", "API base URL")
	cmd.Flags().StringVar(&orgID, "org-id", "", "Organization ID (display only)")
	cmd.Flags().BoolVar(&debug, "debug", false, "Log request diagnostics")
	return cmd
}

func newConfigTestCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the connection to the API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAPIKey(a); err != nil {
				return err
			}

			var pingErr error
			_ = a.run(cmd, "Testing connection", func() error {
				pingErr = a.session().Ping(cmd.Context())
				return nil
			})
			if pingErr != nil {
				errType := clierrors.ErrorTypeNetwork
				var reqErr *vapi.RequestError
				if errors.As(pingErr, &reqErr) && reqErr.Kind == vapi.KindRemote {
					errType = clierrors.ErrorTypeAPI
				}
				return &clierrors.CLIError{
					Type:    errType,
					Err:     fmt.Errorf("could not connect to %s: %w", a.cfg.Endpoint(), pingErr),
					Context: "Check the API key and base URL with 'vapi config show'.",
				}
			}

			formatter.SuccessMessage(cmd.OutOrStdout(), "Connected to "+a.cfg.Endpoint(), nil)
			return nil
		},
	}
}
