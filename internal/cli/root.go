package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/vapictl/cli/internal/config"
	clierrors "github.com/vapictl/cli/internal/errors"
	"github.com/vapictl/cli/internal/output"
	"github.com/vapictl/cli/internal/pterm"
	"github.com/vapictl/cli/internal/sentry"
	"github.com/vapictl/cli/internal/session"
	"github.com/vapictl/cli/internal/vapi"
	"github.com/vapictl/cli/internal/version"
)

func init() {
	// Run the root breadcrumb hook as well as each group's own pre-run.
	cobra.EnableTraverseRunHooks = true
}

// app holds what every command of one invocation shares.
type app struct {
	cfg    *config.Config
	fs     afero.Fs
	mode   output.OutputMode
	logger *pterm.Logger
	pterm  *pterm.PTermManager
	prompt prompter

	sessionOpts []session.Option
	sess        *session.Session
}

// Option customises the command tree, mostly for tests.
type Option func(*app)

// WithFs sets the filesystem the config is saved to.
func WithFs(fs afero.Fs) Option {
	return func(a *app) { a.fs = fs }
}

// WithOutputMode overrides terminal detection.
func WithOutputMode(mode output.OutputMode) Option {
	return func(a *app) { a.mode = mode }
}

// WithLogger replaces the diagnostic logger.
func WithLogger(l *pterm.Logger) Option {
	return func(a *app) { a.logger = l }
}

// WithSessionOptions passes options to the session.
func WithSessionOptions(opts ...session.Option) Option {
	return func(a *app) { a.sessionOpts = append(a.sessionOpts, opts...) }
}

func withPrompter(p prompter) Option {
	return func(a *app) { a.prompt = p }
}

func newApp(cfg *config.Config, opts ...Option) *app {
	a := &app{
		cfg:    cfg,
		fs:     afero.NewOsFs(),
		mode:   output.DetectMode(),
		prompt: terminalPrompter{},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.pterm = pterm.NewPTermManager(a.mode)
	if a.logger == nil {
		a.logger = a.pterm.Logger()
	}
	if cfg.Debug {
		a.logger.SetDebug(true)
	}
	return a
}

// session returns the invocation's session, creating it on first use.
func (a *app) session() *session.Session {
	if a.sess == nil {
		opts := append([]session.Option{
			session.WithClientOptions(vapi.WithLogger(a.logger)),
		}, a.sessionOpts...)
		a.sess = session.New(a.credentials(), opts...)
	}
	return a.sess
}

func (a *app) credentials() session.Credentials {
	return session.Credentials{APIKey: a.cfg.APIKey, APIBase: a.cfg.APIBase}
}

// NewRootCommand builds the vapi command tree.
func NewRootCommand(cfg *config.Config, opts ...Option) *cobra.Command {
	a := newApp(cfg, opts...)

	rootCmd := &cobra.Command{
		Use:   "vapi",
		Short: "📞 Vapi CLI - Manage your voice assistants",
		Long: `Manage Vapi voice assistants from the terminal.

Quick Start:
  • Configure:         vapi config set --api-key <key>
  • Overview:          vapi dashboard
  • List assistants:   vapi assistant list
  • Create assistant:  vapi assistant create --name "Support"
  • Interactive mode:  vapi console

Credentials are read from VAPI_API_KEY and VAPI_API_BASE, or from the
config file written by 'vapi config set'.`,
		Example: `  # Show connection status and recent assistants
  vapi dashboard

  # List assistants as JSON
  vapi assistant list --output json

  # Create an assistant from a file
  vapi assistant create --file assistant.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			sentry.AddBreadcrumb("command", cmd.CommandPath(), nil)
		},
	}

	rootCmd.AddCommand(
		newDashboardCommand(a),
		newAssistantCommand(a),
		newCallCommand(a),
		newConfigCommand(a),
		newConsoleCommand(a),
		newVersionCommand(a),
	)

	return rootCmd
}

// Execute runs the command tree with the given configuration.
func Execute(cfg *config.Config) error {
	return NewRootCommand(cfg).Execute()
}

// Main loads the configuration, runs the command tree and returns the
// process exit code.
func Main() int {
	ctx := context.Background()
	defer sentry.RecoverWithSentry(ctx)

	if err := sentry.Initialize(version.Version); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer sentry.Flush(2 * time.Second)

	cfg, err := config.Load()
	if err != nil {
		err = clierrors.ConfigError(err)
		printError(err)
		return clierrors.ExitCodeFromError(err)
	}

	if err := NewRootCommand(cfg).ExecuteContext(ctx); err != nil {
		err = clierrors.Classify(err)
		printError(err)
		sentry.CaptureError(err, map[string]string{"exit_code": fmt.Sprint(clierrors.ExitCodeFromError(err))}, nil)
		return clierrors.ExitCodeFromError(err)
	}
	return clierrors.ExitCodeSuccess
}

func printError(err error) {
	color.New(color.FgRed).Fprintln(os.Stderr, clierrors.FormatSimple(err))
}
