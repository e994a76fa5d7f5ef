package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	clierrors "github.com/vapictl/cli/internal/errors"
	"github.com/vapictl/cli/internal/formatter"
	"github.com/vapictl/cli/internal/output"
	"github.com/vapictl/cli/internal/session"
	"gopkg.in/yaml.v3"
)

const credentialsHint = "Set VAPI_API_KEY or run 'vapi config set --api-key <key>'."

// requireAPIKey stops a command before any request when no key is configured.
func requireAPIKey(a *app) error {
	if !a.cfg.HasAPIKey() {
		return clierrors.ConfigErrorWithContext(session.ErrNoCredentials, credentialsHint)
	}
	return nil
}

// fail maps an operation error onto the CLI error taxonomy.
func (a *app) fail(err error) error {
	if errors.Is(err, session.ErrNoCredentials) {
		return clierrors.ConfigErrorWithContext(err, credentialsHint)
	}
	return clierrors.Classify(err)
}

// run executes fn behind a spinner on interactive terminals.
func (a *app) run(cmd *cobra.Command, message string, fn func() error) error {
	return output.NewProgress(cmd.ErrOrStderr(), a.mode, message).Run(fn)
}

// outputFormat reads and validates the --output flag.
func outputFormat(raw string) (formatter.Format, error) {
	f, err := formatter.ParseFormat(raw)
	if err != nil {
		return "", clierrors.ValidationError(err, "")
	}
	return f, nil
}

// readPayloadFile reads a JSON or YAML object from path. YAML is chosen by
// the .yaml/.yml extension.
func (a *app) readPayloadFile(path string) (map[string]any, error) {
	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return nil, clierrors.ValidationError(fmt.Errorf("failed to read %s: %w", path, err), "")
	}

	payload := map[string]any{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &payload)
	default:
		err = json.Unmarshal(data, &payload)
	}
	if err != nil {
		return nil, clierrors.ValidationError(fmt.Errorf("failed to parse %s: %w", path, err), "")
	}
	return payload, nil
}

// renderMarkdown renders md for the terminal, falling back to the raw text.
func (a *app) renderMarkdown(md string) string {
	style := "dark"
	if a.mode != output.OutputModeInteractive {
		style = "notty"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		a.logger.Debugf("markdown render failed: %v", err)
		return md
	}
	return out
}

// text returns m[key] as a string, or fallback when missing or empty.
func text(m map[string]any, key, fallback string) string {
	v, ok := m[key]
	if !ok || v == nil || v == "" {
		return fallback
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// prompter asks the operator for input.
type prompter interface {
	// Select starts with the cursor on items[cursor].
	Select(label string, items []string, cursor int) (int, error)
	Input(label, def string, validate func(string) error) (string, error)
	Confirm(label string) (bool, error)
}

type terminalPrompter struct{}

func (terminalPrompter) Select(label string, items []string, cursor int) (int, error) {
	sel := promptui.Select{
		Label: label,
		Items: items,
		Size:  10,
	}
	idx, _, err := sel.RunCursorAt(cursor, max(0, cursor-sel.Size+1))
	if err != nil {
		return -1, fmt.Errorf("prompt failed: %w", err)
	}
	return idx, nil
}

func (terminalPrompter) Input(label, def string, validate func(string) error) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Default:  def,
		Validate: validate,
	}
	v, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return v, nil
}

func (terminalPrompter) Confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, promptui.ErrAbort):
		return false, nil
	default:
		return false, fmt.Errorf("prompt failed: %w", err)
	}
}
