package cli

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	clierrors "github.com/vapictl/cli/internal/errors"
	"github.com/vapictl/cli/internal/formatter"
	"github.com/vapictl/cli/internal/output"
	"github.com/vapictl/cli/internal/shaper"
	"github.com/vapictl/cli/internal/style"
	"github.com/vapictl/cli/internal/vapi"
)

type consoleAction struct {
	label string
	run   func(a *app, cmd *cobra.Command) error
}

var consoleActions = []consoleAction{
	{"📊 Dashboard", (*app).dashboard},
	{"📋 List assistants", (*app).consoleList},
	{"➕ Create assistant", (*app).consoleCreate},
	{"✏️  Edit assistant", (*app).consoleEdit},
	{"🗑️  Delete assistant", (*app).consoleDelete},
	{"⚙️  Settings", (*app).consoleSettings},
	{"🔄 Refresh", (*app).consoleRefresh},
	{"👋 Quit", nil},
}

func newConsoleCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "console",
		Aliases: []string{"ui", "interactive"},
		Short:   "🖥️  Interactive console",
		Long: `Menu-driven console over the dashboard, assistant list, create, edit
and settings views. One session is kept for the whole console run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.mode != output.OutputModeInteractive {
				return clierrors.ValidationError(errors.New("console requires an interactive terminal"),
					"Use the assistant and config subcommands in scripts.")
			}
			return a.console(cmd)
		},
	}
}

func (a *app) console(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, style.CreateBanner("Vapi Console", "📞"))

	labels := make([]string, len(consoleActions))
	for i, act := range consoleActions {
		labels[i] = act.label
	}

	for {
		idx, err := a.prompt.Select("What would you like to do", labels, 0)
		if err != nil {
			if isInterrupt(err) {
				return nil
			}
			return clierrors.RuntimeError(err)
		}

		action := consoleActions[idx]
		if action.run == nil {
			return nil
		}
		if err := action.run(a, cmd); err != nil {
			if isInterrupt(err) {
				continue
			}
			formatter.ErrorMessage(w, strings.TrimPrefix(clierrors.FormatSimple(err), "✗ "))
		}
	}
}

func isInterrupt(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}

func (a *app) consoleList(cmd *cobra.Command) error {
	if err := requireAPIKey(a); err != nil {
		return err
	}
	sess := a.session()
	if err := a.run(cmd, "Loading assistants", func() error {
		return sess.Refresh(cmd.Context())
	}); err != nil {
		return a.fail(err)
	}
	return writeAssistantTable(cmd, sess.Assistants())
}

func (a *app) consoleRefresh(cmd *cobra.Command) error {
	if err := requireAPIKey(a); err != nil {
		return err
	}
	sess := a.session()
	if err := a.run(cmd, "Refreshing", func() error {
		return sess.Refresh(cmd.Context())
	}); err != nil {
		return a.fail(err)
	}
	formatter.SuccessMessage(cmd.OutOrStdout(), fmt.Sprintf("Loaded %d assistants", len(sess.Assistants())), nil)
	return nil
}

func (a *app) consoleCreate(cmd *cobra.Command) error {
	if err := requireAPIKey(a); err != nil {
		return err
	}

	form := shaper.NewAssistantForm()
	if err := a.promptForm(&form); err != nil {
		return err
	}
	if err := validateForm(form); err != nil {
		return err
	}

	var created vapi.Record
	if err := a.run(cmd, "Creating assistant", func() error {
		var err error
		created, err = a.session().CreateAssistant(cmd.Context(), form.Payload())
		return err
	}); err != nil {
		return a.fail(err)
	}

	s := shaper.Summarize(created)
	formatter.SuccessMessage(cmd.OutOrStdout(), fmt.Sprintf("Assistant '%s' created", s.Name), []style.Field{
		{Key: "ID", Value: s.ID},
	})
	return nil
}

func (a *app) consoleEdit(cmd *cobra.Command) error {
	record, err := a.pickAssistant(cmd, "Assistant to edit")
	if err != nil || record == nil {
		return err
	}

	form, err := shaper.FormFromAssistant(record)
	if err != nil {
		return clierrors.RuntimeError(err)
	}
	if err := a.promptForm(&form); err != nil {
		return err
	}
	if err := validateForm(form); err != nil {
		return err
	}

	id := text(record, "id", "")
	if err := a.run(cmd, "Updating assistant", func() error {
		_, err := a.session().UpdateAssistant(cmd.Context(), id, form.Payload())
		return err
	}); err != nil {
		return a.fail(err)
	}

	formatter.SuccessMessage(cmd.OutOrStdout(), fmt.Sprintf("Assistant '%s' updated", form.Name), nil)
	return nil
}

func (a *app) consoleDelete(cmd *cobra.Command) error {
	record, err := a.pickAssistant(cmd, "Assistant to delete")
	if err != nil || record == nil {
		return err
	}

	s := shaper.Summarize(record)
	ok, err := a.prompt.Confirm(fmt.Sprintf("Delete '%s'", s.Name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
		return nil
	}

	if err := a.run(cmd, "Deleting assistant", func() error {
		_, err := a.session().DeleteAssistant(cmd.Context(), s.ID)
		return err
	}); err != nil {
		return a.fail(err)
	}

	formatter.SuccessMessage(cmd.OutOrStdout(), fmt.Sprintf("Assistant '%s' deleted", s.Name), nil)
	return nil
}

// pickAssistant lets the operator choose from the loaded list. It returns a
// nil record when there is nothing to choose from.
func (a *app) pickAssistant(cmd *cobra.Command, label string) (vapi.Record, error) {
	if err := requireAPIKey(a); err != nil {
		return nil, err
	}

	sess := a.session()
	if err := a.run(cmd, "Loading assistants", func() error {
		return sess.EnsureLoaded(cmd.Context())
	}); err != nil {
		return nil, a.fail(err)
	}

	records := sess.Assistants()
	if len(records) == 0 {
		formatter.EmptyListMessage(cmd.OutOrStdout(), "assistants")
		return nil, nil
	}

	items := make([]string, len(records))
	for i, r := range records {
		s := shaper.Summarize(r)
		items[i] = fmt.Sprintf("%s (%s)", s.Name, formatter.TruncateID(s.ID))
	}
	idx, err := a.prompt.Select(label, items, 0)
	if err != nil {
		return nil, err
	}
	return records[idx], nil
}

func (a *app) consoleSettings(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	view := a.settings()
	formatter.DetailOutput(w, "Settings", "⚙️", view.fields())

	apiKey, err := a.prompt.Input("API Key (leave empty to keep)", "", nil)
	if err != nil {
		return err
	}
	apiBase, err := a.prompt.Input("API Base URL", a.cfg.APIBase, nil)
	if err != nil {
		return err
	}

	if apiKey != "" {
		a.cfg.APIKey = apiKey
	}
	a.cfg.APIBase = strings.TrimSpace(apiBase)
	if err := a.cfg.Validate(); err != nil {
		return clierrors.ValidationError(err, "")
	}
	if err := a.cfg.Save(a.fs); err != nil {
		return clierrors.ConfigError(err)
	}

	sess := a.session()
	sess.SetCredentials(a.credentials())
	var connected bool
	_ = a.run(cmd, "Testing connection", func() error {
		connected = sess.TestConnection(cmd.Context())
		return nil
	})
	formatter.SuccessMessage(w, "Settings saved", nil)
	fmt.Fprintf(w, "%s %s\n", style.CreateConnectionBadge(connected), a.cfg.Endpoint())
	return nil
}

// promptForm walks the operator through the editable fields of form,
// offering the current values as defaults.
func (a *app) promptForm(form *shaper.AssistantForm) error {
	var err error
	p := a.prompt

	if form.Name, err = p.Input("Name", form.Name, requiredInput("name")); err != nil {
		return err
	}
	if form.FirstMessage, err = p.Input("First Message", form.FirstMessage, nil); err != nil {
		return err
	}
	if form.FirstMessageMode, err = pickString(p, "First Message Mode", shaper.FirstMessageModes, form.FirstMessageMode); err != nil {
		return err
	}
	if form.MaxDurationSeconds, err = promptInt(p, "Max Duration (seconds)", form.MaxDurationSeconds); err != nil {
		return err
	}

	voiceKeys := make([]string, len(shaper.VoiceProviders))
	voiceNames := make([]string, len(shaper.VoiceProviders))
	for i, v := range shaper.VoiceProviders {
		voiceKeys[i] = v.Key
		voiceNames[i] = fmt.Sprintf("%s - %s", v.Name, v.Description)
	}
	if form.VoiceProvider, err = pickKey(p, "Voice Provider", voiceKeys, voiceNames, form.VoiceProvider); err != nil {
		return err
	}
	if form.VoiceID, err = p.Input("Voice ID", form.VoiceID, nil); err != nil {
		return err
	}
	if form.VoiceSpeed, err = promptFloat(p, "Voice Speed", form.VoiceSpeed); err != nil {
		return err
	}
	if form.VoiceStability, err = promptFloat(p, "Voice Stability", form.VoiceStability); err != nil {
		return err
	}

	modelKeys := make([]string, len(shaper.ModelProviders))
	modelNames := make([]string, len(shaper.ModelProviders))
	for i, m := range shaper.ModelProviders {
		modelKeys[i] = m.Key
		modelNames[i] = fmt.Sprintf("%s - %s", m.Name, m.Description)
	}
	previous := form.ModelProvider
	if form.ModelProvider, err = pickKey(p, "Model Provider", modelKeys, modelNames, form.ModelProvider); err != nil {
		return err
	}
	if form.ModelProvider != previous {
		form.ModelName = ""
	}
	if provider, ok := shaper.FindModelProvider(form.ModelProvider); ok {
		form.ModelName, err = pickString(p, "Model", provider.Models, form.ModelName)
	} else {
		form.ModelName, err = p.Input("Model", form.ModelName, nil)
	}
	if err != nil {
		return err
	}
	if form.Temperature, err = promptFloat(p, "Temperature", form.Temperature); err != nil {
		return err
	}
	if form.MaxTokens, err = promptInt(p, "Max Tokens", form.MaxTokens); err != nil {
		return err
	}
	if form.SystemMessage, err = p.Input("System Message", form.SystemMessage, nil); err != nil {
		return err
	}

	if form.BackgroundSound, err = pickString(p, "Background Sound", shaper.BackgroundSounds, form.BackgroundSound); err != nil {
		return err
	}
	if form.EndCallMessage, err = p.Input("End Call Message", form.EndCallMessage, nil); err != nil {
		return err
	}
	if form.VoicemailMessage, err = p.Input("Voicemail Message", form.VoicemailMessage, nil); err != nil {
		return err
	}

	phrases, err := p.Input("End Call Phrases (comma separated)", strings.Join(shaper.SplitPhrases(form.EndCallPhrases), ", "), nil)
	if err != nil {
		return err
	}
	form.EndCallPhrases = strings.Join(strings.Split(phrases, ","), "\n")
	return nil
}

func pickString(p prompter, label string, options []string, current string) (string, error) {
	return pickKey(p, label, options, options, current)
}

// pickKey selects one of keys, shown as names, with the cursor on current.
// A current value outside keys is offered as an extra entry so that
// accepting the default keeps it.
func pickKey(p prompter, label string, keys, names []string, current string) (string, error) {
	cursor := slices.Index(keys, current)
	if cursor < 0 && current != "" {
		keys = append(slices.Clone(keys), current)
		names = append(slices.Clone(names), current+" (current)")
		cursor = len(keys) - 1
	}
	idx, err := p.Select(label, names, max(cursor, 0))
	if err != nil {
		return "", err
	}
	return keys[idx], nil
}

func promptFloat(p prompter, label string, current float64) (float64, error) {
	v, err := p.Input(label, strconv.FormatFloat(current, 'f', -1, 64), floatInput)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(v), 64)
}

func promptInt(p prompter, label string, current int) (int, error) {
	v, err := p.Input(label, strconv.Itoa(current), intInput)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(v))
}

func requiredInput(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func floatInput(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return errors.New("must be a number")
	}
	return nil
}

func intInput(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return errors.New("must be a whole number")
	}
	return nil
}
