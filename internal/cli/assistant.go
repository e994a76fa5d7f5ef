package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	clierrors "github.com/vapictl/cli/internal/errors"
	"github.com/vapictl/cli/internal/formatter"
	"github.com/vapictl/cli/internal/output"
	"github.com/vapictl/cli/internal/shaper"
	"github.com/vapictl/cli/internal/style"
	"github.com/vapictl/cli/internal/vapi"
)

func newAssistantCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "assistant",
		Aliases: []string{"assistants", "asst"},
		Short:   "🤖 Manage assistants",
		Long:    `Create, inspect, update, delete and list the voice assistants of your Vapi account.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return requireAPIKey(a)
		},
	}

	cmd.AddCommand(
		newListAssistantsCommand(a),
		newGetAssistantCommand(a),
		newCreateAssistantCommand(a),
		newUpdateAssistantCommand(a),
		newDeleteAssistantCommand(a),
	)

	return cmd
}

func newListAssistantsCommand(a *app) *cobra.Command {
	var (
		limit     int
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "📋 List assistants",
		Example: `  # List assistants
  vapi assistant list

  # List the first 10 as YAML
  vapi assistant list --limit 10 --output yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}

			sess := a.session()
			sess.SetListLimit(limit)
			if err := a.run(cmd, "Loading assistants", func() error {
				return sess.Refresh(cmd.Context())
			}); err != nil {
				return a.fail(err)
			}

			records := sess.Assistants()
			if format != formatter.FormatTable {
				return formatter.Encode(cmd.OutOrStdout(), format, records)
			}
			return writeAssistantTable(cmd, records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", vapi.DefaultListLimit, "Maximum number of assistants to fetch")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func writeAssistantTable(cmd *cobra.Command, records []vapi.Record) error {
	w := cmd.OutOrStdout()
	if len(records) == 0 {
		formatter.EmptyListMessage(w, "assistants")
		return nil
	}

	return formatter.ListOutput(w, "Assistants", "🤖", len(records), func() error {
		table := formatter.NewTable(w, "ID", "NAME", "VOICE", "MODEL", "UPDATED")
		for _, r := range records {
			s := shaper.Summarize(r)
			table.AddRow(
				formatter.TruncateID(s.ID),
				formatter.TruncateString(s.Name, 32),
				s.VoiceProvider,
				fmt.Sprintf("%s/%s", s.ModelProvider, s.ModelName),
				s.Updated,
			)
		}
		return table.Render()
	})
}

func newGetAssistantCommand(a *app) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:     "get <assistant-id>",
		Aliases: []string{"show", "describe"},
		Short:   "🔍 Show an assistant",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}

			var record vapi.Record
			if err := a.run(cmd, "Fetching assistant", func() error {
				record, err = a.session().GetAssistant(cmd.Context(), args[0])
				return err
			}); err != nil {
				return a.fail(err)
			}

			if format != formatter.FormatTable {
				return formatter.Encode(cmd.OutOrStdout(), format, record)
			}
			return a.writeAssistantDetail(cmd, record)
		},
	}

	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func (a *app) writeAssistantDetail(cmd *cobra.Command, record vapi.Record) error {
	typed, err := shaper.DecodeAssistant(record)
	if err != nil {
		return clierrors.RuntimeError(err)
	}
	s := shaper.Summarize(record)

	fields := []style.Field{
		{Key: "ID", Value: s.ID},
		{Key: "Created", Value: s.Created},
		{Key: "Updated", Value: s.Updated},
		{Key: "First Message", Value: s.FirstMessage},
		{Key: "First Message Mode", Value: text(record, "firstMessageMode", shaper.NotAvailable)},
		{Key: "Voice", Value: s.VoiceProvider},
		{Key: "Model", Value: fmt.Sprintf("%s/%s", s.ModelProvider, s.ModelName)},
		{Key: "Max Duration", Value: text(record, "maxDurationSeconds", shaper.NotAvailable)},
		{Key: "Background Sound", Value: text(record, "backgroundSound", shaper.NotAvailable)},
	}
	if typed.Voice != nil && typed.Voice.VoiceID != "" {
		fields = append(fields, style.Field{Key: "Voice ID", Value: typed.Voice.VoiceID})
	}
	if typed.Model != nil && typed.Model.Temperature != 0 {
		fields = append(fields, style.Field{Key: "Temperature", Value: strconv.FormatFloat(typed.Model.Temperature, 'f', -1, 64)})
	}
	if len(typed.EndCallPhrases) > 0 {
		fields = append(fields, style.Field{Key: "End Call Phrases", Value: strings.Join(typed.EndCallPhrases, ", ")})
	}

	w := cmd.OutOrStdout()
	formatter.DetailOutput(w, s.Name, "🤖", fields)

	if prompt := typed.SystemMessage(); prompt != "" {
		fmt.Fprintln(w, style.SubtitleStyle.Render("System Prompt"))
		fmt.Fprint(w, a.renderMarkdown(prompt))
	}
	return nil
}

// formFlags binds the editable assistant fields to command flags. Only flags
// the operator actually set are applied to a form.
type formFlags struct {
	values  shaper.AssistantForm
	phrases []string
}

func (f *formFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.values.Name, "name", "", "Assistant name")
	fs.StringVar(&f.values.FirstMessage, "first-message", "", "First message spoken by the assistant")
	fs.StringVar(&f.values.FirstMessageMode, "first-message-mode", "", "First message mode ("+strings.Join(shaper.FirstMessageModes, "|")+")")
	fs.IntVar(&f.values.MaxDurationSeconds, "max-duration", 0, "Maximum call duration in seconds")
	fs.StringVar(&f.values.VoiceProvider, "voice-provider", "", "Voice provider")
	fs.StringVar(&f.values.VoiceID, "voice-id", "", "Voice ID")
	fs.Float64Var(&f.values.VoiceSpeed, "voice-speed", 0, "Voice speed (0.5-2.0)")
	fs.Float64Var(&f.values.VoiceStability, "voice-stability", 0, "Voice stability (0.0-1.0)")
	fs.StringVar(&f.values.ModelProvider, "model-provider", "", "Model provider")
	fs.StringVar(&f.values.ModelName, "model", "", "Model name")
	fs.Float64Var(&f.values.Temperature, "temperature", 0, "Model temperature (0.0-2.0)")
	fs.IntVar(&f.values.MaxTokens, "max-tokens", 0, "Maximum tokens per response")
	fs.StringVar(&f.values.SystemMessage, "system-message", "", "System prompt")
	fs.StringVar(&f.values.BackgroundSound, "background-sound", "", "Background sound ("+strings.Join(shaper.BackgroundSounds, "|")+")")
	fs.StringVar(&f.values.EndCallMessage, "end-call-message", "", "Message spoken before ending the call")
	fs.StringVar(&f.values.VoicemailMessage, "voicemail-message", "", "Message left on voicemail")
	fs.StringSliceVar(&f.phrases, "end-call-phrase", nil, "Phrase that ends the call (repeatable)")
}

var formSetters = map[string]func(dst, src *shaper.AssistantForm){
	"name":               func(d, s *shaper.AssistantForm) { d.Name = s.Name },
	"first-message":      func(d, s *shaper.AssistantForm) { d.FirstMessage = s.FirstMessage },
	"first-message-mode": func(d, s *shaper.AssistantForm) { d.FirstMessageMode = s.FirstMessageMode },
	"max-duration":       func(d, s *shaper.AssistantForm) { d.MaxDurationSeconds = s.MaxDurationSeconds },
	"voice-provider":     func(d, s *shaper.AssistantForm) { d.VoiceProvider = s.VoiceProvider },
	"voice-id":           func(d, s *shaper.AssistantForm) { d.VoiceID = s.VoiceID },
	"voice-speed":        func(d, s *shaper.AssistantForm) { d.VoiceSpeed = s.VoiceSpeed },
	"voice-stability":    func(d, s *shaper.AssistantForm) { d.VoiceStability = s.VoiceStability },
	"model-provider":     func(d, s *shaper.AssistantForm) { d.ModelProvider = s.ModelProvider },
	"model":              func(d, s *shaper.AssistantForm) { d.ModelName = s.ModelName },
	"temperature":        func(d, s *shaper.AssistantForm) { d.Temperature = s.Temperature },
	"max-tokens":         func(d, s *shaper.AssistantForm) { d.MaxTokens = s.MaxTokens },
	"system-message":     func(d, s *shaper.AssistantForm) { d.SystemMessage = s.SystemMessage },
	"background-sound":   func(d, s *shaper.AssistantForm) { d.BackgroundSound = s.BackgroundSound },
	"end-call-message":   func(d, s *shaper.AssistantForm) { d.EndCallMessage = s.EndCallMessage },
	"voicemail-message":  func(d, s *shaper.AssistantForm) { d.VoicemailMessage = s.VoicemailMessage },
}

// apply copies the set flags onto dst and reports whether any was set.
func (f *formFlags) apply(cmd *cobra.Command, dst *shaper.AssistantForm) bool {
	changed := false
	for name, set := range formSetters {
		if cmd.Flags().Changed(name) {
			set(dst, &f.values)
			changed = true
		}
	}
	if cmd.Flags().Changed("end-call-phrase") {
		dst.EndCallPhrases = strings.Join(f.phrases, "\n")
		changed = true
	}
	return changed
}

func validateForm(form shaper.AssistantForm) error {
	if err := form.Validate(); err != nil {
		return clierrors.ValidationError(err, "")
	}
	return nil
}

func newCreateAssistantCommand(a *app) *cobra.Command {
	var (
		flags       formFlags
		inputFile   string
		interactive bool
		outputFmt   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "➕ Create an assistant",
		Example: `  # Create with defaults and a name
  vapi assistant create --name "Support"

  # Pick voice and model
  vapi assistant create --name "Sales" --voice-provider openai --voice-id alloy \
    --model-provider anthropic --model claude-3-haiku

  # Create from a JSON or YAML file
  vapi assistant create --file assistant.yaml

  # Fill in the form interactively
  vapi assistant create --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}

			var payload map[string]any
			if inputFile != "" {
				if payload, err = a.readPayloadFile(inputFile); err != nil {
					return err
				}
			} else {
				form := shaper.NewAssistantForm()
				flags.apply(cmd, &form)
				if interactive {
					if err := a.promptForm(&form); err != nil {
						return clierrors.RuntimeError(err)
					}
				}
				if err := validateForm(form); err != nil {
					return err
				}
				payload = form.Payload()
			}

			var created vapi.Record
			if err := a.run(cmd, "Creating assistant", func() error {
				created, err = a.session().CreateAssistant(cmd.Context(), payload)
				return err
			}); err != nil {
				return a.fail(err)
			}

			if format != formatter.FormatTable {
				return formatter.Encode(cmd.OutOrStdout(), format, created)
			}
			s := shaper.Summarize(created)
			formatter.SuccessMessage(cmd.OutOrStdout(), "Assistant created", []style.Field{
				{Key: "ID", Value: s.ID},
				{Key: "Name", Value: s.Name},
			})
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read the assistant from a JSON or YAML file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the assistant interactively")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.MarkFlagsMutuallyExclusive("file", "interactive")
	return cmd
}

func newUpdateAssistantCommand(a *app) *cobra.Command {
	var (
		flags       formFlags
		inputFile   string
		interactive bool
		outputFmt   string
	)

	cmd := &cobra.Command{
		Use:     "update <assistant-id>",
		Aliases: []string{"edit"},
		Short:   "✏️  Update an assistant",
		Example: `  # Rename an assistant
  vapi assistant update asst-123 --name "Support v2"

  # Apply a partial update from a file
  vapi assistant update asst-123 --file patch.json

  # Edit the current settings interactively
  vapi assistant update asst-123 --interactive`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}

			var payload map[string]any
			if inputFile != "" {
				if payload, err = a.readPayloadFile(inputFile); err != nil {
					return err
				}
			} else {
				payload, err = a.editForm(cmd, id, &flags, interactive)
				if err != nil {
					return err
				}
			}

			var updated vapi.Record
			if err := a.run(cmd, "Updating assistant", func() error {
				updated, err = a.session().UpdateAssistant(cmd.Context(), id, payload)
				return err
			}); err != nil {
				return a.fail(err)
			}

			if format != formatter.FormatTable {
				return formatter.Encode(cmd.OutOrStdout(), format, updated)
			}
			s := shaper.Summarize(updated)
			formatter.SuccessMessage(cmd.OutOrStdout(), "Assistant updated", []style.Field{
				{Key: "ID", Value: s.ID},
				{Key: "Name", Value: s.Name},
				{Key: "Updated", Value: s.Updated},
			})
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read the changes from a JSON or YAML file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit the assistant interactively")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	cmd.MarkFlagsMutuallyExclusive("file", "interactive")
	return cmd
}

// editForm pre-fills a form from the current assistant, applies flags and
// prompts, and returns the payload to send.
func (a *app) editForm(cmd *cobra.Command, id string, flags *formFlags, interactive bool) (map[string]any, error) {
	var current vapi.Record
	if err := a.run(cmd, "Fetching assistant", func() error {
		var err error
		current, err = a.session().GetAssistant(cmd.Context(), id)
		return err
	}); err != nil {
		return nil, a.fail(err)
	}

	form, err := shaper.FormFromAssistant(current)
	if err != nil {
		return nil, clierrors.RuntimeError(err)
	}
	changed := flags.apply(cmd, &form)
	if interactive {
		if err := a.promptForm(&form); err != nil {
			return nil, clierrors.RuntimeError(err)
		}
	} else if !changed {
		return nil, clierrors.ValidationError(errors.New("nothing to update"),
			"Pass --file, --interactive or at least one field flag such as --name.")
	}

	if err := validateForm(form); err != nil {
		return nil, err
	}
	return form.Payload(), nil
}

func newDeleteAssistantCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <assistant-id>",
		Aliases: []string{"rm"},
		Short:   "🗑️  Delete an assistant",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes {
				ok, err := a.confirm(fmt.Sprintf("Delete assistant %s", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Deletion cancelled")
					return nil
				}
			}

			if err := a.run(cmd, "Deleting assistant", func() error {
				_, err := a.session().DeleteAssistant(cmd.Context(), id)
				return err
			}); err != nil {
				return a.fail(err)
			}

			formatter.SuccessMessage(cmd.OutOrStdout(), fmt.Sprintf("Assistant %s deleted", id), nil)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}

// confirm asks for confirmation on interactive terminals and refuses otherwise.
func (a *app) confirm(label string) (bool, error) {
	if a.mode != output.OutputModeInteractive {
		return false, clierrors.ValidationError(errors.New("confirmation required"),
			"Pass --yes to confirm in non-interactive mode.")
	}
	ok, err := a.prompt.Confirm(label)
	if err != nil {
		return false, clierrors.RuntimeError(err)
	}
	return ok, nil
}
