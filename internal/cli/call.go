package cli

import (
	"github.com/spf13/cobra"
	"github.com/vapictl/cli/internal/formatter"
	"github.com/vapictl/cli/internal/shaper"
	"github.com/vapictl/cli/internal/style"
	"github.com/vapictl/cli/internal/vapi"
)

func newCallCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "call",
		Aliases: []string{"calls"},
		Short:   "☎️  Manage calls",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return requireAPIKey(a)
		},
	}

	cmd.AddCommand(
		newListCallsCommand(a),
		newCreateCallCommand(a),
	)

	return cmd
}

func newListCallsCommand(a *app) *cobra.Command {
	var (
		assistantID string
		limit       int
		outputFmt   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "📋 List calls",
		Example: `  # List recent calls
  vapi call list

  # List the calls of one assistant
  vapi call list --assistant-id asst-123`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}

			var calls []vapi.Record
			if err := a.run(cmd, "Loading calls", func() error {
				calls, err = a.session().ListCalls(cmd.Context(), assistantID, limit)
				return err
			}); err != nil {
				return a.fail(err)
			}

			w := cmd.OutOrStdout()
			if format != formatter.FormatTable {
				return formatter.Encode(w, format, calls)
			}
			if len(calls) == 0 {
				formatter.EmptyListMessage(w, "calls")
				return nil
			}

			return formatter.ListOutput(w, "Calls", "☎️", len(calls), func() error {
				table := formatter.NewTable(w, "ID", "ASSISTANT", "STATUS", "TYPE", "CREATED")
				for _, c := range calls {
					table.AddRow(
						formatter.TruncateID(text(c, "id", shaper.NotAvailable)),
						formatter.TruncateID(text(c, "assistantId", shaper.NotAvailable)),
						text(c, "status", shaper.NotAvailable),
						text(c, "type", shaper.NotAvailable),
						shaper.FormatTimestamp(text(c, "createdAt", shaper.NotAvailable)),
					)
				}
				return table.Render()
			})
		},
	}

	cmd.Flags().StringVarP(&assistantID, "assistant-id", "a", "", "Only list calls of this assistant")
	cmd.Flags().IntVarP(&limit, "limit", "l", vapi.DefaultListLimit, "Maximum number of calls to fetch")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}

func newCreateCallCommand(a *app) *cobra.Command {
	var (
		inputFile string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "📞 Start a call",
		Example: `  # Start an outbound call described in a file
  vapi call create --file call.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}
			payload, err := a.readPayloadFile(inputFile)
			if err != nil {
				return err
			}

			var created vapi.Record
			if err := a.run(cmd, "Starting call", func() error {
				created, err = a.session().CreateCall(cmd.Context(), payload)
				return err
			}); err != nil {
				return a.fail(err)
			}

			if format != formatter.FormatTable {
				return formatter.Encode(cmd.OutOrStdout(), format, created)
			}
			formatter.SuccessMessage(cmd.OutOrStdout(), "Call created", []style.Field{
				{Key: "ID", Value: text(created, "id", shaper.NotAvailable)},
				{Key: "Status", Value: text(created, "status", shaper.NotAvailable)},
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "JSON or YAML file describing the call")
	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
