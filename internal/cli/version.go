package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vapictl/cli/internal/formatter"
	"github.com/vapictl/cli/internal/version"
)

func newVersionCommand(a *app) *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the CLI version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := outputFormat(outputFmt)
			if err != nil {
				return err
			}
			if format != formatter.FormatTable {
				return formatter.Encode(cmd.OutOrStdout(), format, version.GetInfo())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "vapi %s\n", version.GetVersion())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFmt, "output", "o", "table", "Output format (table|json|yaml)")
	return cmd
}
