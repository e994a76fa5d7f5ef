package cli

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/vapictl/cli/internal/formatter"
	"github.com/vapictl/cli/internal/shaper"
	"github.com/vapictl/cli/internal/style"
)

// recentCount is how many assistants the dashboard lists.
const recentCount = 5

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"status"},
		Short:   "📊 Show connection status and recent assistants",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.dashboard(cmd)
		},
	}
}

func (a *app) dashboard(cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	fmt.Fprint(w, a.pterm.Section().Sprint("Vapi Dashboard"))

	if !a.cfg.HasAPIKey() {
		formatter.WarningMessage(w, "API key not configured")
		fmt.Fprintln(w, style.CreateHelpBox(credentialsHint))
		return nil
	}

	sess := a.session()
	var loadErr error
	_ = a.run(cmd, "Connecting", func() error {
		loadErr = sess.EnsureLoaded(cmd.Context())
		return nil
	})

	fields := []style.Field{
		{Key: "Status", Value: style.CreateConnectionBadge(sess.Connected())},
		{Key: "Endpoint", Value: a.cfg.Endpoint()},
		{Key: "API Key", Value: a.cfg.MaskedAPIKey()},
	}
	if a.cfg.OrgID != "" {
		fields = append(fields, style.Field{Key: "Org ID", Value: a.cfg.OrgID})
	}
	if sess.Loaded() {
		fields = append(fields, style.Field{Key: "Assistants", Value: strconv.Itoa(len(sess.Assistants()))})
	}
	fmt.Fprintln(w, style.CreateMetadataBox(fields))

	if loadErr != nil {
		return a.fail(loadErr)
	}
	if !sess.Connected() {
		formatter.WarningMessage(w, "Not connected. Check your settings with 'vapi config test'.")
		return nil
	}

	recent := sess.Recent(recentCount)
	if len(recent) == 0 {
		formatter.EmptyListMessage(w, "assistants")
		return nil
	}

	fmt.Fprint(w, a.pterm.Section().WithLevel(2).Sprint("Recently Updated"))
	items := make([]pterm.BulletListItem, 0, len(recent))
	for _, r := range recent {
		s := shaper.Summarize(r)
		items = append(items, pterm.BulletListItem{
			Level: 0,
			Text:  fmt.Sprintf("%s  %s", s.Name, style.DimStyle.Render(s.Updated)),
		})
	}
	list, err := a.pterm.BulletList().WithItems(items).Srender()
	if err != nil {
		return err
	}
	fmt.Fprint(w, list)
	return nil
}
