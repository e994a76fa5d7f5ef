package pterm

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/vapictl/cli/internal/output"
)

// PTermManager manages PTerm components with OutputMode awareness
type PTermManager struct {
	mode     output.OutputMode
	disabled bool
}

// NewPTermManager creates a new PTerm manager with appropriate configuration
func NewPTermManager(mode output.OutputMode) *PTermManager {
	pm := &PTermManager{
		mode:     mode,
		disabled: false,
	}

	if os.Getenv("VAPI_PTERM_ENABLED") == "false" {
		pm.disabled = true
		return pm
	}

	// Disable PTerm features in CI/non-TTY environments
	if mode == output.OutputModeCI || !isatty.IsTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
		pterm.DisableStyling()
		pm.disabled = true
	}

	pm.applyTheme()

	return pm
}

func (pm *PTermManager) applyTheme() {
	pterm.Success = *pterm.Success.WithMessageStyle(pterm.NewStyle(pterm.FgLightGreen))
	pterm.Error = *pterm.Error.WithMessageStyle(pterm.NewStyle(pterm.FgLightRed))
	pterm.Info = *pterm.Info.WithMessageStyle(pterm.NewStyle(pterm.FgLightCyan))
	pterm.Warning = *pterm.Warning.WithMessageStyle(pterm.NewStyle(pterm.FgYellow))
}

// Section creates a configured section printer
func (pm *PTermManager) Section() *pterm.SectionPrinter {
	if pm.disabled {
		return &pterm.DefaultSection
	}

	return pterm.DefaultSection.WithStyle(pterm.NewStyle(pterm.FgCyan, pterm.Bold))
}

// BulletList creates a configured bullet list printer
func (pm *PTermManager) BulletList() *pterm.BulletListPrinter {
	if pm.disabled {
		return &pterm.DefaultBulletList
	}

	return pterm.DefaultBulletList.WithBulletStyle(pterm.NewStyle(pterm.FgCyan))
}

// IsDisabled returns whether PTerm is disabled
func (pm *PTermManager) IsDisabled() bool {
	return pm.disabled
}

// Mode returns the current output mode
func (pm *PTermManager) Mode() output.OutputMode {
	return pm.mode
}
