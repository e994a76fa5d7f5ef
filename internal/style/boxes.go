package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled line of a metadata box.
type Field struct {
	Key   string
	Value string
}

// CreateBanner renders a title banner with a leading icon.
func CreateBanner(title string, icon string) string {
	return BannerStyle.Render(fmt.Sprintf("%s  %s", icon, title))
}

// CreateMetadataBox renders fields in the given order, keys aligned.
func CreateMetadataBox(fields []Field) string {
	width := 0
	for _, f := range fields {
		if w := lipgloss.Width(f.Key); w > width {
			width = w
		}
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		key := f.Key + ":" + strings.Repeat(" ", width-lipgloss.Width(f.Key))
		lines = append(lines, fmt.Sprintf("%s %s",
			MetadataKeyStyle.Render(key),
			MetadataValueStyle.Render(f.Value)))
	}
	return MetadataBoxStyle.Render(strings.Join(lines, "\n"))
}

// CreateConnectionBadge renders the connection status of the session.
func CreateConnectionBadge(connected bool) string {
	if connected {
		return ConnectedBadgeStyle.Render("CONNECTED")
	}
	return DisconnectedBadgeStyle.Render("DISCONNECTED")
}

// CreateDivider creates a horizontal divider
func CreateDivider(width int) string {
	return DividerStyle.Render(strings.Repeat("─", width))
}

func CreateHelpBox(content string) string {
	return HelpBoxStyle.Render(content)
}

func CreateSuccessBox(message string) string {
	return SuccessBoxStyle.Render(fmt.Sprintf("✓ %s", message))
}

func CreateErrorBox(message string) string {
	return ErrorBoxStyle.Render(fmt.Sprintf("✗ %s", message))
}

func CreateWarningBox(message string) string {
	return WarningBoxStyle.Render(fmt.Sprintf("⚠ %s", message))
}
