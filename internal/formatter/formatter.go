package formatter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/vapictl/cli/internal/style"
	"gopkg.in/yaml.v3"
)

// Format selects how a command renders its result.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an --output flag value. Empty means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (use table, json or yaml)", s)
	}
}

// Encode writes v as JSON or YAML. Table output is handled by the caller.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q cannot be encoded", format)
	}
}

// TableFormatter handles consistent table output across all commands
type TableFormatter struct {
	writer  *tabwriter.Writer
	headers []string
	rows    [][]string
}

// NewTable creates a new table formatter writing to w
func NewTable(w io.Writer, headers ...string) *TableFormatter {
	return &TableFormatter{
		writer:  tabwriter.NewWriter(w, 0, 0, 3, ' ', 0),
		headers: headers,
	}
}

// AddRow adds a row to the table
func (t *TableFormatter) AddRow(columns ...string) {
	t.rows = append(t.rows, columns)
}

// Render writes the header, a divider and every row.
func (t *TableFormatter) Render() error {
	headers := make([]string, len(t.headers))
	for i, h := range t.headers {
		headers[i] = style.TableHeaderStyle.Render(h)
	}
	fmt.Fprintln(t.writer, strings.Join(headers, "\t"))
	fmt.Fprintln(t.writer, style.CreateDivider(80))
	for _, row := range t.rows {
		fmt.Fprintln(t.writer, strings.Join(row, "\t"))
	}
	return t.writer.Flush()
}

// ListOutput prints a banner with the item count, then the table.
func ListOutput(w io.Writer, title string, icon string, count int, tableFunc func() error) error {
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.CreateBanner(fmt.Sprintf("%s (%d)", title, count), icon))
	fmt.Fprintln(w)
	if err := tableFunc(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return nil
}

// DetailOutput prints a banner and a metadata box.
func DetailOutput(w io.Writer, title string, icon string, fields []style.Field) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.CreateBanner(title, icon))
	fmt.Fprintln(w)
	fmt.Fprintln(w, style.CreateMetadataBox(fields))
	fmt.Fprintln(w)
}

// SuccessMessage displays operation success with optional details
func SuccessMessage(w io.Writer, message string, details []style.Field) {
	fmt.Fprintln(w, style.CreateSuccessBox(message))
	if len(details) > 0 {
		fmt.Fprintln(w, style.CreateMetadataBox(details))
	}
}

// ErrorMessage displays a failure the console recovers from
func ErrorMessage(w io.Writer, message string) {
	fmt.Fprintln(w, style.CreateErrorBox(message))
}

func WarningMessage(w io.Writer, message string) {
	fmt.Fprintln(w, style.CreateWarningBox(message))
}

// EmptyListMessage displays a message when no items are found
func EmptyListMessage(w io.Writer, resourceType string) {
	fmt.Fprintln(w, style.CreateHelpBox(fmt.Sprintf("No %s found", resourceType)))
}

// TruncateID shortens ids for table display (first 12 chars)
func TruncateID(id string) string {
	if len(id) <= 12 {
		return id
	}
	return id[:12] + "..."
}

// TruncateString truncates a string to maxLen runes with ellipsis
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
