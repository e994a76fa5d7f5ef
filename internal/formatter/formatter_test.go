package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vapictl/cli/internal/style"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"xml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorContains(t, err, "unknown output format")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncode(t *testing.T) {
	v := map[string]any{"id": "a1", "name": "Support"}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, v))
	assert.JSONEq(t, `{"id":"a1","name":"Support"}`, buf.String())

	buf.Reset()
	require.NoError(t, Encode(&buf, FormatYAML, v))
	assert.Equal(t, "id: a1\nname: Support\n", buf.String())

	assert.Error(t, Encode(&buf, FormatTable, v))
}

func TestTableRender(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, "ID", "NAME")
	table.AddRow("a1", "Support")
	table.AddRow("a2", "Sales")
	require.NoError(t, table.Render())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "ID")
	assert.Contains(t, lines[2], "Support")
	assert.Contains(t, lines[3], "Sales")
}

func TestListAndDetailOutput(t *testing.T) {
	var buf bytes.Buffer
	err := ListOutput(&buf, "Assistants", "🤖", 2, func() error {
		buf.WriteString("rows\n")
		return nil
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Assistants (2)")
	assert.Contains(t, buf.String(), "rows")

	buf.Reset()
	DetailOutput(&buf, "Support", "🤖", []style.Field{{Key: "ID", Value: "a1"}})
	assert.Contains(t, buf.String(), "Support")
	assert.Contains(t, buf.String(), "a1")
}

func TestMessageBoxes(t *testing.T) {
	var buf bytes.Buffer
	SuccessMessage(&buf, "Assistant created", []style.Field{{Key: "ID", Value: "a1"}})
	assert.Contains(t, buf.String(), "✓ Assistant created")
	assert.Contains(t, buf.String(), "a1")

	buf.Reset()
	ErrorMessage(&buf, "API Error: status 401")
	assert.Contains(t, buf.String(), "✗ API Error: status 401")
	assert.Equal(t, 1, strings.Count(buf.String(), "✗"))

	buf.Reset()
	WarningMessage(&buf, "Not connected")
	assert.Contains(t, buf.String(), "⚠ Not connected")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", TruncateID("short"))
	assert.Equal(t, "0123456789ab...", TruncateID("0123456789abcdef"))
	assert.Equal(t, "hello", TruncateString("hello", 10))
	assert.Equal(t, "hel...", TruncateString("hello world", 6))
	assert.Equal(t, "he", TruncateString("hello", 2))
}
