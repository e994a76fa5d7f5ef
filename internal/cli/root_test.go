package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantErr     bool
		wantContain string
	}{
		{
			name:        "help command",
			args:        []string{"--help"},
			wantContain: "Available Commands:",
		},
		{
			name:        "assistant help",
			args:        []string{"assistant", "--help"},
			wantContain: "delete",
		},
		{
			name:    "invalid command",
			args:    []string{"invalid"},
			wantErr: true,
		},
		{
			name:        "version",
			args:        []string{"version"},
			wantContain: "vapi dev",
		},
		{
			name:        "version as json",
			args:        []string{"version", "--output", "json"},
			wantContain: `"version": "dev"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnv(t)
			got, err := executeCommand(env.root(), tt.args...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Contains(t, got, tt.wantContain)
		})
	}
}
