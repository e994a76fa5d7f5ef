package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"github.com/vapictl/cli/internal/cli/testutil"
	"github.com/vapictl/cli/internal/config"
	clierrors "github.com/vapictl/cli/internal/errors"
	"github.com/vapictl/cli/internal/output"
	"github.com/vapictl/cli/internal/pterm"
)

type testEnv struct {
	server *testutil.MockVapiServer
	cfg    *config.Config
	fs     afero.Fs
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	server := testutil.NewMockVapiServer()
	t.Cleanup(server.Close)

	return &testEnv{
		server: server,
		cfg: &config.Config{
			APIKey:  server.APIKey(),
			APIBase: server.URL(),
		},
		fs: afero.NewMemMapFs(),
	}
}

func (e *testEnv) root(opts ...Option) *cobra.Command {
	base := []Option{
		WithFs(e.fs),
		WithOutputMode(output.OutputModeCI),
		WithLogger(pterm.NewPlainLogger(io.Discard, false)),
	}
	return NewRootCommand(e.cfg, append(base, opts...)...)
}

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func decodeJSON(t *testing.T, s string, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal([]byte(s), v), s)
}

func requireErrorType(t *testing.T, err error, want clierrors.ErrorType) {
	t.Helper()
	require.Error(t, err)
	var cliErr *clierrors.CLIError
	require.ErrorAs(t, err, &cliErr)
	require.Equal(t, want, cliErr.Type, err.Error())
}

// scriptedPrompter answers prompts like an operator at the keyboard. Selects
// named in choices and inputs named in answers get those values; any other
// input or select keeps its default as if Enter was pressed. Menu and picker
// selects read the selects queue, and an empty queue ends the console as if
// the operator pressed Ctrl-C.
type scriptedPrompter struct {
	selects  []int
	choices  map[string]int
	answers  map[string]string
	confirms []bool
	labels   []string
}

func (p *scriptedPrompter) Select(label string, items []string, cursor int) (int, error) {
	p.labels = append(p.labels, label)
	if idx, ok := p.choices[label]; ok {
		return idx, nil
	}
	if label != "What would you like to do" && !strings.HasPrefix(label, "Assistant to ") {
		return cursor, nil
	}
	if len(p.selects) == 0 {
		return -1, promptui.ErrInterrupt
	}
	idx := p.selects[0]
	p.selects = p.selects[1:]
	return idx, nil
}

func (p *scriptedPrompter) Input(label, def string, validate func(string) error) (string, error) {
	p.labels = append(p.labels, label)
	v, ok := p.answers[label]
	if !ok {
		return def, nil
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

func (p *scriptedPrompter) Confirm(label string) (bool, error) {
	p.labels = append(p.labels, label)
	if len(p.confirms) == 0 {
		return false, promptui.ErrAbort
	}
	ok := p.confirms[0]
	p.confirms = p.confirms[1:]
	return ok, nil
}
