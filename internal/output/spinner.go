package output

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Progress shows a spinner while a blocking API call runs. It is silent
// outside an interactive terminal so scripted output stays parseable.
type Progress struct {
	w       io.Writer
	mode    OutputMode
	message string
}

func NewProgress(w io.Writer, mode OutputMode, message string) *Progress {
	return &Progress{w: w, mode: mode, message: message}
}

// Run executes fn and leaves a ✓ or ✗ line behind the message.
func (p *Progress) Run(fn func() error) error {
	if p.mode != OutputModeInteractive {
		return fn()
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond,
		spinner.WithWriter(p.w),
		spinner.WithSuffix(" "+p.message),
	)
	_ = s.Color("cyan", "bold")
	s.Start()
	err := fn()
	s.Stop()

	mark := "✓"
	if err != nil {
		mark = "✗"
	}
	fmt.Fprintf(p.w, "%s %s\n", mark, p.message)
	return err
}
