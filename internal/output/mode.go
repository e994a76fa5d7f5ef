package output

// OutputMode represents the output style
type OutputMode int

const (
	// OutputModeInteractive shows spinners and styled output
	OutputModeInteractive OutputMode = iota
	// OutputModeCI shows plain text, no spinners
	OutputModeCI
)

// DetectMode picks the output mode for the current process.
func DetectMode() OutputMode {
	if IsCI() {
		return OutputModeCI
	}
	return OutputModeInteractive
}
