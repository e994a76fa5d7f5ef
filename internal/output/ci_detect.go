package output

import (
	"os"

	"github.com/mattn/go-isatty"
)

var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"VAPI_CI_MODE",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"JENKINS_URL",
	"BUILDKITE",
}

// IsCI detects if the CLI is running in a CI environment
// Checks common CI environment variables and TTY status
func IsCI() bool {
	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return true
		}
	}

	// Piped or redirected stdout
	return !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// IsInteractive returns true if the output should be interactive
func IsInteractive() bool {
	return !IsCI()
}
