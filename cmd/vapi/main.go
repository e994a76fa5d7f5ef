package main

import (
	"os"

	"github.com/vapictl/cli/internal/cli"
	"github.com/vapictl/cli/internal/version"
)

// Set by goreleaser.
var (
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	version.SetBuildInfo(commit, date, builtBy)
	os.Exit(cli.Main())
}
