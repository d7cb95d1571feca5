package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container
)

// Build information injected at build time via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// Tagline is used in help text.
const Tagline = "Celebrates approved and merged pull requests from your GitHub notifications"

// CLI is the command-line surface. Configuration comes from the environment
// and the optional YAML file, not from flags.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	Run   RunCmd   `cmd:"" help:"Poll notifications and serve the panel (default)" default:"1"`
	Check CheckCmd `cmd:"check" help:"Run a single notification check and exit"`
	Test  TestCmd  `cmd:"test" help:"Show the celebratory and sad notices for a sample pull request"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("prcelebration"),
		kong.Description(Tagline),
		kong.Vars{
			"version": fmt.Sprintf("prcelebration %s (commit: %s)", Version, Commit),
		},
		kong.UsageOnError(),
	)

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
