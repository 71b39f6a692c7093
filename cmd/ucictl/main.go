// Command ucictl reconciles UCI configuration against declared
// desired-state playbooks.
package main

import (
	"os"

	"github.com/ucikit/ucictl/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
