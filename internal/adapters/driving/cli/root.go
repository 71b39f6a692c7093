// Package cli is the driving adapter: cobra commands that translate
// flags and playbook files into calls on the core's driving ports.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ucikit/ucictl/internal/adapters/driven/storage/sqlite"
	uciexec "github.com/ucikit/ucictl/internal/adapters/driven/uci/exec"
	"github.com/ucikit/ucictl/internal/core/ports/driven"
	"github.com/ucikit/ucictl/internal/logger"
)

var version = "dev"

var (
	verboseFlag bool
	uciBinFlag  string
	jsonFlag    bool
)

// Wiring seams for the driven adapters. Tests swap these for the
// in-memory store.
var (
	newStore = func(binPath string) (driven.Store, error) {
		return uciexec.New(binPath)
	}
	newHistory = func() (driven.HistoryStore, error) {
		return sqlite.NewStore("")
	}
)

var rootCmd = &cobra.Command{
	Use:   "ucictl",
	Short: "Declarative reconciliation for UCI configuration",
	Long: `ucictl converges a UCI configuration store toward a declared desired
state. Playbooks describe what should exist; ucictl computes and issues
the minimal sequence of uci invocations to get there.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"print reconciliation detail to stderr")
	rootCmd.PersistentFlags().StringVar(&uciBinFlag, "uci-bin", "",
		"path to the uci binary (default: playbook setting, then PATH)")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// uciBinary resolves the store binary path: flag, then environment,
// then playbook default.
func uciBinary(playbookDefault string) string {
	if uciBinFlag != "" {
		return uciBinFlag
	}
	if env := os.Getenv("UCICTL_UCI_BIN"); env != "" {
		return env
	}
	return playbookDefault
}
