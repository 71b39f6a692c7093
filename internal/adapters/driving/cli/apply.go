package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ucikit/ucictl/internal/adapters/driven/config/file"
	"github.com/ucikit/ucictl/internal/core/domain"
	"github.com/ucikit/ucictl/internal/core/services"
	"github.com/ucikit/ucictl/internal/logger"
)

var dryRunFlag bool

var applyCmd = &cobra.Command{
	Use:   "apply <playbook>",
	Short: "Reconcile the store against a playbook",
	Long: `Reconciles every desired-state spec in the playbook, in order.
Each spec is converged independently; the first failure stops the run
with the issued commands reported for diagnosis.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlaybook(cmd, args[0], dryRunFlag)
	},
}

func init() {
	applyCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false,
		"record the invocations without executing them")
	applyCmd.Flags().BoolVar(&jsonFlag, "json", false,
		"emit results as JSON")
	rootCmd.AddCommand(applyCmd)
}

// specResult is the JSON shape for one reconciled spec, mirroring the
// fields the original module returned.
type specResult struct {
	Name          string   `json:"name,omitempty"`
	Config        string   `json:"config"`
	Changed       bool     `json:"changed"`
	DryRun        bool     `json:"dry_run"`
	ChangesBefore []string `json:"changes_before"`
	ChangesAfter  []string `json:"changes_after"`
	UciCommands   []string `json:"uci_commands"`
	Error         string   `json:"error,omitempty"`
}

// runPlaybook reconciles every spec in the playbook in order.
func runPlaybook(cmd *cobra.Command, path string, dryRun bool) error {
	pb, err := file.Load(path)
	if err != nil {
		return err
	}

	store, err := newStore(uciBinary(pb.Defaults.UciBin))
	if err != nil {
		return err
	}

	opts := []services.ReconcilerOption{}
	if pb.Defaults.CommitPolicy == file.CommitOnChange {
		opts = append(opts, services.WithCommitOnChangeOnly())
	}
	if history, err := newHistory(); err != nil {
		logger.Warn("run journal unavailable: %v", err)
	} else if history != nil {
		opts = append(opts, services.WithHistory(history))
	}

	rec := services.NewReconciler(store, opts...)

	var results []specResult
	var runErr error
	for i, spec := range pb.Specs {
		label := spec.Name
		if label == "" {
			label = fmt.Sprintf("uci[%d]", i)
		}
		logger.Info("reconciling %s (%s)", label, spec.Config)

		var res *domain.Result
		if dryRun {
			res, err = rec.Plan(cmd.Context(), spec)
		} else {
			res, err = rec.Apply(cmd.Context(), spec)
		}
		results = append(results, toSpecResult(spec, res, err))
		if res != nil {
			for _, command := range res.Commands {
				logger.Cmd(command)
			}
		}
		if err != nil {
			runErr = fmt.Errorf("%s: %w", label, err)
			break
		}
		if !jsonFlag {
			printResult(cmd, label, res)
		}
	}

	if jsonFlag {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding results: %w", err)
		}
		cmd.Println(string(out))
	}
	return runErr
}

func toSpecResult(spec domain.DesiredSpec, res *domain.Result, err error) specResult {
	sr := specResult{Name: spec.Name, Config: spec.Config}
	if res != nil {
		sr.Changed = res.Changed
		sr.DryRun = res.DryRun
		sr.ChangesBefore = res.ChangesBefore
		sr.ChangesAfter = res.ChangesAfter
		sr.UciCommands = res.Commands
	}
	if err != nil {
		sr.Error = err.Error()
	}
	return sr
}

func printResult(cmd *cobra.Command, label string, res *domain.Result) {
	status := "ok"
	if res.Changed {
		status = "changed"
	}
	if res.DryRun {
		status += " (dry-run)"
	}
	cmd.Printf("[%s] %s: %s\n", status, res.Config, label)
	if res.DryRun {
		for _, command := range res.Commands {
			cmd.Printf("  would run: %s\n", command)
		}
	}
}
