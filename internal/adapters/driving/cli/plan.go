package cli

import (
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <playbook>",
	Short: "Show what apply would change, without mutating the store",
	Long: `Evaluates the playbook with full reconciliation logic but records
the invocations instead of executing them. Planning never mutates the
store.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlaybook(cmd, args[0], true)
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
}
