package cli

import (
	"errors"
	"io"

	"github.com/spf13/cobra"
)

var historyLimitFlag int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent reconciliation runs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		history, err := newHistory()
		if err != nil {
			return err
		}
		if history == nil {
			return errors.New("run journal not configured")
		}
		if closer, ok := history.(io.Closer); ok {
			defer closer.Close()
		}

		records, err := history.Recent(cmd.Context(), historyLimitFlag)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			cmd.Println("No recorded runs.")
			return nil
		}

		for _, rec := range records {
			status := "ok"
			switch {
			case rec.Error != "":
				status = "failed"
			case rec.Changed:
				status = "changed"
			}
			mode := ""
			if rec.DryRun {
				mode = " (dry-run)"
			}
			label := rec.Config
			if rec.SpecName != "" {
				label += " / " + rec.SpecName
			}
			cmd.Printf("%s  %-8s %s%s  %d commands\n",
				rec.StartedAt.Local().Format("2006-01-02 15:04:05"),
				status, label, mode, len(rec.Commands))
			if rec.Error != "" {
				cmd.Printf("    %s\n", rec.Error)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20,
		"maximum number of runs to list")
	rootCmd.AddCommand(historyCmd)
}
