package cli

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/ucikit/ucictl/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show <config>",
	Short: "Dump the parsed sections of a config",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore(uciBinary(""))
		if err != nil {
			return err
		}

		config := args[0]
		sections, err := store.Sections(cmd.Context(), config)
		if err != nil {
			return err
		}

		for _, sec := range sections {
			cmd.Printf("%s.%s=%s\n", config, sec.ID, sec.Type)
			for _, name := range sortedOptionNames(sec.Options) {
				cmd.Printf("%s.%s.%s=%s\n", config, sec.ID, name, sec.Options[name].Display())
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func sortedOptionNames(options map[string]domain.Value) []string {
	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
