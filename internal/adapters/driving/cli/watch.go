package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/ucikit/ucictl/internal/logger"
)

// watchReapplyInterval throttles re-applies so editor save storms do
// not stampede the store.
const watchReapplyInterval = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch <playbook>",
	Short: "Re-apply a playbook whenever it changes",
	Long: `Applies the playbook, then watches it and re-applies on every change
until interrupted. Re-applies are rate limited; a failing apply is
reported and watching continues.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors typically replace the file, which
	// would orphan a watch on the path itself.
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	apply := func() {
		if err := runPlaybook(cmd, path, false); err != nil {
			cmd.PrintErrf("apply failed: %v\n", err)
		}
	}

	apply()
	limiter := rate.NewLimiter(rate.Every(watchReapplyInterval), 1)
	ctx := cmd.Context()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := limiter.Wait(ctx); err != nil {
				return nil
			}
			logger.Info("playbook changed, re-applying")
			apply()
		}
	}
}
