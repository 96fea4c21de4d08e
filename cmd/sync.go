package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/inforexx/rbackup/internal/config"
	"github.com/inforexx/rbackup/internal/logging"
	"github.com/inforexx/rbackup/internal/rclone"
	"github.com/inforexx/rbackup/internal/watch"
	"github.com/inforexx/rbackup/pkg/types"
)

var syncCmd = &cobra.Command{
	Use:   "sync <pair | SOURCE TARGET> [-- rclone-args...]",
	Short: "Bidirectional sync via rclone bisync",
	Long: `Run "rclone bisync" for a pair, with the log file and log level appended.

Everything after "--" is forwarded to rclone verbatim. The exit code of
rclone becomes the exit code of rbk.

Examples:
  rbk sync docs                      # Sync the configured pair "docs"
  rbk sync D:/docs remote:docs       # Sync literal paths
  rbk sync docs --resync             # First run of a new pair
  rbk sync docs --interval 30s       # Re-run in a loop, stop on failure
  rbk sync docs --watch              # Re-run when the local source changes
  rbk sync docs -- --dry-run -v      # Forward flags to rclone`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSync,
}

var (
	syncResync   bool
	syncDryRun   bool
	syncInterval time.Duration
	syncWatch    bool
)

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncResync, "resync", false, "Pass --resync to rclone (first sync of a pair)")
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Pass --dry-run to rclone")
	syncCmd.Flags().DurationVar(&syncInterval, "interval", 0, "Re-run in a loop with this delay between runs")
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "Re-run when the local source tree changes")
}

func runSync(cmd *cobra.Command, args []string) error {
	// Arguments after "--" are forwarded to rclone untouched.
	pairArgs := args
	var extra []string
	if split := cmd.ArgsLenAtDash(); split >= 0 {
		pairArgs = args[:split]
		extra = args[split:]
	}

	pair, err := resolvePair(pairArgs)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	folder := effectiveLogFolder(cfg)
	if err := os.MkdirAll(folder, 0755); err != nil {
		return fmt.Errorf("failed to create log folder: %w", err)
	}
	rcloneLog := filepath.Join(folder, logging.Timestamp()+"_sync.log")

	client := newClient(cfg, rclone.WithLogFile(rcloneLog))

	var conv []string
	if syncResync {
		conv = append(conv, "--resync")
	}
	if syncDryRun {
		conv = append(conv, "--dry-run")
	}
	extra = append(conv, extra...)

	// Stop rclone if we are interrupted
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch {
	case syncWatch:
		return syncWatchLoop(ctx, client, pair, extra)
	case syncInterval > 0:
		return syncIntervalLoop(ctx, client, pair, extra)
	default:
		return client.Bisync(ctx, pair.Source, pair.Target, extra...)
	}
}

// syncIntervalLoop re-runs bisync with a delay between runs, stopping on the
// first failure.
func syncIntervalLoop(ctx context.Context, client *rclone.Client, pair *types.Pair, extra []string) error {
	for {
		if err := client.Bisync(ctx, pair.Source, pair.Target, extra...); err != nil {
			return err
		}

		fmt.Printf("Sync completed, next run in %s\n", syncInterval)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(syncInterval):
		}
	}
}

// syncWatchLoop re-runs bisync whenever the local source tree changes,
// coalescing change bursts.
func syncWatchLoop(ctx context.Context, client *rclone.Client, pair *types.Pair, extra []string) error {
	w, err := watch.New(pair.Source, 2*time.Second)
	if err != nil {
		return err
	}
	defer w.Close()
	go w.Start(ctx)

	// Initial run before waiting for changes
	if err := client.Bisync(ctx, pair.Source, pair.Target, extra...); err != nil {
		return err
	}

	fmt.Printf("Watching %s for changes, press Ctrl+C to stop\n", pair.Source)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Triggers():
			fmt.Println("Change detected, syncing...")
			if err := client.Bisync(ctx, pair.Source, pair.Target, extra...); err != nil {
				return err
			}
		case werr := <-w.Errors():
			fmt.Fprintf(os.Stderr, "watch: %v\n", werr)
		}
	}
}
