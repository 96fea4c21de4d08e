package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inforexx/rbackup/internal/backup"
	"github.com/inforexx/rbackup/internal/config"
	"github.com/inforexx/rbackup/internal/logging"
	"github.com/inforexx/rbackup/internal/ui"
)

var purgeCmd = &cobra.Command{
	Use:   "purge <pair | SOURCE TARGET>",
	Short: "Remove target folders that are gone from the source",
	Long: `Compare the folder structures of a pair and purge the folders that
exist only on the target, deepest first. Each folder is removed with
"rclone purge", contents included, so a confirmation is asked before
anything is deleted.

Examples:
  rbk purge docs
  rbk purge docs --dry-run     # List candidates only
  rbk purge docs --yes         # Skip the confirmation prompt`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPurge,
}

var (
	purgeDryRun bool
	purgeYes    bool
)

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().BoolVar(&purgeDryRun, "dry-run", false, "List folders that would be purged, delete nothing")
	purgeCmd.Flags().BoolVarP(&purgeYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runPurge(cmd *cobra.Command, args []string) error {
	pair, err := resolvePair(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closeLog, err := openRunLog(cfg, "purge")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("Starting folder structure check for source: %s -> destination: %s", pair.Source, pair.Target)

	engine := backup.NewEngine(newClient(cfg), log, effectiveLogFolder(cfg), logging.Timestamp())

	stray, err := engine.StrayDirs(ctx, pair.Source, pair.Target)
	if err != nil {
		return err
	}

	if len(stray) == 0 {
		log.Info("No stray folders found on target.")
		fmt.Println("No stray folders on target")
		return nil
	}

	fmt.Printf("Folders on target but not on source (%d):\n", len(stray))
	for _, d := range stray {
		fmt.Println("  " + ui.DeletedStyle.Render(d))
	}

	if purgeDryRun {
		log.Info("Dry run mode: No folder deletions performed.")
		fmt.Println("\nDry run: nothing deleted")
		return nil
	}

	if !purgeYes && !confirm(fmt.Sprintf("\nPurge these %d folders and their contents?", len(stray))) {
		log.Info("Purge cancelled by user.")
		fmt.Println("Cancelled")
		return nil
	}

	log.Info("Starting folder deletions purging")
	purged, err := engine.PurgeDirs(ctx, pair.Target, stray)
	fmt.Printf("Purged %d folders\n", purged)
	return err
}

// confirm asks a yes/no question on the terminal.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
