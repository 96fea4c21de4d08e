package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/inforexx/rbackup/internal/backup"
	"github.com/inforexx/rbackup/internal/config"
	"github.com/inforexx/rbackup/internal/logging"
)

var backupCmd = &cobra.Command{
	Use:   "backup <pair | SOURCE TARGET>",
	Short: "Diff-driven one-way backup",
	Long: `Compute the differences between source and target, then copy new and
changed files to the target and delete files that are gone from the source.

The analysis phase writes the same CSV reports as "rbk compare". Transfer
behavior is controlled by the tuning values in the config file, optionally
overridden by a TOML tuning profile.

Examples:
  rbk backup docs
  rbk backup docs --dry-run            # Analysis only, no transfers
  rbk backup docs --tuning fast.toml   # Override transfer tuning`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBackup,
}

var (
	backupDryRun bool
	backupTuning string
	backupHash   bool
)

func init() {
	rootCmd.AddCommand(backupCmd)

	backupCmd.Flags().BoolVar(&backupDryRun, "dry-run", false, "Analyze and log only, perform no operations")
	backupCmd.Flags().StringVar(&backupTuning, "tuning", "", "TOML tuning profile for transfer parameters")
	backupCmd.Flags().BoolVar(&backupHash, "hash", false, "Request file hashes in the listings")
}

func runBackup(cmd *cobra.Command, args []string) error {
	pair, err := resolvePair(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tuning := cfg.Tuning
	if backupTuning != "" {
		tuning, err = config.LoadTuning(backupTuning, cfg.Tuning)
		if err != nil {
			return err
		}
	}

	log, closeLog, err := openRunLog(cfg, "backup")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("Processing source: %s -> destination: %s", pair.Source, pair.Target)

	engine := backup.NewEngine(newClient(cfg), log, effectiveLogFolder(cfg), logging.Timestamp())
	engine.Hash = backupHash

	fmt.Printf("Analyzing %s -> %s\n", pair.Source, pair.Target)
	log.Info("Starting change analysis phase: Computing all differences...")
	res, err := engine.Compare(ctx, pair.Source, pair.Target)
	if err != nil {
		return err
	}

	plan := backup.BuildPlan(res.Diffs)
	if plan.Empty() {
		log.Info("Nothing to do - source and target are identical.")
		fmt.Println("Nothing to do - source and target are identical")
		return nil
	}

	fmt.Printf("Plan: %d files to copy, %d files to delete\n", len(plan.Copies), len(plan.Deletes))

	if backupDryRun {
		log.Info("Dry run mode: No actual operations performed (analysis only).")
		fmt.Printf("Dry run: no operations performed. Reports: %s\n", res.DiffListPath)
		return nil
	}

	log.Info("Starting sync operations using diffs...")
	if err := engine.Apply(ctx, pair.Source, pair.Target, plan, tuning); err != nil {
		return err
	}
	log.Info("Sync completed.")

	fmt.Printf("Backup completed: %d copied, %d deleted\n", len(plan.Copies), len(plan.Deletes))
	return nil
}
