package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inforexx/rbackup/internal/backup"
	"github.com/inforexx/rbackup/internal/config"
	"github.com/inforexx/rbackup/internal/logging"
	"github.com/inforexx/rbackup/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [pair...]",
	Short: "Run compare and backup for multiple pairs",
	Long: `Run the compare and backup steps for each given pair in order, or for
every source,target row of a CSV file. A failing pair is logged and the
run continues with the next one; the command exits non-zero if any pair
failed.

Examples:
  rbk run docs photos              # Run configured pairs in order
  rbk run --csv folders.csv        # Run every row of a CSV file
  rbk run --csv folders.csv --purge  # Also purge stray target folders
  rbk run docs --dry-run           # Analysis only`,
	RunE: runRun,
}

var (
	runCSV        string
	runDryRun     bool
	runTuning     string
	runPurgeStray bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runCSV, "csv", "", "CSV file with source,target rows")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Analyze and log only, perform no operations")
	runCmd.Flags().StringVar(&runTuning, "tuning", "", "TOML tuning profile for transfer parameters")
	runCmd.Flags().BoolVar(&runPurgeStray, "purge", false, "Purge stray target folders without prompting")
}

func runRun(cmd *cobra.Command, args []string) error {
	if runCSV == "" && len(args) == 0 {
		return fmt.Errorf("give pair names or --csv FILE")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var pairs []types.Pair
	if runCSV != "" {
		pairs, err = config.ReadPairsCSV(runCSV)
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			fmt.Println("No valid source-target pairs found in the CSV file")
			return nil
		}
	}
	for _, name := range args {
		p, err := config.GetPair(name)
		if err != nil {
			return err
		}
		pairs = append(pairs, *p)
	}

	tuning := cfg.Tuning
	if runTuning != "" {
		tuning, err = config.LoadTuning(runTuning, cfg.Tuning)
		if err != nil {
			return err
		}
	}

	log, closeLog, err := openRunLog(cfg, "run")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("START SYNCING FOLDERS: %d pairs", len(pairs))
	for _, p := range pairs {
		log.Infof("Source: %s", p.Source)
		log.Infof("Destination: %s", p.Target)
	}

	failures := 0
	for i, p := range pairs {
		fmt.Printf("[%d/%d] %s -> %s\n", i+1, len(pairs), p.Source, p.Target)
		log.Infof("Processing source: %s -> destination: %s", p.Source, p.Target)

		if err := runOnePair(ctx, cfg, log, p, tuning); err != nil {
			log.Errorf("Pair failed: %v", err)
			fmt.Fprintf(os.Stderr, "  failed: %v\n", err)
			failures++
		}

		if ctx.Err() != nil {
			return fmt.Errorf("interrupted")
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d pairs failed", failures, len(pairs))
	}
	fmt.Printf("All %d pairs completed\n", len(pairs))
	return nil
}

func runOnePair(ctx context.Context, cfg *config.Config, log *logrus.Logger, pair types.Pair, tuning types.Tuning) error {
	engine := backup.NewEngine(newClient(cfg), log, effectiveLogFolder(cfg), logging.Timestamp())

	if runPurgeStray {
		stray, err := engine.StrayDirs(ctx, pair.Source, pair.Target)
		if err != nil {
			return err
		}
		if len(stray) > 0 && !runDryRun {
			if _, err := engine.PurgeDirs(ctx, pair.Target, stray); err != nil {
				return err
			}
		}
	}

	res, err := engine.Compare(ctx, pair.Source, pair.Target)
	if err != nil {
		return err
	}

	plan := backup.BuildPlan(res.Diffs)
	if plan.Empty() {
		fmt.Println("  nothing to do")
		return nil
	}
	fmt.Printf("  %d to copy, %d to delete\n", len(plan.Copies), len(plan.Deletes))

	if runDryRun {
		log.Info("Dry run mode: No actual operations performed (analysis only).")
		return nil
	}

	return engine.Apply(ctx, pair.Source, pair.Target, plan, tuning)
}
