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
	"github.com/inforexx/rbackup/internal/ui"
	"github.com/inforexx/rbackup/pkg/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare <pair | SOURCE TARGET>",
	Short: "Compare source and target structures",
	Long: `List both sides of a pair and report files missing on either side or
differing in size or modification time. The full listings and the
differences are written as CSV reports into the log folder.

Examples:
  rbk compare docs
  rbk compare D:/docs remote:docs
  rbk compare docs --hash          # Include file hashes in the listings`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompare,
}

var compareHash bool

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().BoolVar(&compareHash, "hash", false, "Request file hashes in the listings")
}

func runCompare(cmd *cobra.Command, args []string) error {
	pair, err := resolvePair(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, closeLog, err := openRunLog(cfg, "compare")
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("Processing source: %s -> destination: %s", pair.Source, pair.Target)

	engine := backup.NewEngine(newClient(cfg), log, effectiveLogFolder(cfg), logging.Timestamp())
	engine.Hash = compareHash

	fmt.Printf("Comparing %s -> %s\n", pair.Source, pair.Target)
	res, err := engine.Compare(ctx, pair.Source, pair.Target)
	if err != nil {
		return err
	}

	printCompareSummary(res)
	return nil
}

func printCompareSummary(res *backup.CompareResult) {
	fmt.Printf("Source: %d files, Target: %d files\n\n", len(res.Source), len(res.Target))

	if len(res.Diffs) == 0 {
		fmt.Println("No differences found - source and target are identical")
		return
	}

	var newCount, changedCount, deletedCount int
	for _, d := range res.Diffs {
		switch d.Type {
		case types.MissingInTarget:
			newCount++
		case types.Different:
			changedCount++
		case types.MissingInSource:
			deletedCount++
		}
	}

	ui.PrintDiffTable(res.Diffs)
	fmt.Printf("\n%d differences: %d new, %d changed, %d deleted\n",
		len(res.Diffs), newCount, changedCount, deletedCount)
	fmt.Printf("Reports: %s, %s\n", res.FileListPath, res.DiffListPath)
}
