package cmd

import (
	"fmt"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inforexx/rbackup/internal/config"
	"github.com/inforexx/rbackup/internal/ui"
	"github.com/inforexx/rbackup/pkg/types"
)

var pairsCmd = &cobra.Command{
	Use:   "pairs",
	Short: "Manage source/target pairs",
	Long: `Manage the named source/target pairs used by sync, compare, backup and purge.

When run without subcommands, shows an interactive selector.

Examples:
  rbk pairs                          # Interactive pair selector
  rbk pairs list                     # List all configured pairs
  rbk pairs add docs D:/docs remote:docs
  rbk pairs remove docs
  rbk pairs import folders.csv       # Import source,target rows`,
	RunE: runPairsInteractive,
}

var pairsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List configured pairs",
	RunE:    runPairsList,
}

var pairsAddCmd = &cobra.Command{
	Use:   "add <name> <source> <target>",
	Short: "Add or update a pair",
	Long: `Add a named pair to the config file, or update an existing one.

Examples:
  rbk pairs add docs D:/docs remote:docs`,
	Args: cobra.ExactArgs(3),
	RunE: runPairsAdd,
}

var pairsRemoveCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a pair",
	Args:    cobra.ExactArgs(1),
	RunE:    runPairsRemove,
}

var pairsImportCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import pairs from a CSV file",
	Long: `Import pairs from a CSV file with a header row and source,target rows.

Pair names are derived from the last segment of the source path; a numeric
suffix is appended when the name is already taken.

Examples:
  rbk pairs import folders.csv`,
	Args: cobra.ExactArgs(1),
	RunE: runPairsImport,
}

func init() {
	rootCmd.AddCommand(pairsCmd)
	pairsCmd.AddCommand(pairsListCmd)
	pairsCmd.AddCommand(pairsAddCmd)
	pairsCmd.AddCommand(pairsRemoveCmd)
	pairsCmd.AddCommand(pairsImportCmd)
}

func runPairsInteractive(cmd *cobra.Command, args []string) error {
	pairs, err := config.ListPairs()
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		fmt.Println("No pairs configured")
		fmt.Println("Add one with: rbk pairs add <name> <source> <target>")
		return nil
	}

	pair, err := ui.SelectPair(pairs)
	if err != nil {
		return nil // cancelled, exit silently
	}

	fmt.Printf("Pair:   %s\n", ui.HeaderStyle.Render(pair.Name))
	fmt.Printf("Source: %s\n", ui.PathStyle.Render(pair.Source))
	fmt.Printf("Target: %s\n", ui.PathStyle.Render(pair.Target))
	fmt.Println()
	fmt.Printf("Run a backup with:  rbk backup %s\n", pair.Name)
	fmt.Printf("Run a sync with:    rbk sync %s\n", pair.Name)
	return nil
}

func runPairsList(cmd *cobra.Command, args []string) error {
	pairs, err := config.ListPairs()
	if err != nil {
		return err
	}

	if len(pairs) == 0 {
		fmt.Println("No pairs configured")
		return nil
	}

	ui.PrintPairTable(pairs)
	return nil
}

func runPairsAdd(cmd *cobra.Command, args []string) error {
	name, source, target := args[0], args[1], args[2]

	if err := config.AddPair(name, &types.Pair{Source: source, Target: target}); err != nil {
		return err
	}

	fmt.Printf("Added pair %s: %s -> %s\n", name, source, target)
	return nil
}

func runPairsRemove(cmd *cobra.Command, args []string) error {
	if err := config.RemovePair(args[0]); err != nil {
		return err
	}

	fmt.Printf("Removed pair %s\n", args[0])
	return nil
}

func runPairsImport(cmd *cobra.Command, args []string) error {
	imported, err := config.ReadPairsCSV(args[0])
	if err != nil {
		return err
	}

	if len(imported) == 0 {
		fmt.Println("No valid source-target pairs found in the CSV file")
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	added := 0
	for _, p := range imported {
		name := pairNameFor(cfg, p.Source)
		cfg.Pairs[name] = &types.Pair{Source: p.Source, Target: p.Target}
		fmt.Printf("  %s: %s -> %s\n", name, p.Source, p.Target)
		added++
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	fmt.Printf("Imported %d pairs\n", added)
	return nil
}

// pairNameFor derives a unique pair name from the source path.
func pairNameFor(cfg *config.Config, source string) string {
	base := strings.ToLower(path.Base(strings.TrimSuffix(source, "/")))
	if i := strings.IndexByte(base, ':'); i >= 0 {
		base = base[i+1:]
	}
	if base == "" || base == "." || base == "/" {
		base = "pair"
	}

	name := base
	for i := 2; ; i++ {
		if _, ok := cfg.Pairs[name]; !ok {
			return name
		}
		name = fmt.Sprintf("%s-%d", base, i)
	}
}
