package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/inforexx/rbackup/internal/config"
	"github.com/inforexx/rbackup/internal/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show rclone binary, config and pair status",
	Long: `Display the rclone binary in use, the configuration files, and whether
the remotes referenced by configured pairs exist in the rclone config.

Examples:
  rbk status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Println("Current Status")
	fmt.Println(ui.MutedStyle.Render("─────────────────────────────────"))
	fmt.Println()

	fmt.Printf("Config:      %s\n", config.GetConfigPath())
	fmt.Printf("Log folder:  %s\n", effectiveLogFolder(cfg))
	fmt.Printf("Log level:   %s\n", effectiveLogLevel(cfg))
	if rcloneConf := cfg.RcloneConfigFile(); rcloneConf != "" {
		fmt.Printf("rclone.conf: %s\n", rcloneConf)
	}
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client := newClient(cfg)
	fmt.Printf("rclone:      ")
	version, err := client.Version(ctx)
	if err != nil {
		fmt.Println(ui.DeletedStyle.Render("✗ Not available"))
		fmt.Printf("             %s\n", ui.MutedStyle.Render(err.Error()))
		return nil
	}
	fmt.Printf("%s (%s)\n", ui.NewStyle.Render("✓ "+version), client.Binary())

	pairs, err := config.ListPairs()
	if err != nil {
		return err
	}
	fmt.Printf("Pairs:       %d configured\n", len(pairs))

	if len(pairs) == 0 {
		return nil
	}

	// Check that remotes referenced by pair targets actually exist
	remotes, err := client.DumpRemotes(ctx)
	if err != nil {
		fmt.Printf("Remotes:     %s\n", ui.MutedStyle.Render("could not read rclone config: "+err.Error()))
		return nil
	}

	fmt.Println()
	for _, p := range pairs {
		remote, ok := remoteName(p.Target)
		if !ok {
			continue
		}
		if typ, exists := remotes[remote]; exists {
			fmt.Printf("  %s %s (%s)\n", ui.NewStyle.Render("✓"), remote, typ)
		} else {
			fmt.Printf("  %s %s %s\n", ui.DeletedStyle.Render("✗"), remote,
				ui.MutedStyle.Render("not in rclone config, pair "+p.Name))
		}
	}

	return nil
}

// remoteName extracts the remote name from a "remote:path" target.
// Single-letter names are treated as Windows drive letters, not remotes.
func remoteName(target string) (string, bool) {
	i := strings.IndexByte(target, ':')
	if i <= 1 {
		return "", false
	}
	return target[:i], true
}
