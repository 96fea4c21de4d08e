package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inforexx/rbackup/internal/jobs"
	"github.com/inforexx/rbackup/internal/ui"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect running rclone processes",
	Long: `Show which rclone processes are currently running on this machine,
with their source and target when they can be read from the command line.

Examples:
  rbk jobs list
  rbk jobs kill 12676`,
	RunE: runJobsList,
}

var jobsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List running rclone processes",
	RunE:    runJobsList,
}

var jobsKillCmd = &cobra.Command{
	Use:   "kill <pid>",
	Short: "Terminate a running rclone process",
	Long: `Terminate an rclone process, escalating to a hard kill if it does not
exit within 3 seconds.

Examples:
  rbk jobs kill 12676`,
	Args: cobra.ExactArgs(1),
	RunE: runJobsKill,
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsKillCmd)
}

func runJobsList(cmd *cobra.Command, args []string) error {
	found, err := jobs.List()
	if err != nil {
		return err
	}

	if len(found) == 0 {
		fmt.Println("No rclone processes running")
		return nil
	}

	ui.PrintJobTable(found)

	for _, j := range found {
		if len(j.OpenFiles) == 0 {
			continue
		}
		fmt.Printf("\nOpen files of PID %d (may include the file currently copied):\n", j.PID)
		for _, p := range j.OpenFiles {
			fmt.Println("  " + ui.PathStyle.Render(p))
		}
	}
	return nil
}

func runJobsKill(cmd *cobra.Command, args []string) error {
	pid, err := strconv.ParseInt(args[0], 10, 32)
	if err != nil {
		return fmt.Errorf("invalid pid: %s", args[0])
	}

	if err := jobs.Kill(int32(pid)); err != nil {
		return err
	}

	fmt.Printf("Process %d terminated\n", pid)
	return nil
}
