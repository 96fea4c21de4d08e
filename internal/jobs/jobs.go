package jobs

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/inforexx/rbackup/pkg/types"
)

// subcommands that take source and target positional arguments.
var twoArgSubcommands = map[string]bool{
	"sync":   true,
	"bisync": true,
	"copy":   true,
	"move":   true,
	"check":  true,
	"copyto": true,
	"moveto": true,
}

// List returns the rclone processes currently running on this machine,
// sorted by PID.
func List() ([]types.Job, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	var found []types.Job
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !strings.Contains(strings.ToLower(name), "rclone") {
			continue
		}

		cmdline, err := p.CmdlineSlice()
		if err != nil {
			continue
		}

		job := types.Job{
			PID:     p.Pid,
			Cmdline: cmdline,
		}
		job.Subcommand, job.Source, job.Target = ParseCmdline(cmdline)

		if created, err := p.CreateTime(); err == nil {
			job.Started = time.UnixMilli(created)
		}

		// The open files hint at what the process is transferring right now.
		// Reading them can fail on another user's process; leave empty then.
		if open, err := p.OpenFiles(); err == nil {
			paths := make([]string, 0, len(open))
			for _, f := range open {
				paths = append(paths, f.Path)
			}
			job.OpenFiles = FilterOpenFiles(paths)
		}

		found = append(found, job)
	}

	sort.Slice(found, func(i, j int) bool { return found[i].PID < found[j].PID })
	return found, nil
}

// ParseCmdline extracts the subcommand and, for transfer subcommands, the
// source and target positional arguments from an rclone command line.
// Flag arguments are skipped; a flag's separate value cannot always be told
// apart from a positional, so results are best effort.
func ParseCmdline(cmdline []string) (sub, src, dst string) {
	if len(cmdline) < 2 {
		return "", "", ""
	}

	var positional []string
	for _, arg := range cmdline[1:] {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		positional = append(positional, arg)
	}

	if len(positional) == 0 {
		return "", "", ""
	}
	sub = positional[0]

	if twoArgSubcommands[sub] && len(positional) >= 3 {
		src = positional[1]
		dst = positional[2]
	}
	return sub, src, dst
}

// FilterOpenFiles drops Windows system files from an open-file listing and
// returns the remaining paths sorted. rclone on Windows keeps DLLs under
// C:\Windows open; the user's own files are the interesting ones.
func FilterOpenFiles(paths []string) []string {
	var files []string
	for _, p := range paths {
		if strings.HasPrefix(strings.ToLower(p), `c:\windows`) {
			continue
		}
		files = append(files, p)
	}
	sort.Strings(files)
	return files
}

// Kill terminates the process with the given PID, escalating to a hard kill
// after a 3 second grace period.
func Kill(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Errorf("process %d not found: %w", pid, err)
	}

	if err := p.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate process %d: %w", pid, err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		running, err := p.IsRunning()
		if err != nil || !running {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}

	if err := p.Kill(); err != nil {
		return fmt.Errorf("failed to kill process %d: %w", pid, err)
	}
	return nil
}
