package types

import "time"

// Job describes a running rclone process found on this machine.
type Job struct {
	PID        int32
	Subcommand string // e.g. "sync", "bisync", "copy"; "" if not recognized
	Source     string
	Target     string
	Started    time.Time
	Cmdline    []string
	OpenFiles  []string // files the process has open; empty when unreadable
}
