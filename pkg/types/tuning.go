package types

import "strconv"

// Tuning holds the rclone transfer knobs applied during backup runs.
// Zero values mean "leave rclone's default alone".
type Tuning struct {
	Transfers         int    `yaml:"transfers,omitempty" toml:"transfers"`
	Checkers          int    `yaml:"checkers,omitempty" toml:"checkers"`
	MultiThreadStream int    `yaml:"multi_thread_streams,omitempty" toml:"multi_thread_streams"`
	LowLevelRetries   int    `yaml:"low_level_retries,omitempty" toml:"low_level_retries"`
	Retries           int    `yaml:"retries,omitempty" toml:"retries"`
	RetriesSleep      string `yaml:"retries_sleep,omitempty" toml:"retries_sleep"`
	Timeout           string `yaml:"timeout,omitempty" toml:"timeout"`
	MaxBacklog        int    `yaml:"max_backlog,omitempty" toml:"max_backlog"`
	Checksum          bool   `yaml:"checksum,omitempty" toml:"checksum"`
}

// Args renders the tuning values as rclone command-line flags.
func (t Tuning) Args() []string {
	var args []string
	if t.Transfers > 0 {
		args = append(args, "--transfers", strconv.Itoa(t.Transfers))
	}
	if t.Checkers > 0 {
		args = append(args, "--checkers", strconv.Itoa(t.Checkers))
	}
	if t.MultiThreadStream > 0 {
		args = append(args, "--multi-thread-streams", strconv.Itoa(t.MultiThreadStream))
	}
	if t.LowLevelRetries > 0 {
		args = append(args, "--low-level-retries", strconv.Itoa(t.LowLevelRetries))
	}
	if t.Retries > 0 {
		args = append(args, "--retries", strconv.Itoa(t.Retries))
	}
	if t.RetriesSleep != "" {
		args = append(args, "--retries-sleep", t.RetriesSleep)
	}
	if t.Timeout != "" {
		args = append(args, "--timeout", t.Timeout)
	}
	if t.MaxBacklog > 0 {
		args = append(args, "--max-backlog", strconv.Itoa(t.MaxBacklog))
	}
	if t.Checksum {
		args = append(args, "--checksum")
	}
	return args
}
