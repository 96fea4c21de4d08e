package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/inforexx/rbackup/pkg/types"
)

// LoadTuning reads a TOML tuning profile and merges it over the base values.
// Only fields present in the file override the base.
func LoadTuning(path string, base types.Tuning) (types.Tuning, error) {
	var profile types.Tuning
	meta, err := toml.DecodeFile(path, &profile)
	if err != nil {
		return base, fmt.Errorf("failed to load tuning profile %s: %w", path, err)
	}

	merged := base
	for _, key := range meta.Keys() {
		switch key.String() {
		case "transfers":
			merged.Transfers = profile.Transfers
		case "checkers":
			merged.Checkers = profile.Checkers
		case "multi_thread_streams":
			merged.MultiThreadStream = profile.MultiThreadStream
		case "low_level_retries":
			merged.LowLevelRetries = profile.LowLevelRetries
		case "retries":
			merged.Retries = profile.Retries
		case "retries_sleep":
			merged.RetriesSleep = profile.RetriesSleep
		case "timeout":
			merged.Timeout = profile.Timeout
		case "max_backlog":
			merged.MaxBacklog = profile.MaxBacklog
		case "checksum":
			merged.Checksum = profile.Checksum
		}
	}

	return merged, nil
}
