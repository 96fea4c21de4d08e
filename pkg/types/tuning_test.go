package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTuningArgs(t *testing.T) {
	tests := []struct {
		name   string
		tuning Tuning
		want   []string
	}{
		{
			name:   "zero value renders nothing",
			tuning: Tuning{},
			want:   nil,
		},
		{
			name: "all fields",
			tuning: Tuning{
				Transfers:         8,
				Checkers:          64,
				MultiThreadStream: 4,
				LowLevelRetries:   10,
				Retries:           3,
				RetriesSleep:      "10s",
				Timeout:           "5m",
				MaxBacklog:        10000,
				Checksum:          true,
			},
			want: []string{
				"--transfers", "8",
				"--checkers", "64",
				"--multi-thread-streams", "4",
				"--low-level-retries", "10",
				"--retries", "3",
				"--retries-sleep", "10s",
				"--timeout", "5m",
				"--max-backlog", "10000",
				"--checksum",
			},
		},
		{
			name:   "partial",
			tuning: Tuning{Transfers: 2, Timeout: "30s"},
			want:   []string{"--transfers", "2", "--timeout", "30s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tuning.Args())
		})
	}
}
