package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inforexx/rbackup/pkg/types"
)

func TestLoadTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fast.toml")
	content := `
transfers = 16
checkers = 64
retries_sleep = "10s"
checksum = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	base := types.Tuning{
		Transfers: 4,
		Retries:   3,
		Timeout:   "5m",
	}

	merged, err := LoadTuning(path, base)
	require.NoError(t, err)

	// overridden by the profile
	assert.Equal(t, 16, merged.Transfers)
	assert.Equal(t, 64, merged.Checkers)
	assert.Equal(t, "10s", merged.RetriesSleep)
	assert.True(t, merged.Checksum)

	// absent from the profile, kept from the base
	assert.Equal(t, 3, merged.Retries)
	assert.Equal(t, "5m", merged.Timeout)
}

func TestLoadTuningMissingFile(t *testing.T) {
	base := types.Tuning{Transfers: 4}
	_, err := LoadTuning(filepath.Join(t.TempDir(), "nope.toml"), base)
	assert.Error(t, err)
}

func TestLoadTuningBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("transfers = [not valid"), 0644))

	_, err := LoadTuning(path, types.Tuning{})
	assert.Error(t, err)
}
