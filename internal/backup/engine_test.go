package backup

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inforexx/rbackup/internal/rclone"
)

func TestClassifyPurgeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want purgeOutcome
	}{
		{
			name: "non-empty folder is skipped",
			err:  errors.New("rclone purge: exit status 1: rmdir: Directory not empty"),
			want: purgeSkippedNotEmpty,
		},
		{
			name: "missing folder is skipped",
			err:  errors.New("rclone purge: exit status 1: directory not found"),
			want: purgeSkippedGone,
		},
		{
			name: "exit status 3 means the folder is gone",
			err:  errors.New("rclone purge: exit status 3"),
			want: purgeSkippedGone,
		},
		{
			name: "anything else is a failure",
			err:  errors.New("rclone purge: exit status 1: permission denied"),
			want: purgeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyPurgeError(tt.err))
		})
	}
}

// stubRclone writes an executable shell script standing in for rclone.
func stubRclone(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "rclone")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestPurgeDirsCountsFailures(t *testing.T) {
	bin := stubRclone(t, `#!/bin/sh
case "$*" in
*nonempty*) echo "rmdir: directory not empty" >&2; exit 1 ;;
*vanished*) echo "directory not found" >&2; exit 1 ;;
*broken*)   echo "permission denied" >&2; exit 1 ;;
*)          exit 0 ;;
esac
`)

	engine := NewEngine(rclone.NewClient(rclone.WithBinary(bin)), quietLogger(), t.TempDir(), "stamp")

	dirs := []string{"ok/one", "ok/two", "nonempty", "vanished", "broken"}
	purged, err := engine.PurgeDirs(context.Background(), "remote:backup", dirs)

	assert.Equal(t, 2, purged)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 folders failed to purge")
}

func TestPurgeDirsAllSkipped(t *testing.T) {
	bin := stubRclone(t, `#!/bin/sh
echo "directory not found" >&2
exit 1
`)

	engine := NewEngine(rclone.NewClient(rclone.WithBinary(bin)), quietLogger(), t.TempDir(), "stamp")

	purged, err := engine.PurgeDirs(context.Background(), "remote:backup", []string{"a", "b"})
	assert.Equal(t, 0, purged)
	assert.NoError(t, err)
}
