package rclone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBisyncArgs(t *testing.T) {
	tests := []struct {
		name  string
		extra []string
		want  []string
	}{
		{
			name:  "no extra args",
			extra: nil,
			want: []string{
				"bisync", "D:/docs", "remote:docs",
				"--log-file=log/run.log",
				"--log-level", "INFO",
			},
		},
		{
			name:  "extra args appended verbatim after the fixed prefix",
			extra: []string{"--dry-run", "--resync", "-v"},
			want: []string{
				"bisync", "D:/docs", "remote:docs",
				"--log-file=log/run.log",
				"--log-level", "INFO",
				"--dry-run", "--resync", "-v",
			},
		},
		{
			name:  "extra arg order preserved",
			extra: []string{"-v", "--dry-run"},
			want: []string{
				"bisync", "D:/docs", "remote:docs",
				"--log-file=log/run.log",
				"--log-level", "INFO",
				"-v", "--dry-run",
			},
		},
	}

	client := NewClient(
		WithLogFile("log/run.log"),
		WithLogLevel("INFO"),
	)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := client.BisyncArgs("D:/docs", "remote:docs", tt.extra...)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBisyncArgsLogLevel(t *testing.T) {
	client := NewClient(WithLogFile("x.log"), WithLogLevel("DEBUG"))
	args := client.BisyncArgs("a", "b")
	assert.Contains(t, args, "DEBUG")
	assert.Equal(t, "--log-level", args[4])
	assert.Equal(t, "DEBUG", args[5])
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient()
	assert.Equal(t, "rclone", client.Binary())

	client = NewClient(WithBinary("/opt/rclone/rclone"))
	assert.Equal(t, "/opt/rclone/rclone", client.Binary())
}

func TestLsjsonArgs(t *testing.T) {
	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{
			name: "plain",
			opts: ListOptions{},
			want: []string{"lsjson", "remote:docs"},
		},
		{
			name: "files listing",
			opts: ListOptions{Recursive: true, FilesOnly: true, FastList: true},
			want: []string{"lsjson", "remote:docs", "--recursive", "--files-only", "--fast-list"},
		},
		{
			name: "dirs listing with hash",
			opts: ListOptions{Recursive: true, DirsOnly: true, Hash: true},
			want: []string{"lsjson", "remote:docs", "--recursive", "--dirs-only", "--hash"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lsjsonArgs("remote:docs", tt.opts))
		})
	}
}

func TestParseListing(t *testing.T) {
	data := []byte(`[
		{"Path":"a/b.txt","Name":"b.txt","Size":42,"ModTime":"2024-03-01T10:00:00.123456789Z","IsDir":false,"Hashes":{"crc32":"deadbeef"}},
		{"Path":"a","Name":"a","Size":-1,"ModTime":"2024-03-01T09:00:00Z","IsDir":true},
		{"Path":"weird.txt","Name":"weird.txt","Size":1,"ModTime":"not-a-time","IsDir":false}
	]`)

	entries, err := parseListing(data)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "a/b.txt", entries[0].Path)
	assert.Equal(t, int64(42), entries[0].Size)
	assert.False(t, entries[0].ModTime.IsZero())
	assert.Equal(t, "deadbeef", entries[0].Hash("crc32"))

	assert.True(t, entries[1].IsDir)

	// unparseable modtime keeps the raw string and a zero time
	assert.True(t, entries[2].ModTime.IsZero())
	assert.Equal(t, "not-a-time", entries[2].ModTimeRaw)
}

func TestParseListingInvalid(t *testing.T) {
	_, err := parseListing([]byte("not json"))
	assert.Error(t, err)
}

// stubBinary writes an executable shell script standing in for rclone.
func stubBinary(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub scripts need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "rclone")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestBisyncExitCodePropagation(t *testing.T) {
	bin := stubBinary(t, "#!/bin/sh\nexit 7\n")
	client := NewClient(
		WithBinary(bin),
		WithLogFile(filepath.Join(t.TempDir(), "run.log")),
		WithLogLevel("INFO"),
	)

	err := client.Bisync(context.Background(), "D:/docs", "remote:docs")
	require.Error(t, err)

	var ee *ExitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, 7, ee.Code)
	assert.Equal(t, "bisync", ee.Args[0])
	assert.Equal(t, 7, ExitCode(err))
}

func TestBisyncSuccess(t *testing.T) {
	bin := stubBinary(t, "#!/bin/sh\nexit 0\n")
	client := NewClient(WithBinary(bin), WithLogFile("run.log"))

	assert.NoError(t, client.Bisync(context.Background(), "D:/docs", "remote:docs"))
}

func TestExitCode(t *testing.T) {
	err := &ExitError{Code: 7, Args: []string{"bisync", "a", "b"}}
	assert.Equal(t, 7, ExitCode(err))
	assert.Equal(t, 7, ExitCode(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, -1, ExitCode(fmt.Errorf("plain error")))
	assert.Equal(t, -1, ExitCode(nil))
}
