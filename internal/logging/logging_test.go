package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"DEBUG", logrus.DebugLevel},
		{"debug", logrus.DebugLevel},
		{"INFO", logrus.InfoLevel},
		{"NOTICE", logrus.WarnLevel},
		{"ERROR", logrus.ErrorLevel},
		{"bogus", logrus.InfoLevel},
		{"", logrus.InfoLevel},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "level %q", tt.in)
	}
}

func TestOpenCreatesFolderAndFile(t *testing.T) {
	folder := filepath.Join(t.TempDir(), "log")

	log, closeLog, err := Open(folder, "INFO", "compare")
	require.NoError(t, err)
	defer closeLog()

	log.Info("hello from the test")

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	name := entries[0].Name()
	assert.True(t, strings.HasSuffix(name, "_rbk_compare.log.txt"), "unexpected name %q", name)

	data, err := os.ReadFile(filepath.Join(folder, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
}

func TestOpenLevelFiltering(t *testing.T) {
	folder := t.TempDir()

	log, closeLog, err := Open(folder, "ERROR", "backup")
	require.NoError(t, err)
	defer closeLog()

	log.Info("should be filtered")
	log.Error("should be kept")

	entries, err := os.ReadDir(folder)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := os.ReadFile(filepath.Join(folder, entries[0].Name()))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "should be filtered")
	assert.Contains(t, string(data), "should be kept")
}
