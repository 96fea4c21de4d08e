package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePairFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "folders.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadPairsCSV(t *testing.T) {
	path := writePairFile(t, "source,target\n"+
		`D:\photos\2024,"remote:backup/photos/2024"`+"\n"+
		"D:/docs,remote:backup/docs\n")

	pairs, err := ReadPairsCSV(path)
	require.NoError(t, err)
	require.Len(t, pairs, 2)

	// backslashes normalized, quotes stripped
	assert.Equal(t, "D:/photos/2024", pairs[0].Source)
	assert.Equal(t, "remote:backup/photos/2024", pairs[0].Target)
	assert.Equal(t, "D:/docs", pairs[1].Source)
	assert.Equal(t, "remote:backup/docs", pairs[1].Target)
}

func TestReadPairsCSVSkipsInvalidRows(t *testing.T) {
	path := writePairFile(t, "source,target\n"+
		"only-one-field\n"+
		" ,remote:blank-source\n"+
		"D:/blank-target,  \n"+
		"D:/good,remote:good\n")

	pairs, err := ReadPairsCSV(path)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, "D:/good", pairs[0].Source)
}

func TestReadPairsCSVHeaderOnly(t *testing.T) {
	path := writePairFile(t, "source,target\n")
	pairs, err := ReadPairsCSV(path)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestReadPairsCSVEmptyFile(t *testing.T) {
	path := writePairFile(t, "")
	pairs, err := ReadPairsCSV(path)
	require.NoError(t, err)
	assert.Empty(t, pairs)
}

func TestReadPairsCSVMissingFile(t *testing.T) {
	_, err := ReadPairsCSV(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}
