package backup

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/inforexx/rbackup/pkg/types"
)

// WriteFileList writes the collected source and target listings to a CSV
// report: source rows first, then target rows, each sorted case-insensitively
// by path.
func WriteFileList(path string, source, target []types.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file list report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"DRIVE", "PATH", "MODTIME", "SIZE", "CRC", "ISDIR"}); err != nil {
		return err
	}

	writeSide := func(drive string, entries []types.Entry) error {
		sorted := make([]types.Entry, len(entries))
		copy(sorted, entries)
		sort.Slice(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].Path) < strings.ToLower(sorted[j].Path)
		})
		for _, e := range sorted {
			row := []string{
				drive,
				e.Path,
				e.ModTimeRaw,
				strconv.FormatInt(e.Size, 10),
				e.Hash("crc32"),
				strconv.FormatBool(e.IsDir),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeSide("SOURCE", source); err != nil {
		return err
	}
	if err := writeSide("TARGET", target); err != nil {
		return err
	}

	w.Flush()
	return w.Error()
}

// WriteDiffList writes the computed differences to a CSV report.
func WriteDiffList(path string, diffs []types.Diff) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create diff list report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"TYPE", "PATH",
		"SOURCE_SIZE", "SOURCE_MODTIME",
		"TARGET_SIZE", "TARGET_MODTIME",
		"SIZE_DIFF", "MODTIME_DIFF",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, d := range diffs {
		row := []string{
			string(d.Type), d.Path,
			entrySize(d.Source), entryModTime(d.Source),
			entrySize(d.Target), entryModTime(d.Target),
			strconv.FormatBool(d.SizeDiff), strconv.FormatBool(d.ModTimeDiff),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func entrySize(e *types.Entry) string {
	if e == nil {
		return ""
	}
	return strconv.FormatInt(e.Size, 10)
}

func entryModTime(e *types.Entry) string {
	if e == nil {
		return ""
	}
	return e.ModTimeRaw
}
