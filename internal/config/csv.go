package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/inforexx/rbackup/pkg/types"
)

// ReadPairsCSV reads source/target pairs from a CSV file.
//
// The expected format is a header row followed by "source,target" rows.
// Rows with fewer than two fields or blank fields are skipped. Backslashes
// in sources are normalized to forward slashes and surrounding quotes are
// stripped from targets, so Windows-style paths pasted into the file work
// unchanged.
func ReadPairsCSV(path string) ([]types.Pair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pair file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // rows are validated below

	// Skip header row (source, target)
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read pair file: %w", err)
	}

	var pairs []types.Pair
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read pair file: %w", err)
		}
		if len(row) < 2 {
			continue
		}
		src := strings.TrimSpace(row[0])
		dst := strings.TrimSpace(row[1])
		if src == "" || dst == "" {
			continue
		}
		src = strings.ReplaceAll(src, `\`, "/")
		dst = strings.Trim(dst, `"`)
		pairs = append(pairs, types.Pair{Source: src, Target: dst})
	}

	return pairs, nil
}
