package rclone

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/inforexx/rbackup/pkg/types"
)

// ListOptions control an lsjson invocation.
type ListOptions struct {
	Recursive bool
	FilesOnly bool
	DirsOnly  bool
	FastList  bool
	Hash      bool
}

// lsjsonArgs renders the options as the lsjson command line for path.
func lsjsonArgs(path string, opts ListOptions) []string {
	args := []string{"lsjson", path}
	if opts.Recursive {
		args = append(args, "--recursive")
	}
	if opts.FilesOnly {
		args = append(args, "--files-only")
	}
	if opts.DirsOnly {
		args = append(args, "--dirs-only")
	}
	if opts.FastList {
		args = append(args, "--fast-list")
	}
	if opts.Hash {
		args = append(args, "--hash")
	}
	return args
}

type lsjsonItem struct {
	Path    string
	Size    int64
	ModTime string
	IsDir   bool
	Hashes  map[string]string
}

// ListJSON lists path via "rclone lsjson" and returns the parsed entries.
func (c *Client) ListJSON(ctx context.Context, path string, opts ListOptions) ([]types.Entry, error) {
	out, err := c.output(ctx, lsjsonArgs(path, opts)...)
	if err != nil {
		return nil, err
	}
	return parseListing(out)
}

func parseListing(data []byte) ([]types.Entry, error) {
	var items []lsjsonItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse rclone listing: %w", err)
	}

	entries := make([]types.Entry, 0, len(items))
	for _, item := range items {
		e := types.Entry{
			Path:       item.Path,
			Size:       item.Size,
			ModTimeRaw: item.ModTime,
			IsDir:      item.IsDir,
			Hashes:     item.Hashes,
		}
		// rclone emits RFC3339 with varying sub-second precision; keep the
		// raw string for comparison fallback when parsing fails.
		if t, err := time.Parse(time.RFC3339Nano, item.ModTime); err == nil {
			e.ModTime = t
		}
		entries = append(entries, e)
	}
	return entries, nil
}
