package rclone

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/inforexx/rbackup/pkg/types"
)

// BisyncArgs builds the argument list for a bisync invocation: the fixed
// prefix (subcommand, source, target, logging flags) followed by any caller
// arguments verbatim, in that order.
func (c *Client) BisyncArgs(src, dst string, extra ...string) []string {
	args := []string{
		"bisync", src, dst,
		"--log-file=" + c.logFile,
		"--log-level", c.logLevel,
	}
	return append(args, extra...)
}

// Bisync runs "rclone bisync" with stdio passed through. A non-zero exit is
// returned as an *ExitError carrying rclone's exit code.
func (c *Client) Bisync(ctx context.Context, src, dst string, extra ...string) error {
	args := c.BisyncArgs(src, dst, extra...)

	cmd := c.command(ctx, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return &ExitError{Code: ee.ExitCode(), Args: args}
	}
	return fmt.Errorf("rclone bisync: %w", err)
}

// CopyFiles copies the listed paths from src to dst via "rclone copy
// --files-from", applying the tuning flags. paths are relative to src.
func (c *Client) CopyFiles(ctx context.Context, src, dst string, paths []string, tuning types.Tuning, extra ...string) error {
	if len(paths) == 0 {
		return nil
	}

	batch, cleanup, err := writeBatchFile(paths)
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{"copy", src, dst, "--files-from", batch}
	args = append(args, tuning.Args()...)
	args = append(args, extra...)

	_, err = c.output(ctx, args...)
	return err
}

// DeleteFiles deletes the listed paths under dst via "rclone delete
// --files-from". With rmdirs, directories left empty are removed too.
func (c *Client) DeleteFiles(ctx context.Context, dst string, paths []string, rmdirs bool) error {
	if len(paths) == 0 {
		return nil
	}

	batch, cleanup, err := writeBatchFile(paths)
	if err != nil {
		return err
	}
	defer cleanup()

	args := []string{"delete", dst, "--files-from", batch}
	if rmdirs {
		args = append(args, "--rmdirs")
	}

	_, err = c.output(ctx, args...)
	return err
}

// Purge removes a directory and all of its contents.
func (c *Client) Purge(ctx context.Context, path string) error {
	_, err := c.output(ctx, "purge", path)
	return err
}

// Mkdir creates a directory on the remote.
func (c *Client) Mkdir(ctx context.Context, path string) error {
	_, err := c.output(ctx, "mkdir", path)
	return err
}

// Version returns the first line of "rclone version".
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.output(ctx, "version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}

type remoteSection struct {
	Type string `json:"type"`
	// Other fields of the remote config are not needed here.
}

// DumpRemotes returns the configured rclone remotes as a name -> type map,
// read from "rclone config dump".
func (c *Client) DumpRemotes(ctx context.Context) (map[string]string, error) {
	out, err := c.output(ctx, "config", "dump")
	if err != nil {
		return nil, err
	}

	var sections map[string]remoteSection
	if err := json.Unmarshal(out, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse rclone config dump: %w", err)
	}

	remotes := make(map[string]string, len(sections))
	for name, s := range sections {
		remotes[name] = s.Type
	}
	return remotes, nil
}

// writeBatchFile writes one path per line to a temp file for --files-from.
func writeBatchFile(paths []string) (string, func(), error) {
	f, err := os.CreateTemp("", "rbk-files-*.txt")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create batch file: %w", err)
	}

	for _, p := range paths {
		if _, err := fmt.Fprintln(f, p); err != nil {
			f.Close()
			os.Remove(f.Name())
			return "", nil, fmt.Errorf("failed to write batch file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("failed to write batch file: %w", err)
	}

	return f.Name(), func() { os.Remove(f.Name()) }, nil
}
