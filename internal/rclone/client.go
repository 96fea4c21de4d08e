package rclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client runs the external rclone binary. It owns no sync logic of its own:
// all comparison, transfer and conflict handling stays inside rclone.
type Client struct {
	binary     string
	configFile string
	logFile    string
	logLevel   string
}

// Option allows customizing the rclone Client
type Option func(*Client)

// WithBinary sets the rclone binary to execute.
func WithBinary(binary string) Option {
	return func(c *Client) {
		c.binary = binary
	}
}

// WithConfigFile sets the rclone.conf file passed to every invocation.
func WithConfigFile(path string) Option {
	return func(c *Client) {
		c.configFile = path
	}
}

// WithLogFile sets the --log-file value for commands that log.
func WithLogFile(path string) Option {
	return func(c *Client) {
		c.logFile = path
	}
}

// WithLogLevel sets the --log-level value for commands that log.
func WithLogLevel(level string) Option {
	return func(c *Client) {
		c.logLevel = level
	}
}

// NewClient creates a new rclone Client with the given options
func NewClient(opts ...Option) *Client {
	c := &Client{
		binary:   "rclone",
		logLevel: "INFO",
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Binary returns the binary the client executes.
func (c *Client) Binary() string {
	return c.binary
}

// command builds an exec.Cmd for the given rclone arguments. The config file
// is passed through the environment rather than a flag so argument lists stay
// exactly as constructed by the callers.
func (c *Client) command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	if c.configFile != "" {
		cmd.Env = append(os.Environ(), "RCLONE_CONFIG="+c.configFile)
	}
	return cmd
}

// output runs an rclone command and returns its stdout, with stderr folded
// into the returned error on failure.
func (c *Client) output(ctx context.Context, args ...string) ([]byte, error) {
	cmd := c.command(ctx, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("rclone %s: %w: %s", args[0], err, msg)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("rclone not found at %q, may not be installed: %w", c.binary, err)
		}
		return nil, fmt.Errorf("rclone %s: %w", args[0], err)
	}
	return out, nil
}

// ExitError reports a non-zero rclone exit, preserving the code so the
// wrapper process can exit with it.
type ExitError struct {
	Code int
	Args []string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("rclone %s exited with code %d", strings.Join(e.Args, " "), e.Code)
}

// ExitCode extracts the rclone exit code from an error chain, or -1.
func ExitCode(err error) int {
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return -1
}
