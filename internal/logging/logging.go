package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Timestamp returns the run timestamp used in log and report file names.
func Timestamp() string {
	return time.Now().Format("2006-01-02-150405")
}

// ParseLevel maps an rclone log level name to a logrus level.
func ParseLevel(level string) logrus.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return logrus.DebugLevel
	case "INFO":
		return logrus.InfoLevel
	case "NOTICE":
		return logrus.WarnLevel
	case "ERROR":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Open creates the run log for a command under folder, creating the folder
// if needed. The returned close func flushes and closes the underlying file.
// Console output is left to the command itself; the run log carries the
// detailed operation records.
func Open(folder, level, command string) (*logrus.Logger, func(), error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log folder: %w", err)
	}

	path := filepath.Join(folder, fmt.Sprintf("%s_rbk_%s.log.txt", Timestamp(), command))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open run log: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetLevel(ParseLevel(level))
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})

	return log, func() { _ = f.Close() }, nil
}
