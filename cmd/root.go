package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/inforexx/rbackup/internal/config"
	"github.com/inforexx/rbackup/internal/logging"
	"github.com/inforexx/rbackup/internal/rclone"
	"github.com/inforexx/rbackup/pkg/types"
)

var (
	// Global flags
	cfgFile   string
	logFolder string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "rbk",
	Short: "rbackup - backup control CLI around rclone",
	Long: `rbackup (rbk) is a command-line tool for controlling rclone-based backups.

It wraps the external rclone binary: rbk builds the command lines, compares
folder structures, writes reports and logs, and leaves all transfer and
conflict handling to rclone itself.

Pair Commands:
  rbk pairs                    # Interactive pair selector
  rbk pairs add docs D:/docs remote:docs
  rbk pairs import folders.csv # Import source,target rows

Backup Commands:
  rbk sync docs                # Bidirectional sync (rclone bisync)
  rbk compare docs             # Compare structures, write CSV reports
  rbk backup docs              # Diff-driven one-way backup
  rbk purge docs               # Remove target folders gone from source
  rbk run --csv folders.csv    # Compare + backup every pair in a CSV

Monitoring:
  rbk jobs list                # Show running rclone processes
  rbk status                   # Show rclone binary, config and pairs`,
	SilenceUsage: true,
}

// Execute runs the root command. When the failure came from the external
// rclone process, its exit code becomes our exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if code := rclone.ExitCode(err); code > 0 {
			os.Exit(code)
		}
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.rbk.yaml)")
	rootCmd.PersistentFlags().StringVar(&logFolder, "log-folder", "", "Folder for run logs and reports")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "rclone log level (DEBUG, INFO, NOTICE, ERROR)")

	// Bind flags to viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_folder", rootCmd.PersistentFlags().Lookup("log-folder"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	// Read from environment variables (RBK_CONFIG, RBK_LOG_FOLDER, ...)
	viper.SetEnvPrefix("RBK")
	viper.AutomaticEnv()

	if cfgFile == "" {
		cfgFile = viper.GetString("config")
	}
	if cfgFile != "" {
		config.SetPath(cfgFile)
	}

	if logFolder == "" {
		logFolder = viper.GetString("log_folder")
	}
	if logLevel == "" {
		logLevel = viper.GetString("log_level")
	}
}

// effectiveLogFolder resolves flag > env > config file > default.
func effectiveLogFolder(cfg *config.Config) string {
	if logFolder != "" {
		return logFolder
	}
	return cfg.LogFolderOrDefault()
}

// effectiveLogLevel resolves flag > env > config file > default.
func effectiveLogLevel(cfg *config.Config) string {
	if logLevel != "" {
		return logLevel
	}
	return cfg.LogLevelOrDefault()
}

// newClient builds the rclone client from config.
func newClient(cfg *config.Config, opts ...rclone.Option) *rclone.Client {
	base := []rclone.Option{
		rclone.WithBinary(cfg.Binary()),
		rclone.WithConfigFile(cfg.RcloneConfigFile()),
		rclone.WithLogLevel(effectiveLogLevel(cfg)),
	}
	return rclone.NewClient(append(base, opts...)...)
}

// openRunLog opens the per-invocation log file for a command.
func openRunLog(cfg *config.Config, command string) (*logrus.Logger, func(), error) {
	return logging.Open(effectiveLogFolder(cfg), effectiveLogLevel(cfg), command)
}

// resolvePair turns command arguments into a source/target pair: one
// argument names a configured pair, two are literal source and target paths.
func resolvePair(args []string) (*types.Pair, error) {
	switch len(args) {
	case 1:
		return config.GetPair(args[0])
	case 2:
		return &types.Pair{Source: args[0], Target: args[1]}, nil
	default:
		return nil, fmt.Errorf("expected a pair name or SOURCE TARGET, got %d arguments", len(args))
	}
}
