package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/inforexx/rbackup/pkg/types"
)

// Rclone holds the location of the external rclone binary and its config file.
type Rclone struct {
	Binary     string `yaml:"binary,omitempty"`      // defaults to "rclone" on PATH
	ConfigFile string `yaml:"config_file,omitempty"` // defaults to rclone's own default location
}

// Config represents the main configuration file (~/.rbk.yaml)
type Config struct {
	Rclone    Rclone                 `yaml:"rclone,omitempty"`
	LogFolder string                 `yaml:"log_folder,omitempty"` // defaults to "log"
	LogLevel  string                 `yaml:"log_level,omitempty"`  // rclone log level: DEBUG, INFO, NOTICE, ERROR
	Pairs     map[string]*types.Pair `yaml:"pairs,omitempty"`
	Tuning    types.Tuning           `yaml:"tuning,omitempty"`
}

// pathOverride is set from the --config flag; empty means the default path.
var pathOverride string

// SetPath overrides the config file location for this process.
func SetPath(path string) {
	pathOverride = path
}

// GetConfigPath returns the config file path (~/.rbk.yaml)
func GetConfigPath() string {
	if pathOverride != "" {
		return pathOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".rbk.yaml"
	}
	return filepath.Join(home, ".rbk.yaml")
}

// Load loads the configuration from ~/.rbk.yaml
func Load() (*Config, error) {
	configPath := GetConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return &Config{
				Pairs: make(map[string]*types.Pair),
			}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Pairs == nil {
		cfg.Pairs = make(map[string]*types.Pair)
	}

	return &cfg, nil
}

// Save saves the configuration to ~/.rbk.yaml
func Save(cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := GetConfigPath()
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Binary returns the rclone binary to execute.
func (c *Config) Binary() string {
	if c.Rclone.Binary != "" {
		return c.Rclone.Binary
	}
	return "rclone"
}

// RcloneConfigFile returns the rclone.conf path: the configured one, then
// the RCLONE_CONFIG environment variable, then rclone's platform default.
// Returns "" when nothing is found, letting rclone pick for itself.
func (c *Config) RcloneConfigFile() string {
	if c.Rclone.ConfigFile != "" {
		return c.Rclone.ConfigFile
	}
	if env := os.Getenv("RCLONE_CONFIG"); env != "" {
		return env
	}
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return filepath.Join(appdata, "rclone", "rclone.conf")
		}
		return ""
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "rclone", "rclone.conf")
}

// LogFolderOrDefault returns the folder run logs and reports are written to.
func (c *Config) LogFolderOrDefault() string {
	if c.LogFolder != "" {
		return c.LogFolder
	}
	return "log"
}

// LogLevelOrDefault returns the rclone log level to pass through.
func (c *Config) LogLevelOrDefault() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	return "INFO"
}

// GetPair returns a configured pair by name.
func GetPair(name string) (*types.Pair, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	p, ok := cfg.Pairs[name]
	if !ok {
		return nil, fmt.Errorf("pair %q not found", name)
	}

	pair := *p
	pair.Name = name
	return &pair, nil
}

// AddPair adds or updates a pair.
func AddPair(name string, pair *types.Pair) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	cfg.Pairs[name] = pair
	return Save(cfg)
}

// RemovePair removes a pair.
func RemovePair(name string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	if _, ok := cfg.Pairs[name]; !ok {
		return fmt.Errorf("pair %q not found", name)
	}

	delete(cfg.Pairs, name)
	return Save(cfg)
}

// ListPairs returns all configured pairs sorted by name.
func ListPairs() ([]types.Pair, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	pairs := make([]types.Pair, 0, len(cfg.Pairs))
	for name, p := range cfg.Pairs {
		pair := *p
		pair.Name = name
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })

	return pairs, nil
}
