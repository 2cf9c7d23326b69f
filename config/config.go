// Package config loads taskpilot configuration from built-in
// defaults, an optional YAML file at ~/.taskpilot/config.yaml and
// TASKPILOT_* environment variables, in that order of precedence
// (environment highest).
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"taskpilot/recommend"
)

// HomeEnvVar overrides the taskpilot home directory when set.
const HomeEnvVar = "TASKPILOT_HOME"

const (
	homeDirName    = ".taskpilot"
	configFileName = "config.yaml"
	dataFileName   = "tasks.json"

	// LogsDirName is the directory under the taskpilot home that
	// holds rotating log files.
	LogsDirName = "logs"
)

// Config is the full runtime configuration.
type Config struct {
	// DataFile is the path of the persisted task collection.
	DataFile  string          `mapstructure:"data_file"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Log       LogConfig       `mapstructure:"log"`
}

// RecommendConfig tunes the recommendation engine.
type RecommendConfig struct {
	// Limit caps the number of advisory items returned.
	Limit int `mapstructure:"limit"`
}

// LogConfig sets default logger verbosity; CLI flags override it.
type LogConfig struct {
	Verbose bool `mapstructure:"verbose"`
	Quiet   bool `mapstructure:"quiet"`
}

// Home returns the taskpilot home directory: $TASKPILOT_HOME when
// set, ~/.taskpilot otherwise.
func Home() (string, error) {
	if home := os.Getenv(HomeEnvVar); home != "" {
		return home, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("determine home directory: %w", err)
	}
	return filepath.Join(home, homeDirName), nil
}

// Load reads configuration from all available sources.
func Load() (*Config, error) {
	v := newViperInstance()

	if path, ok := configFilePathIfExists(); ok {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	return unmarshalAndValidate(v)
}

// LoadFromPath reads configuration from a specific config file,
// bypassing the home-directory lookup. Used by tests.
func LoadFromPath(path string) (*Config, error) {
	v := newViperInstance()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	return unmarshalAndValidate(v)
}

// newViperInstance creates a viper instance with defaults and the
// TASKPILOT_ environment prefix wired up.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TASKPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values. Keys must match the
// mapstructure tag names exactly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data_file", defaultDataFile())
	v.SetDefault("recommend.limit", recommend.DefaultLimit)
	v.SetDefault("log.verbose", false)
	v.SetDefault("log.quiet", false)
}

// defaultDataFile returns ~/.taskpilot/tasks.json, falling back to a
// relative path when the home directory cannot be determined.
func defaultDataFile() string {
	home, err := Home()
	if err != nil {
		return dataFileName
	}
	return filepath.Join(home, dataFileName)
}

func configFilePathIfExists() (string, bool) {
	home, err := Home()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, configFileName)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}

func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DataFile) == "" {
		return stderrors.New("data_file must not be empty")
	}
	if cfg.Recommend.Limit < 1 {
		return fmt.Errorf("recommend.limit must be at least 1, got %d", cfg.Recommend.Limit)
	}
	return nil
}
