// Package config provides tool-level configuration for bakjob using Viper.
//
// This is the orchestrator's own configuration (which archiver binary to run,
// default compression, the name of the credential override variable). It is
// distinct from per-job configuration files, which are parsed by the jobfile
// package.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/bakjob/internal/paths"
	"github.com/thoreinstein/bakjob/pkg/fileutil"
)

// AppName is the application name used for config file naming.
const AppName = "bakjob"

// Default setting values.
const (
	// DefaultArchiver is the archiver binary looked up on PATH.
	DefaultArchiver = "7z"

	// DefaultKeyEnv is the environment variable consulted for a default
	// encryption credential when the job config sets none.
	DefaultKeyEnv = "BAKJOB_KEY"

	// DefaultCompression is the compression selector used when neither the
	// CLI nor the config file chooses one.
	DefaultCompression = "fast"
)

// Settings represents the tool-level configuration structure.
type Settings struct {
	// Archiver is the path or name of the 7-Zip binary.
	Archiver string `mapstructure:"archiver" yaml:"archiver"`

	// DefaultCompression selects the compression used when the CLI flag is absent.
	DefaultCompression string `mapstructure:"default_compression" yaml:"default_compression"`

	// KeyEnv names the environment variable supplying a default encryption key.
	KeyEnv string `mapstructure:"key_env" yaml:"key_env"`

	// WorkDir is passed to the archiver as its temporary working directory.
	// Empty means the archiver's default.
	WorkDir string `mapstructure:"work_dir" yaml:"work_dir"`
}

// Default returns settings with all defaults applied.
func Default() *Settings {
	return &Settings{
		Archiver:           DefaultArchiver,
		DefaultCompression: DefaultCompression,
		KeyEnv:             DefaultKeyEnv,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support (BAKJOB_ARCHIVER, BAKJOB_WORK_DIR, ...)
	viper.SetEnvPrefix("BAKJOB")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("archiver", DefaultArchiver)
	viper.SetDefault("default_compression", DefaultCompression)
	viper.SetDefault("key_env", DefaultKeyEnv)
	viper.SetDefault("work_dir", "")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded settings or default values if no file is found (when path is empty).
func Load(path string) (*Settings, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &s, nil
}

// WriteDefault writes the default settings as YAML to the standard config
// location and returns the path written. Existing files are not overwritten
// unless force is set.
func WriteDefault(force bool) (string, error) {
	dir := paths.ConfigDir()
	if err := paths.EnsureDir(dir, 0); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("config file already exists at %s", path)
		}
	}

	if err := fileutil.AtomicWriteYAML(path, Default()); err != nil {
		return "", fmt.Errorf("writing default config: %w", err)
	}
	return path, nil
}
