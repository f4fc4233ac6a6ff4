// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/xrepeatd/internal/x11"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Desired auto-repeat behavior of the core keyboard
	Rate  uint16 `mapstructure:"rate"`  // repeats per second, 1-1000
	Delay uint16 `mapstructure:"delay"` // milliseconds before repeating starts

	// Display selects the X server; empty means $DISPLAY
	Display string `mapstructure:"display"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Rate:    x11.DefaultRate,
		Delay:   x11.DefaultDelay,
		Display: "",
		Logging: LoggingConfig{
			LogLevel: "",
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("xrepeatd")
	viper.SetConfigType("toml")

	// If a specific path is set, use only that
	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		viper.AddConfigPath("/etc/xrepeatd")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "xrepeatd"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	// Set defaults - individual keys so flag and file values merge
	viper.SetDefault("rate", DefaultConfig.Rate)
	viper.SetDefault("delay", DefaultConfig.Delay)
	viper.SetDefault("display", DefaultConfig.Display)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}
