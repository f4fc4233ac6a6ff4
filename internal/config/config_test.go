package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		viper.Reset()
		SetConfigPath("")

		err := Init()
		if err != nil {
			t.Errorf("Init() failed: %v", err)
		}

		config := Get()
		if config == nil {
			t.Fatal("Get() returned nil after Init()")
		}

		if config.Rate != 70 {
			t.Errorf("Expected default rate 70, got %d", config.Rate)
		}
		if config.Delay != 250 {
			t.Errorf("Expected default delay 250, got %d", config.Delay)
		}
		if config.Display != "" {
			t.Errorf("Expected empty default display, got %q", config.Display)
		}
	})

	t.Run("reads values from a config file", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "xrepeatd.toml")
		contents := `rate = 40
delay = 500
display = ":1"

[logging]
log_level = "debug"
`
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatal(err)
		}

		viper.Reset()
		SetConfigPath(path)
		defer SetConfigPath("")

		if err := Init(); err != nil {
			t.Fatalf("Init() failed: %v", err)
		}

		config := Get()
		if config.Rate != 40 {
			t.Errorf("Expected rate 40, got %d", config.Rate)
		}
		if config.Delay != 500 {
			t.Errorf("Expected delay 500, got %d", config.Delay)
		}
		if config.Display != ":1" {
			t.Errorf("Expected display :1, got %q", config.Display)
		}
		if config.Logging.LogLevel != "debug" {
			t.Errorf("Expected log level debug, got %q", config.Logging.LogLevel)
		}
	})

	t.Run("rejects invalid TOML", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "xrepeatd.toml")
		if err := os.WriteFile(path, []byte("[logging\nrate = 70"), 0644); err != nil {
			t.Fatal(err)
		}

		viper.Reset()
		SetConfigPath(path)
		defer SetConfigPath("")

		if err := Init(); err == nil {
			t.Error("Init() should fail on invalid TOML")
		}
	})
}

func TestGetWithoutInit(t *testing.T) {
	Set(nil)

	config := Get()
	if config == nil {
		t.Fatal("Get() should fall back to defaults")
	}
	if config.Rate != 70 || config.Delay != 250 {
		t.Errorf("Expected default 70/250, got %d/%d", config.Rate, config.Delay)
	}
}
