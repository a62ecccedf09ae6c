package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds persistent defaults loaded from config files.
type Config struct {
	Adb      AdbConfig      `yaml:"adb"`
	Output   OutputConfig   `yaml:"output"`
	Upload   UploadConfig   `yaml:"upload"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// AdbConfig holds adb binary and device defaults.
type AdbConfig struct {
	Path   string `yaml:"path"`
	Serial string `yaml:"serial"`
}

// OutputConfig holds default directories for captured artifacts.
type OutputConfig struct {
	Logs    string `yaml:"logs"`
	Screens string `yaml:"screens"`
}

// UploadConfig holds the default cloud upload target.
type UploadConfig struct {
	URL string `yaml:"url"`
}

// DefaultsConfig holds global defaults.
type DefaultsConfig struct {
	Timeout int  `yaml:"timeout"` // seconds
	Verbose bool `yaml:"verbose"`
}

// Load reads config from ~/.adbhelper/config.yaml then CWD .adbhelper.yaml.
// CWD config values override home config. Missing files are not errors.
// Environment variables (ADBHELPER_*) override config file values.
func Load() *Config {
	cfg := &Config{}

	// home config
	if home, err := os.UserHomeDir(); err == nil {
		_ = loadFile(filepath.Join(home, ".adbhelper", "config.yaml"), cfg)
	}

	// CWD config overrides
	_ = loadFile(".adbhelper.yaml", cfg)

	// env overrides
	applyEnv(cfg)

	return cfg
}

// LoadFrom reads config from a specific path. Used for testing.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if err := loadFile(path, cfg); err != nil {
		return nil, err
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ADBHELPER_ADB_PATH"); v != "" {
		cfg.Adb.Path = v
	}
	if v := os.Getenv("ADBHELPER_SERIAL"); v != "" {
		cfg.Adb.Serial = v
	}
	if v := os.Getenv("ADBHELPER_OUTPUT_LOGS"); v != "" {
		cfg.Output.Logs = v
	}
	if v := os.Getenv("ADBHELPER_OUTPUT_SCREENS"); v != "" {
		cfg.Output.Screens = v
	}
	if v := os.Getenv("ADBHELPER_UPLOAD_URL"); v != "" {
		cfg.Upload.URL = v
	}
	if v := os.Getenv("ADBHELPER_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Defaults.Timeout = n
		}
	}
	if v := os.Getenv("ADBHELPER_VERBOSE"); v != "" {
		cfg.Defaults.Verbose = strings.EqualFold(v, "true") || v == "1"
	}
}
