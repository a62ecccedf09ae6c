package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `adb:
  path: "/opt/platform-tools/adb"
  serial: "emulator-5554"
output:
  logs: "/data/logs"
  screens: "/data/screens"
upload:
  url: "s3://qa-artifacts/captures"
defaults:
  timeout: 60
  verbose: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Adb.Path != "/opt/platform-tools/adb" {
		t.Errorf("Adb.Path = %q", cfg.Adb.Path)
	}
	if cfg.Adb.Serial != "emulator-5554" {
		t.Errorf("Adb.Serial = %q", cfg.Adb.Serial)
	}
	if cfg.Output.Logs != "/data/logs" {
		t.Errorf("Output.Logs = %q", cfg.Output.Logs)
	}
	if cfg.Output.Screens != "/data/screens" {
		t.Errorf("Output.Screens = %q", cfg.Output.Screens)
	}
	if cfg.Upload.URL != "s3://qa-artifacts/captures" {
		t.Errorf("Upload.URL = %q", cfg.Upload.URL)
	}
	if cfg.Defaults.Timeout != 60 {
		t.Errorf("Defaults.Timeout = %d, want 60", cfg.Defaults.Timeout)
	}
	if !cfg.Defaults.Verbose {
		t.Error("Defaults.Verbose should be true")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	_, err := LoadFrom("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `adb:
  serial: "from-config"
defaults:
  timeout: 30
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ADBHELPER_SERIAL", "from-env")
	t.Setenv("ADBHELPER_TIMEOUT", "45")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Adb.Serial != "from-env" {
		t.Errorf("Adb.Serial = %q, want %q (env override)", cfg.Adb.Serial, "from-env")
	}
	if cfg.Defaults.Timeout != 45 {
		t.Errorf("Defaults.Timeout = %d, want 45 (env override)", cfg.Defaults.Timeout)
	}
}

func TestEnvTimeoutIgnoresGarbage(t *testing.T) {
	t.Setenv("ADBHELPER_TIMEOUT", "soon")
	cfg := &Config{}
	applyEnv(cfg)
	if cfg.Defaults.Timeout != 0 {
		t.Errorf("Defaults.Timeout = %d, want 0 for non-numeric env", cfg.Defaults.Timeout)
	}

	t.Setenv("ADBHELPER_TIMEOUT", "-5")
	cfg = &Config{}
	applyEnv(cfg)
	if cfg.Defaults.Timeout != 0 {
		t.Errorf("Defaults.Timeout = %d, want 0 for negative env", cfg.Defaults.Timeout)
	}
}

func TestEnvVerbose(t *testing.T) {
	t.Setenv("ADBHELPER_VERBOSE", "true")
	cfg := &Config{}
	applyEnv(cfg)
	if !cfg.Defaults.Verbose {
		t.Error("ADBHELPER_VERBOSE=true should set Verbose")
	}

	t.Setenv("ADBHELPER_VERBOSE", "1")
	cfg = &Config{}
	applyEnv(cfg)
	if !cfg.Defaults.Verbose {
		t.Error("ADBHELPER_VERBOSE=1 should set Verbose")
	}
}
