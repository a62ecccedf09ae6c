package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"adbhelper/internal/adb"
	"adbhelper/internal/cli"
	"adbhelper/internal/config"
)

// Global flags shared by every subcommand.
var (
	adbPath    string
	serialFlag string
	timeoutSec int
	dryRun     bool
	verbose    bool
	quiet      bool

	cfg       *config.Config
	logCloser io.Closer
)

func closeLog() {
	if logCloser != nil {
		_ = logCloser.Close()
	}
}

// applyConfigDefaults sets flag values from config when the flag
// was not explicitly set on the command line. Flags > env > config > defaults.
// The config package already handles env > config, so we just need to
// check if the flag was changed and apply config if not.
func applyConfigDefaults(cmd *cobra.Command) {
	if cfg == nil {
		return
	}

	setDefault := func(name, value string) {
		if value != "" && !cmd.Flags().Changed(name) {
			if f := cmd.Flags().Lookup(name); f != nil {
				_ = f.Value.Set(value)
			}
		}
	}

	setDefault("adb", cfg.Adb.Path)
	setDefault("serial", cfg.Adb.Serial)
	if cfg.Defaults.Timeout > 0 {
		setDefault("timeout", strconv.Itoa(cfg.Defaults.Timeout))
	}
}

// newRunner builds a Runner from the resolved global flags.
func newRunner() (*adb.Runner, error) {
	timeout := adb.DefaultTimeout
	if timeoutSec > 0 {
		timeout = time.Duration(timeoutSec) * time.Second
	}
	return adb.NewRunner(adb.Options{
		Path:    adbPath,
		Serial:  serialFlag,
		Timeout: timeout,
		DryRun:  dryRun,
	})
}

// selectDevice resolves the target device for commands that need exactly one.
// Dry-run skips the devices round-trip so the printed commands stand alone.
func selectDevice(ctx context.Context, r *adb.Runner) (*adb.Runner, error) {
	if dryRun {
		return r, nil
	}
	return adb.Select(ctx, r, r.Serial())
}

// commandContext is cancelled by SIGINT/SIGTERM; per-invocation timeouts are
// layered on top by the Runner.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func logsDir() string {
	if cfg != nil && cfg.Output.Logs != "" {
		return cfg.Output.Logs
	}
	return "logs"
}

func screensDir() string {
	if cfg != nil && cfg.Output.Screens != "" {
		return cfg.Output.Screens
	}
	return "screenshots"
}

// captureName builds the default artifact file name for a device capture.
func captureName(serial, ext string) string {
	return fmt.Sprintf("%s_%s%s", serial, time.Now().Format("20060102-150405"), ext)
}

func ensureDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// exactArgs is cobra.ExactArgs with the usage exit code attached.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return cli.NewUsageError(fmt.Sprintf("%s expects %d argument(s), got %d", cmd.Name(), n, len(args)))
		}
		return nil
	}
}
