package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adbhelper/internal/applog"
	"adbhelper/internal/cli"
	"adbhelper/internal/config"
)

var version = "dev"

func main() {
	cmd, err := execute()
	if err != nil {
		cli.FormatError(os.Stderr, err, jsonErrors(cmd))
		os.Exit(cli.ExitCode(err))
	}
}

func execute() (*cobra.Command, error) {
	root := newRootCmd()
	defer closeLog()
	return root.ExecuteC()
}

// jsonErrors reports whether the command that failed asked for JSON output,
// so errors match the requested output format.
func jsonErrors(cmd *cobra.Command) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flags().Lookup("json")
	return f != nil && f.Value.String() == "true"
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "adbhelper",
		Short:   "Everyday adb chores for Android developers and QA",
		Long:    "adbhelper wraps the Android Debug Bridge with structured subcommands for device management, app lifecycle, capture, and offline log analysis.",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			applyConfigDefaults(cmd)
			if !cmd.Flags().Changed("verbose") && cfg.Defaults.Verbose {
				verbose = true
			}
			logCloser = applog.Setup(verbose, quiet)
		},
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return cli.NewUsageError(fmt.Sprintf("unknown command %q", args[0]))
			}
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&adbPath, "adb", "", "path to the adb binary or a platform-tools directory")
	root.PersistentFlags().StringVar(&serialFlag, "serial", "", "device serial (adb -s)")
	root.PersistentFlags().IntVar(&timeoutSec, "timeout", 0, "per-command timeout in seconds (default 30)")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print adb commands without executing them")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "debug logging")
	root.PersistentFlags().BoolVar(&quiet, "quiet", false, "warnings and errors only")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return cli.NewUsageError(err.Error())
	})

	root.AddCommand(newDevicesCmd())
	root.AddCommand(newInstallCmd())
	root.AddCommand(newUninstallCmd())
	root.AddCommand(newScreenshotCmd())
	root.AddCommand(newRecordCmd())
	root.AddCommand(newLogcatCmd())
	root.AddCommand(newAnalyzeLogsCmd())
	root.AddCommand(newAppCmd())
	root.AddCommand(newInputCmd())
	root.AddCommand(newShellCmd())
	root.AddCommand(newPullCmd())
	root.AddCommand(newPushCmd())
	root.AddCommand(newDeviceInfoCmd())
	root.AddCommand(newTcpipCmd())
	root.AddCommand(newScreenCmd())
	root.AddCommand(newUploadCmd())
	root.AddCommand(newCompletionCmd())

	return root
}
