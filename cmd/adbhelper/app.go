package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"adbhelper/internal/adb"
	"adbhelper/internal/android"
	"adbhelper/internal/cli"
)

func newAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Application lifecycle operations",
	}

	cmd.AddCommand(newAppStartCmd())
	cmd.AddCommand(newAppStopCmd())
	cmd.AddCommand(newAppClearCmd())
	cmd.AddCommand(newAppGrantPermsCmd())
	cmd.AddCommand(newAppInfoCmd())
	return cmd
}

// appDevice builds a Runner bound to the selected device for app subcommands.
func appDevice(ctx context.Context) (*adb.Runner, error) {
	r, err := newRunner()
	if err != nil {
		return nil, err
	}
	return selectDevice(ctx, r)
}

func newAppStartCmd() *cobra.Command {
	var (
		pkg      string
		activity string
		action   string
		data     string
		extras   []string
	)

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start an activity or intent",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppStart(pkg, activity, action, data, extras)
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "package name")
	cmd.Flags().StringVar(&activity, "activity", "", "activity name (.MainActivity or pkg/.Act)")
	cmd.Flags().StringVar(&action, "action", "", "intent action, e.g. android.intent.action.VIEW")
	cmd.Flags().StringVar(&data, "data", "", "intent data URI")
	cmd.Flags().StringArrayVar(&extras, "extra", nil, "key=value string extra (--es), repeatable")
	return cmd
}

func runAppStart(pkg, activity, action, data string, extras []string) error {
	if pkg == "" && activity == "" && action == "" {
		return cli.NewUsageError("need --package with --activity, or --action")
	}

	ctx, cancel := commandContext()
	defer cancel()

	r, err := appDevice(ctx)
	if err != nil {
		return err
	}

	am := []string{"shell", "am", "start", "-W"}
	if action != "" {
		am = append(am, "-a", action)
	}
	if data != "" {
		am = append(am, "-d", data)
	}
	for _, ex := range extras {
		k, v, ok := strings.Cut(ex, "=")
		if !ok {
			return cli.NewUsageError(fmt.Sprintf("--extra wants key=value, got %q", ex))
		}
		am = append(am, "--es", k, v)
	}
	if pkg != "" {
		am = append(am, "-n", android.ResolveComponent(pkg, activity))
	}

	res, err := r.RunChecked(ctx, am...)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func newAppStopCmd() *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Force-stop an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppShellAction(pkg, func(p string) []string {
				return []string{"shell", "am", "force-stop", p}
			})
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "package name")
	return cmd
}

func newAppClearCmd() *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear application data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppShellAction(pkg, func(p string) []string {
				return []string{"shell", "pm", "clear", p}
			})
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "package name")
	return cmd
}

// runAppShellAction runs one package-scoped shell action, a shared shape for
// stop and clear.
func runAppShellAction(pkg string, build func(string) []string) error {
	if pkg == "" {
		return cli.NewUsageError("--package is required")
	}

	ctx, cancel := commandContext()
	defer cancel()

	r, err := appDevice(ctx)
	if err != nil {
		return err
	}

	res, err := r.RunChecked(ctx, build(pkg)...)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func newAppGrantPermsCmd() *cobra.Command {
	var (
		pkg   string
		perms []string
	)

	cmd := &cobra.Command{
		Use:   "grant-perms",
		Short: "Grant runtime permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppGrantPerms(pkg, perms)
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "package name")
	cmd.Flags().StringArrayVar(&perms, "perms", nil, "permission to grant, repeatable")
	return cmd
}

func runAppGrantPerms(pkg string, perms []string) error {
	if pkg == "" || len(perms) == 0 {
		return cli.NewUsageError("--package and --perms are required")
	}

	ctx, cancel := commandContext()
	defer cancel()

	r, err := appDevice(ctx)
	if err != nil {
		return err
	}

	var failed error
	for _, p := range perms {
		res, err := r.Run(ctx, "shell", "pm", "grant", pkg, p)
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			detail := strings.TrimSpace(res.Stderr)
			if detail == "" {
				detail = strings.TrimSpace(res.Stdout)
			}
			fmt.Printf("%s: FAIL - %s\n", p, detail)
			failed = cli.NewCommandFailedError(fmt.Sprintf("grant %s failed", p))
			continue
		}
		fmt.Printf("%s: OK\n", p)
	}
	return failed
}

func newAppInfoCmd() *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show package details",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAppInfo(pkg)
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "package name")
	return cmd
}

func runAppInfo(pkg string) error {
	if pkg == "" {
		return cli.NewUsageError("--package is required")
	}

	ctx, cancel := commandContext()
	defer cancel()

	r, err := appDevice(ctx)
	if err != nil {
		return err
	}

	res, err := r.RunChecked(ctx, "shell", "dumpsys", "package", pkg)
	if err != nil {
		return err
	}

	// apk path comes from pm, best-effort
	var pmPath string
	if pathRes, err := r.Run(ctx, "shell", "pm", "path", pkg); err == nil && pathRes.ExitCode == 0 {
		pmPath = pathRes.Stdout
	}

	info := android.ParseAppInfo(pkg, res.Stdout, pmPath)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(info)
}
