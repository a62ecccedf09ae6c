package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"adbhelper/internal/adb"
	"adbhelper/internal/cli"
)

func newInstallCmd() *cobra.Command {
	var (
		replace   bool
		downgrade bool
		grantAll  bool
	)

	cmd := &cobra.Command{
		Use:   "install <apk>",
		Short: "Install an APK",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(args[0], replace, downgrade, grantAll)
		},
	}

	cmd.Flags().BoolVarP(&replace, "replace", "r", false, "reinstall, keeping data (adb install -r)")
	cmd.Flags().BoolVarP(&downgrade, "downgrade", "d", false, "allow version downgrade (adb install -d)")
	cmd.Flags().BoolVarP(&grantAll, "grant-all", "g", false, "grant all runtime permissions (adb install -g)")
	return cmd
}

func runInstall(apk string, replace, downgrade, grantAll bool) error {
	if _, err := os.Stat(apk); err != nil {
		return cli.NewUsageError(fmt.Sprintf("APK not found: %s", apk))
	}

	r, err := newRunner()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	r, err = selectDevice(ctx, r)
	if err != nil {
		return err
	}

	installArgs := []string{"install"}
	if replace {
		installArgs = append(installArgs, "-r")
	}
	if downgrade {
		installArgs = append(installArgs, "-d")
	}
	if grantAll {
		installArgs = append(installArgs, "-g")
	}
	installArgs = append(installArgs, apk)

	res, err := r.RunChecked(ctx, installArgs...)
	if err != nil {
		return err
	}
	fmt.Println("Install complete.")
	if out := strings.TrimSpace(res.Stdout); out != "" {
		fmt.Println(out)
	}
	return nil
}

func printResult(res *adb.Result) {
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		out = strings.TrimSpace(res.Stderr)
	}
	if out != "" {
		fmt.Println(out)
	}
}
