package main

import (
	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
)

func newUninstallCmd() *cobra.Command {
	var (
		pkg      string
		keepData bool
	)

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall a package",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUninstall(pkg, keepData)
		},
	}

	cmd.Flags().StringVar(&pkg, "package", "", "package name")
	cmd.Flags().BoolVarP(&keepData, "keep-data", "k", false, "keep app data and cache (adb uninstall -k)")
	return cmd
}

func runUninstall(pkg string, keepData bool) error {
	if pkg == "" {
		return cli.NewUsageError("--package is required")
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

	uninstallArgs := []string{"uninstall"}
	if keepData {
		uninstallArgs = append(uninstallArgs, "-k")
	}
	uninstallArgs = append(uninstallArgs, pkg)

	res, err := r.RunChecked(ctx, uninstallArgs...)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}
