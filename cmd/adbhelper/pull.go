package main

import (
	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
)

func newPullCmd() *cobra.Command {
	var (
		remote string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Copy a file or directory from the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(remote, out)
		},
	}

	cmd.Flags().StringVar(&remote, "remote", "", "path on the device")
	cmd.Flags().StringVar(&out, "out", "", "local destination (default: current directory)")
	return cmd
}

func runPull(remote, out string) error {
	if remote == "" {
		return cli.NewUsageError("--remote is required")
	}
	if out == "" {
		out = "."
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

	res, err := r.RunChecked(ctx, "pull", remote, out)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}
