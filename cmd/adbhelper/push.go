package main

import (
	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
)

func newPushCmd() *cobra.Command {
	var (
		src    string
		remote string
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Copy a file or directory to the device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(src, remote)
		},
	}

	cmd.Flags().StringVar(&src, "src", "", "local file or directory")
	cmd.Flags().StringVar(&remote, "remote", "", "destination path on the device")
	return cmd
}

func runPush(src, remote string) error {
	if src == "" || remote == "" {
		return cli.NewUsageError("--src and --remote are required")
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

	res, err := r.RunChecked(ctx, "push", src, remote)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}
