package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
)

func newShellCmd() *cobra.Command {
	var root bool

	cmd := &cobra.Command{
		Use:   "shell [flags] -- <command>",
		Short: "Run a command in the device shell",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(root, args)
		},
	}

	cmd.Flags().BoolVar(&root, "root", false, "run through su -c when available")
	return cmd
}

func runShell(root bool, command []string) error {
	if len(command) == 0 {
		return cli.NewUsageError("shell needs a command (use -- to end flag parsing)")
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

	shellArgs := []string{"shell"}
	if root {
		// su -c takes the command as one argument
		shellArgs = append(shellArgs, "su", "-c", strings.Join(command, " "))
	} else {
		shellArgs = append(shellArgs, command...)
	}

	res, err := r.Run(ctx, shellArgs...)
	if err != nil {
		return err
	}
	if res.Stdout != "" {
		fmt.Print(res.Stdout)
	}
	if res.ExitCode != 0 {
		if res.Stderr != "" {
			fmt.Fprint(os.Stderr, res.Stderr)
		}
		return cli.NewCommandFailedError(fmt.Sprintf("shell command exited %d", res.ExitCode))
	}
	return nil
}
