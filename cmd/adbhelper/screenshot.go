package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
)

func newScreenshotCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Capture the device screen to a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreenshot(out)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output .png path (default under the screenshots directory)")
	return cmd
}

func runScreenshot(out string) error {
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

	if out == "" {
		out = filepath.Join(screensDir(), captureName(r.Serial(), ".png"))
	}

	res, err := r.Run(ctx, "exec-out", "screencap", "-p")
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Printf("[dry-run] screenshot would be saved to %s\n", out)
		return nil
	}
	if res.ExitCode != 0 {
		return cli.NewCommandFailedError(fmt.Sprintf("screencap exited %d: %s",
			res.ExitCode, strings.TrimSpace(res.Stderr)))
	}
	if len(res.Stdout) == 0 {
		return cli.NewCommandFailedError("screencap produced an empty screenshot")
	}

	if err := ensureDir(filepath.Dir(out)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(res.Stdout), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	fmt.Printf("Screenshot saved: %s\n", out)
	return nil
}
