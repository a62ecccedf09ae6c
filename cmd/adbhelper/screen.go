package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"adbhelper/internal/adb"
	"adbhelper/internal/cli"
)

func newScreenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen size, density, and orientation",
	}

	cmd.AddCommand(newScreenSizeCmd())
	cmd.AddCommand(newScreenDensityCmd())
	cmd.AddCommand(newScreenRotateCmd())
	return cmd
}

func newScreenSizeCmd() *cobra.Command {
	var set string

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Get or set the screen size",
		RunE: func(cmd *cobra.Command, args []string) error {
			wmArgs := []string{"shell", "wm", "size"}
			if set != "" {
				wmArgs = append(wmArgs, set)
			}
			return runScreenCommand(wmArgs)
		},
	}

	cmd.Flags().StringVar(&set, "set", "", "set WxH, e.g. 1080x1920")
	return cmd
}

func newScreenDensityCmd() *cobra.Command {
	var set int

	cmd := &cobra.Command{
		Use:   "density",
		Short: "Get or set the display density",
		RunE: func(cmd *cobra.Command, args []string) error {
			wmArgs := []string{"shell", "wm", "density"}
			if set > 0 {
				wmArgs = append(wmArgs, strconv.Itoa(set))
			}
			return runScreenCommand(wmArgs)
		},
	}

	cmd.Flags().IntVar(&set, "set", 0, "set density in dpi")
	return cmd
}

func runScreenCommand(wmArgs []string) error {
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

	res, err := r.RunChecked(ctx, wmArgs...)
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func newScreenRotateCmd() *cobra.Command {
	var (
		landscape bool
		portrait  bool
		unlock    bool
	)

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Force screen orientation or restore auto-rotate",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScreenRotate(landscape, portrait, unlock)
		},
	}

	cmd.Flags().BoolVar(&landscape, "landscape", false, "force landscape")
	cmd.Flags().BoolVar(&portrait, "portrait", false, "force portrait")
	cmd.Flags().BoolVar(&unlock, "unlock", false, "restore auto-rotate")
	cmd.MarkFlagsMutuallyExclusive("landscape", "portrait", "unlock")
	return cmd
}

func runScreenRotate(landscape, portrait, unlock bool) error {
	if !landscape && !portrait && !unlock {
		return cli.NewUsageError("one of --landscape, --portrait, or --unlock is required")
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

	if unlock {
		return putSystemSetting(ctx, r, "accelerometer_rotation", "1")
	}

	rotation := "0" // portrait
	if landscape {
		rotation = "1"
	}
	if err := putSystemSetting(ctx, r, "accelerometer_rotation", "0"); err != nil {
		return err
	}
	return putSystemSetting(ctx, r, "user_rotation", rotation)
}

func putSystemSetting(ctx context.Context, r *adb.Runner, key, value string) error {
	_, err := r.RunChecked(ctx, "shell", "settings", "put", "system", key, value)
	return err
}
