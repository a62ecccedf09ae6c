package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adbhelper/internal/android"
	"adbhelper/internal/cli"
)

func newInputCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "input",
		Short: "Inject input events",
	}

	cmd.AddCommand(newInputTapCmd())
	cmd.AddCommand(newInputTextCmd())
	cmd.AddCommand(newInputKeyCmd())
	cmd.AddCommand(newInputSwipeCmd())
	return cmd
}

func newInputTapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tap <x> <y>",
		Short: "Tap at screen coordinates",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := intArgs(args)
			if err != nil {
				return err
			}
			return runInputEvent("tap", strconv.Itoa(coords[0]), strconv.Itoa(coords[1]))
		},
	}
}

func newInputTextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "text <text>",
		Short: "Type text on the device",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInputEvent("text", android.EscapeInputText(args[0]))
		},
	}
}

func newInputKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "key <keycode>",
		Short: "Press a key, e.g. KEYCODE_BACK or KEYCODE_ENTER",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInputEvent("keyevent", args[0])
		},
	}
}

func newInputSwipeCmd() *cobra.Command {
	var durationMs int

	cmd := &cobra.Command{
		Use:   "swipe <x1> <y1> <x2> <y2>",
		Short: "Swipe between two points",
		Args:  exactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			coords, err := intArgs(args)
			if err != nil {
				return err
			}
			swipeArgs := []string{"swipe"}
			for _, c := range coords {
				swipeArgs = append(swipeArgs, strconv.Itoa(c))
			}
			if durationMs > 0 {
				swipeArgs = append(swipeArgs, strconv.Itoa(durationMs))
			}
			return runInputEvent(swipeArgs...)
		},
	}

	cmd.Flags().IntVar(&durationMs, "duration", 0, "swipe duration in milliseconds")
	return cmd
}

func intArgs(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, cli.NewUsageError(fmt.Sprintf("coordinate %q is not an integer", a))
		}
		out[i] = n
	}
	return out, nil
}

func runInputEvent(event ...string) error {
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

	shellArgs := append([]string{"shell", "input"}, event...)
	_, err = r.RunChecked(ctx, shellArgs...)
	return err
}
