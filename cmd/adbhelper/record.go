package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

const (
	recordMinSeconds     = 1
	recordMaxSeconds     = 180
	recordDefaultSeconds = 30
	recordDefaultMbit    = 4.0
)

func newRecordCmd() *cobra.Command {
	var (
		duration int
		bitrate  float64
		out      string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the device screen to an MP4",
		Long:  "Record runs screenrecord on the device, pulls the resulting video, and removes the on-device temp file. Duration is clamped to 1-180 seconds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(duration, bitrate, out)
		},
	}

	cmd.Flags().IntVar(&duration, "duration", recordDefaultSeconds, "recording length in seconds (1-180)")
	cmd.Flags().Float64Var(&bitrate, "bitrate", recordDefaultMbit, "video bitrate in Mbit/s")
	cmd.Flags().StringVar(&out, "out", "", "output .mp4 path (default under the screenshots directory)")
	return cmd
}

func runRecord(duration int, bitrate float64, out string) error {
	if duration < recordMinSeconds {
		duration = recordMinSeconds
	}
	if duration > recordMaxSeconds {
		duration = recordMaxSeconds
	}
	if bitrate <= 0 {
		bitrate = recordDefaultMbit
	}
	bits := int(bitrate * 1_000_000)

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
		out = filepath.Join(screensDir(), captureName(r.Serial(), ".mp4"))
	}

	remoteTmp := fmt.Sprintf("/sdcard/adbhelper_record_%s.mp4", uuid.NewString())
	recordArgs := []string{"shell", "screenrecord",
		fmt.Sprintf("--time-limit=%d", duration),
		fmt.Sprintf("--bit-rate=%d", bits),
		remoteTmp}

	if dryRun {
		if _, err := r.Run(ctx, recordArgs...); err != nil {
			return err
		}
		if _, err := r.Run(ctx, "pull", remoteTmp, out); err != nil {
			return err
		}
		fmt.Printf("[dry-run] video would be saved to %s\n", out)
		return nil
	}

	if err := ensureDir(filepath.Dir(out)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Printf("Recording screen for %d s...\n", duration)
	rec := r.WithTimeout(time.Duration(duration+5) * time.Second)
	if _, err := rec.RunChecked(ctx, recordArgs...); err != nil {
		return err
	}

	if _, err := r.RunChecked(ctx, "pull", remoteTmp, out); err != nil {
		return err
	}

	// best-effort cleanup of the on-device temp file
	_, _ = r.Run(ctx, "shell", "rm", "-f", remoteTmp)

	fmt.Printf("Video saved: %s\n", out)
	return nil
}
