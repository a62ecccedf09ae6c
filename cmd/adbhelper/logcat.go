package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"adbhelper/internal/android"
	"adbhelper/internal/cli"
)

func newLogcatCmd() *cobra.Command {
	var (
		out      string
		since    string
		filters  []string
		clear    bool
		duration int
		compress bool
	)

	cmd := &cobra.Command{
		Use:   "logcat",
		Short: "Capture device logs to a file",
		Long:  "Logcat streams the device log buffer to a local file until interrupted or the given duration elapses. Filters use the logcat tag:level form.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogcat(out, since, filters, clear, duration, compress)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "output file (default under the logs directory)")
	cmd.Flags().StringVar(&since, "since", "", `capture start: "5m", "2h", or ISO "2025-09-04T12:00:00"`)
	cmd.Flags().StringArrayVar(&filters, "filter", nil, "tag:level filter, repeatable")
	cmd.Flags().BoolVar(&clear, "clear", false, "clear the log buffer before capturing")
	cmd.Flags().IntVar(&duration, "duration", 0, "seconds to capture (default: until interrupted)")
	cmd.Flags().BoolVar(&compress, "compress", false, "zstd-compress the capture file")
	return cmd
}

func runLogcat(out, since string, filters []string, clear bool, duration int, compress bool) error {
	sinceTS, err := android.ParseSince(since, time.Now())
	if err != nil {
		return cli.NewUsageError(err.Error())
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

	if clear {
		if _, err := r.Run(ctx, "logcat", "-c"); err != nil {
			return err
		}
	}

	if out == "" {
		ext := ".log"
		if compress {
			ext = ".log.zst"
		}
		out = filepath.Join(logsDir(), captureName(r.Serial(), ext))
	}

	logcatArgs := []string{"logcat"}
	if sinceTS != "" {
		logcatArgs = append(logcatArgs, "-T", sinceTS)
	}
	logcatArgs = append(logcatArgs, filters...)

	maxRun := time.Duration(0)
	if duration > 0 {
		maxRun = time.Duration(duration) * time.Second
	}

	if dryRun {
		if err := r.Stream(ctx, io.Discard, maxRun, logcatArgs...); err != nil {
			return err
		}
		fmt.Printf("[dry-run] logs would be written to %s\n", out)
		return nil
	}

	if err := ensureDir(filepath.Dir(out)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}

	var sink io.Writer = f
	var enc *zstd.Encoder
	if compress {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			_ = f.Close()
			return err
		}
		sink = enc
	}

	streamErr := r.Stream(ctx, sink, maxRun, logcatArgs...)

	if enc != nil {
		if err := enc.Close(); err != nil && streamErr == nil {
			streamErr = err
		}
	}
	if err := f.Close(); err != nil && streamErr == nil {
		streamErr = err
	}
	if streamErr != nil {
		return streamErr
	}

	fmt.Printf("Logs saved: %s\n", out)
	return nil
}
