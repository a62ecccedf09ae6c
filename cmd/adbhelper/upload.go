package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
	"adbhelper/internal/cloud"
)

func newUploadCmd() *cobra.Command {
	var (
		to          string
		share       bool
		expiry      time.Duration
		concurrency int
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file|dir>",
		Short: "Upload captured artifacts to cloud storage",
		Long:  "Upload a capture file, or every file in a directory, to S3 or GCS. With --share, prints a time-limited download URL for an uploaded file.",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to == "" && cfg != nil {
				to = cfg.Upload.URL
			}
			return runUpload(args[0], to, share, expiry, concurrency, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "destination URL (s3://bucket/prefix or gs://bucket/prefix)")
	cmd.Flags().BoolVar(&share, "share", false, "print a presigned download URL after uploading a file")
	cmd.Flags().DurationVar(&expiry, "expiry", 15*time.Minute, "share URL lifetime")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "parallel uploads for directories")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output summary as JSON")
	return cmd
}

func runUpload(src, toURL string, share bool, expiry time.Duration, concurrency int, jsonOutput bool) error {
	if toURL == "" {
		return cli.NewUsageError("--to is required (or set upload.url in the config)")
	}

	target, err := cloud.ParseURL(toURL)
	if err != nil {
		return cli.NewUsageError(fmt.Sprintf("invalid --to: %v", err))
	}

	info, err := os.Stat(src)
	if err != nil {
		return cli.NewUsageError(fmt.Sprintf("nothing to upload: %v", err))
	}

	ctx, cancel := commandContext()
	defer cancel()

	backend, err := cloud.NewBackend(ctx, target)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", target.Scheme, err)
	}

	if info.IsDir() {
		if share {
			return cli.NewUsageError("--share works on single files only")
		}
		return uploadDir(ctx, backend, target, src, concurrency, jsonOutput)
	}

	key, err := cloud.UploadFile(ctx, backend, target, src)
	if err != nil {
		return err
	}

	var shareURL string
	if share {
		shareURL, err = backend.ShareURL(ctx, key, expiry)
		if err != nil {
			return fmt.Errorf("share URL: %w", err)
		}
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"source":      src,
			"destination": toURL,
			"key":         key,
			"bytes":       info.Size(),
			"share_url":   shareURL,
		})
	}

	fmt.Fprintf(os.Stderr, "Uploaded %s (%d bytes) to %s\n", filepath.Base(src), info.Size(), toURL)
	if shareURL != "" {
		fmt.Println(shareURL)
	}
	return nil
}

func uploadDir(ctx context.Context, backend cloud.Backend, target cloud.Target, dir string, concurrency int, jsonOutput bool) error {
	type localFile struct {
		path string
		rel  string
		size int64
	}

	var files []localFile
	var totalBytes int64
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		files = append(files, localFile{path: path, rel: filepath.ToSlash(rel), size: info.Size()})
		totalBytes += info.Size()
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no files found in %s", dir)
	}

	if concurrency < 1 {
		concurrency = 1
	}

	var (
		uploaded atomic.Int64
		sem      = make(chan struct{}, concurrency)
		wg       sync.WaitGroup
		firstErr error
		errOnce  sync.Once
	)

	for _, lf := range files {
		sem <- struct{}{}
		wg.Add(1)
		go func(lf localFile) {
			defer wg.Done()
			defer func() { <-sem }()

			key := lf.rel
			if target.Prefix != "" {
				key = target.Prefix + "/" + key
			}

			f, err := os.Open(lf.path)
			if err != nil {
				errOnce.Do(func() { firstErr = fmt.Errorf("open %s: %w", lf.rel, err) })
				return
			}
			defer func() { _ = f.Close() }()

			if err := backend.Upload(ctx, key, f, lf.size); err != nil {
				errOnce.Do(func() { firstErr = fmt.Errorf("upload %s: %w", lf.rel, err) })
				return
			}
			fmt.Fprintf(os.Stderr, "\rUploading: %d/%d files", uploaded.Add(1), len(files))
		}(lf)
	}

	wg.Wait()
	fmt.Fprintln(os.Stderr)

	if firstErr != nil {
		return firstErr
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"source": dir,
			"files":  len(files),
			"bytes":  totalBytes,
		})
	}
	fmt.Fprintf(os.Stderr, "Uploaded %d files (%d bytes)\n", len(files), totalBytes)
	return nil
}
