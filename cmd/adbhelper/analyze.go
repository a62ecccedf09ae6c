package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
	"adbhelper/internal/logcat"
)

func newAnalyzeLogsCmd() *cobra.Command {
	var (
		file       string
		jsonOutput bool
		topN       int
		exportPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "analyze-logs",
		Short: "Analyze a saved logcat capture offline",
		Long:  "Analyze parses a captured logcat file (plain, .zst, or .gz) into per-level and per-tag counts with a ranked list of the noisiest error sources. Optionally exports every parsed line for external analytics.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyzeLogs(file, jsonOutput, topN, exportPath, format)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "path to the log capture")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output the report as JSON")
	cmd.Flags().IntVar(&topN, "top", logcat.DefaultTopN, "number of top tags to report")
	cmd.Flags().StringVar(&exportPath, "export", "", "also export parsed rows to this file")
	cmd.Flags().StringVar(&format, "format", "parquet", "export format: parquet, csv, or jsonl")
	return cmd
}

func runAnalyzeLogs(file string, jsonOutput bool, topN int, exportPath, format string) error {
	if file == "" {
		return cli.NewUsageError("--file is required")
	}

	summary, err := logcat.AnalyzeFile(file, topN)
	if err != nil {
		return cli.NewParseError(fmt.Sprintf("read log file: %v", err))
	}

	if exportPath != "" {
		f, err := logcat.ParseFormat(format)
		if err != nil {
			return cli.NewUsageError(err.Error())
		}
		rows, err := logcat.Export(file, exportPath, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Exported %d rows to %s\n", rows, exportPath)
	}

	if jsonOutput {
		return summary.WriteJSON(os.Stdout)
	}
	return summary.WriteText(os.Stdout)
}
