package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"adbhelper/internal/adb"
	"adbhelper/internal/android"
)

// deviceReport is the device-info JSON shape.
type deviceReport struct {
	Serial  string `json:"serial"`
	Model   string `json:"model"`
	Brand   string `json:"brand"`
	Android string `json:"android"`
	SDK     string `json:"sdk"`
	ABI     string `json:"abi"`
	Root    string `json:"root"`
	Battery string `json:"battery"`
	Storage string `json:"storage"`
	Mem     string `json:"mem"`
}

func newDeviceInfoCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "device-info",
		Short: "Summarize the selected device",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeviceInfo(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	return cmd
}

func runDeviceInfo(jsonOutput bool) error {
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

	sh := func(args ...string) string {
		res, err := r.Run(ctx, append([]string{"shell"}, args...)...)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(res.Stdout)
	}

	report := deviceReport{
		Serial:  r.Serial(),
		Model:   sh("getprop", "ro.product.model"),
		Brand:   sh("getprop", "ro.product.brand"),
		Android: sh("getprop", "ro.build.version.release"),
		SDK:     sh("getprop", "ro.build.version.sdk"),
		ABI:     sh("getprop", "ro.product.cpu.abi"),
		Root:    rootState(ctx, r),
		Storage: android.CollapseSpaces(sh("df", "-h", "/data")),
		Mem:     android.FirstLine(sh("dumpsys", "meminfo", "-c")),
	}

	battOut := sh("dumpsys", "battery")
	if batt, ok := android.ParseBattery(battOut); ok {
		report.Battery = batt.String()
	} else if len(battOut) > 60 {
		report.Battery = battOut[:60] + "..."
	} else {
		report.Battery = battOut
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Printf("Serial:   %s\n", report.Serial)
	fmt.Printf("Model:    %s %s\n", report.Brand, report.Model)
	fmt.Printf("Android:  %s (SDK %s)\n", report.Android, report.SDK)
	fmt.Printf("ABI:      %s\n", report.ABI)
	fmt.Printf("Root:     %s\n", report.Root)
	fmt.Printf("Battery:  %s\n", report.Battery)
	fmt.Printf("Storage:  %s\n", report.Storage)
	fmt.Printf("Memory:   %s\n", report.Mem)
	return nil
}

func rootState(ctx context.Context, r *adb.Runner) string {
	res, err := r.Run(ctx, "shell", "id")
	if err == nil && strings.Contains(res.Stdout, "uid=0") {
		return "yes"
	}
	return "no"
}
