package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"adbhelper/internal/adb"
)

func newDevicesCmd() *cobra.Command {
	var (
		jsonOutput bool
		watch      bool
	)

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List connected devices",
		Long:  "List devices known to the adb server with state, model, transport, and the Android release/SDK of online devices.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner()
			if err != nil {
				return err
			}
			if watch {
				return adb.Watch(r)
			}
			return runDevices(r, jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&watch, "watch", false, "live-refreshing device table")
	return cmd
}

func runDevices(r *adb.Runner, jsonOutput bool) error {
	ctx, cancel := commandContext()
	defer cancel()

	devices, err := adb.ListDevices(ctx, r)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(devices)
	}

	if len(devices) == 0 {
		fmt.Println("No devices attached")
		return nil
	}

	fmt.Printf("%-24s %-12s %-20s %-8s %-5s %s\n", "SERIAL", "STATE", "MODEL", "ANDROID", "SDK", "TRANSPORT")
	for _, d := range devices {
		fmt.Printf("%-24s %-12s %-20s %-8s %-5s %s\n",
			d.Serial, d.State, orDash(d.Model), orDash(d.Android), orDash(d.SDK), orDash(d.Transport))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
