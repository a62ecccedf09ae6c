package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"adbhelper/internal/cli"
)

const defaultTCPPort = 5555

func newTcpipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tcpip",
		Short: "Wireless debugging over TCP/IP",
	}

	cmd.AddCommand(newTcpipEnableCmd())
	cmd.AddCommand(newTcpipConnectCmd())
	cmd.AddCommand(newTcpipDisableCmd())
	return cmd
}

func newTcpipEnableCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "enable",
		Short: "Restart the selected device in TCP/IP mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTcpipEnable(port)
		},
	}

	cmd.Flags().IntVar(&port, "port", defaultTCPPort, "listen port")
	return cmd
}

func runTcpipEnable(port int) error {
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

	res, err := r.RunChecked(ctx, "tcpip", strconv.Itoa(port))
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func newTcpipConnectCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Connect to a device over the network",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTcpipConnect(host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "device IP address")
	cmd.Flags().IntVar(&port, "port", defaultTCPPort, "device port")
	return cmd
}

func runTcpipConnect(host string, port int) error {
	if host == "" {
		return cli.NewUsageError("--host is required")
	}

	r, err := newRunner()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	// connect addresses the adb server, not a specific device
	res, err := r.WithSerial("").RunChecked(ctx, "connect", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}

func newTcpipDisableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Return to USB mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTcpipDisable()
		},
	}
}

func runTcpipDisable() error {
	r, err := newRunner()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	res, err := r.WithSerial("").RunChecked(ctx, "usb")
	if err != nil {
		return err
	}
	printResult(res)
	return nil
}
