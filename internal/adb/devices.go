package adb

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"adbhelper/internal/cli"
)

// Device describes one entry from `adb devices -l`.
type Device struct {
	Serial    string `json:"serial"`
	State     string `json:"state"`
	Model     string `json:"model,omitempty"`
	Transport string `json:"transport,omitempty"`
	Android   string `json:"android,omitempty"`
	SDK       string `json:"sdk,omitempty"`
}

// Online reports whether the device is usable for commands.
func (d Device) Online() bool { return d.State == "device" }

var reDeviceLine = regexp.MustCompile(
	`^(?P<serial>\S+)\s+(?P<state>device|offline|unauthorized)\s*(.*model:(?P<model>\S+))?.*?(transport_id:(?P<transport>\d+))?\s*$`)

// ParseDevices parses `adb devices -l` output. Lines that do not match the
// expected shape (the header, daemon startup notices) are skipped.
func ParseDevices(out string) []Device {
	var devices []Device
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(strings.ToLower(line), "list of devices") {
			continue
		}
		m := reDeviceLine.FindStringSubmatch(line)
		if m == nil {
			logrus.Debugf("skipping devices line: %q", line)
			continue
		}
		d := Device{}
		for i, name := range reDeviceLine.SubexpNames() {
			switch name {
			case "serial":
				d.Serial = m[i]
			case "state":
				d.State = m[i]
			case "model":
				d.Model = m[i]
			case "transport":
				d.Transport = m[i]
			}
		}
		devices = append(devices, d)
	}
	return devices
}

// ListDevices runs `adb devices -l` and enriches online devices with their
// Android release and SDK level.
func ListDevices(ctx context.Context, r *Runner) ([]Device, error) {
	// listing must not be scoped to one serial
	res, err := r.WithSerial("").RunChecked(ctx, "devices", "-l")
	if err != nil {
		return nil, err
	}
	devices := ParseDevices(res.Stdout)

	for i := range devices {
		if !devices[i].Online() {
			continue
		}
		dr := r.WithSerial(devices[i].Serial)
		if res, err := dr.Run(ctx, "shell", "getprop", "ro.build.version.release"); err == nil {
			devices[i].Android = strings.TrimSpace(res.Stdout)
		}
		if res, err := dr.Run(ctx, "shell", "getprop", "ro.build.version.sdk"); err == nil {
			devices[i].SDK = strings.TrimSpace(res.Stdout)
		}
	}
	return devices, nil
}

// Pick selects the serial to use from the given devices. An explicit
// preferred serial must name an online device. Without one there must be
// exactly one online device.
func Pick(devices []Device, preferred string) (string, error) {
	var online []Device
	for _, d := range devices {
		if d.Online() {
			online = append(online, d)
		}
	}

	if preferred != "" {
		for _, d := range online {
			if d.Serial == preferred {
				return d.Serial, nil
			}
		}
		return "", noSuchDevice(preferred)
	}
	if len(online) == 0 {
		return "", noDevicesOnline()
	}
	if len(online) > 1 {
		return "", ambiguousDevices(online)
	}
	return online[0].Serial, nil
}

// Select lists devices and picks one, returning a Runner bound to it.
func Select(ctx context.Context, r *Runner, preferred string) (*Runner, error) {
	devices, err := ListDevices(ctx, r)
	if err != nil {
		return nil, err
	}
	serial, err := Pick(devices, preferred)
	if err != nil {
		return nil, err
	}
	return r.WithSerial(serial), nil
}

func noSuchDevice(serial string) error {
	return cli.NewNoDeviceError(fmt.Sprintf("device %s not found or not in state 'device'", serial))
}

func noDevicesOnline() error {
	return cli.NewNoDeviceError("no connected devices in state 'device'")
}

func ambiguousDevices(online []Device) error {
	var b strings.Builder
	b.WriteString("multiple connected devices, pass --serial:")
	for _, d := range online {
		model := d.Model
		if model == "" {
			model = "n/a"
		}
		fmt.Fprintf(&b, "\n  %s (%s)", d.Serial, model)
	}
	return cli.NewAmbiguousDeviceError(b.String())
}
