package android

import (
	"fmt"
	"regexp"
	"strings"
)

// Battery summarizes `dumpsys battery` output.
type Battery struct {
	Level  string
	Status string
}

var (
	reBatteryLevel  = regexp.MustCompile(`level: (\d+)`)
	reBatteryStatus = regexp.MustCompile(`status: (\d+)`)
)

// ParseBattery extracts level and status from `dumpsys battery` output.
// Returns false when the output has neither.
func ParseBattery(out string) (Battery, bool) {
	var b Battery
	if m := reBatteryLevel.FindStringSubmatch(out); m != nil {
		b.Level = m[1]
	}
	if m := reBatteryStatus.FindStringSubmatch(out); m != nil {
		b.Status = m[1]
	}
	return b, b.Level != "" || b.Status != ""
}

// String renders the battery the way the summary table shows it.
func (b Battery) String() string {
	if b.Level == "" {
		return ""
	}
	if b.Status == "" {
		return b.Level + "%"
	}
	return fmt.Sprintf("%s%% (status=%s)", b.Level, b.Status)
}

// CollapseSpaces joins all whitespace runs into single spaces, used to fold
// multi-line df output into one table cell.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FirstLine returns the first non-empty line of s.
func FirstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
