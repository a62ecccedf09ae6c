package android

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var reRelSince = regexp.MustCompile(`^(\d+)([smhd])$`)

// ParseSince converts a --since value into the absolute timestamp format
// logcat accepts for -T: "2006-01-02 15:04:05.000". Accepts relative
// durations ("30s", "5m", "2h", "1d") and absolute ISO-8601 times.
func ParseSince(s string, now time.Time) (string, error) {
	if s == "" {
		return "", nil
	}

	if m := reRelSince.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return "", fmt.Errorf("invalid --since %q", s)
		}
		var unit time.Duration
		switch m[2] {
		case "s":
			unit = time.Second
		case "m":
			unit = time.Minute
		case "h":
			unit = time.Hour
		case "d":
			unit = 24 * time.Hour
		}
		return now.Add(-time.Duration(n) * unit).Format("2006-01-02 15:04:05.000"), nil
	}

	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, now.Location()); err == nil {
			return t.Format("2006-01-02 15:04:05.000"), nil
		}
	}
	return "", fmt.Errorf("invalid --since %q: expected 5m, 2h or ISO-8601 time", s)
}
