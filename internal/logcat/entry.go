package logcat

import (
	"regexp"
	"strings"
)

// Entry is one well-formed logcat line, decomposed.
type Entry struct {
	Timestamp string `json:"ts,omitempty"`
	Level     Level  `json:"-"`
	LevelName string `json:"level"`
	Tag       string `json:"tag"`
	Message   string `json:"msg"`
}

// Line shapes recognized:
//
//	threadtime  01-01 00:00:01.000 [ 1234 1234] E ActivityManager: crash
//	time        01-01 00:00:01.000 E/ActivityManager( 123): crash
//	brief       E/ActivityManager( 123): crash
var (
	reThreadtime = regexp.MustCompile(
		`^(?P<ts>\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d+)\s+(?:\d+\s+\d+\s+)?(?P<level>[A-Z])\s+(?P<tag>[^:]*?):\s?(?P<msg>.*)$`)
	reSlash = regexp.MustCompile(
		`^(?:(?P<ts>\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d+)\s+)?(?P<level>[A-Z])/(?P<tag>[^(/ ]+)\s*\(\s*\d+\):\s?(?P<msg>.*)$`)
)

// ParseLine decomposes a raw logcat line. Returns false for lines that do
// not match a recognized shape or carry a level character outside the
// VDIWEF scale; such lines stay unstructured.
func ParseLine(line string) (Entry, bool) {
	for _, re := range []*regexp.Regexp{reSlash, reThreadtime} {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var e Entry
		var levelChar string
		for i, name := range re.SubexpNames() {
			switch name {
			case "ts":
				e.Timestamp = m[i]
			case "level":
				levelChar = m[i]
			case "tag":
				e.Tag = strings.TrimSpace(m[i])
			case "msg":
				e.Message = m[i]
			}
		}
		level, ok := ParseLevel(levelChar[0])
		if !ok || e.Tag == "" {
			continue
		}
		e.Level = level
		e.LevelName = level.String()
		return e, true
	}
	return Entry{}, false
}
