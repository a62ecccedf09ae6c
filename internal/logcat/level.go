// Package logcat parses captured logcat files into structured summaries.
package logcat

// Level is a logcat severity. The zero value is LevelVerbose; levels order
// from least to most severe.
type Level int

const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = [...]string{"Verbose", "Debug", "Info", "Warn", "Error", "Fatal"}

// ParseLevel maps a logcat level character to its Level. Returns false for
// anything outside the VDIWEF scale.
func ParseLevel(c byte) (Level, bool) {
	switch c {
	case 'V':
		return LevelVerbose, true
	case 'D':
		return LevelDebug, true
	case 'I':
		return LevelInfo, true
	case 'W':
		return LevelWarn, true
	case 'E':
		return LevelError, true
	case 'F':
		return LevelFatal, true
	default:
		return 0, false
	}
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return "Unknown"
	}
	return levelNames[l]
}

// Char returns the single-character logcat form.
func (l Level) Char() byte {
	return "VDIWEF"[l]
}
