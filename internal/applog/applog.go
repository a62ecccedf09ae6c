// Package applog configures the tool's own diagnostic logging: a leveled
// logger writing to stderr and to a size-capped rotating log file.
package applog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"adbhelper/internal/rotate"
)

const (
	logFileName = "adbhelper.log"
	logMaxSize  = 1 << 20 // bytes per file
	logMaxFiles = 5
)

// Setup initializes the global logrus logger. verbose wins over quiet.
// Returns a closer for the rotating file sink; file setup failures degrade
// to stderr-only logging rather than aborting the command.
func Setup(verbose, quiet bool) io.Closer {
	level := logrus.InfoLevel
	if quiet {
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	r, err := rotate.New(rotate.Config{
		Path:     logFilePath(),
		MaxSize:  logMaxSize,
		MaxFiles: logMaxFiles,
	})
	if err != nil {
		logrus.SetOutput(os.Stderr)
		logrus.WithError(err).Debug("log file disabled")
		return io.NopCloser(nil)
	}

	logrus.SetOutput(io.MultiWriter(os.Stderr, r))
	return r
}

func logFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return logFileName
	}
	return filepath.Join(home, ".adbhelper", logFileName)
}
