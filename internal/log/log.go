// Package log configures the shared logrus logger for CLI diagnostics.
//
// User-facing command output goes straight to stdout; logrus carries
// debug and warning diagnostics on stderr.
package log

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// SetFormatter sets the plain message formatter used in normal runs.
func SetFormatter() {
	logrus.SetFormatter(&easy.Formatter{
		LogFormat: "%msg%\n",
	})
}

// SetDebugFormatter switches to a caller-reporting formatter for debug
// runs.
func SetDebugFormatter() {
	logrus.SetReportCaller(true)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableLevelTruncation: true,
		CallerPrettyfier: func(f *runtime.Frame) (string, string) {
			return "", fmt.Sprintf("%s:%d", filepath.Base(f.File), f.Line)
		},
	})
}

// Setup applies the level and formatter for a run. Debug wins over any
// configured level.
func Setup(debug bool) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
		SetDebugFormatter()
		return
	}
	logrus.SetLevel(logrus.InfoLevel)
	SetFormatter()
}

// Debugf logs a formatted debug message.
func Debugf(format string, args ...any) {
	logrus.Debugf(format, args...)
}

// Warnf logs a formatted warning.
func Warnf(format string, args ...any) {
	logrus.Warnf(format, args...)
}
