// Package applog configures the leveled loggers shared by every package.
package applog

import (
	"io"
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/op/go-logging"
)

const format = "%{level:.1s}%{time:0102 15:04:05.000000} %{shortfile}] %{message}"

// Configure installs the process-wide formatter on stderr and sets the level
// for all module loggers. Unknown level names fall back to INFO.
func Configure(level string) {
	ConfigureWriter(os.Stderr, level)
}

// ConfigureWriter is Configure with an explicit destination.
func ConfigureWriter(w io.Writer, level string) {
	backend := logging.NewLogBackend(w, "", 0)
	logging.SetBackend(logging.NewBackendFormatter(backend, logging.MustStringFormatter(format)))
	logging.SetLevel(ParseLevel(level), "")
}

// ParseLevel maps a level name such as "debug" or "WARNING" to a logging
// level.
func ParseLevel(name string) logging.Level {
	if name == "" {
		return logging.INFO
	}
	lvl, err := logging.LogLevel(strings.ToUpper(strings.TrimSpace(name)))
	if err != nil {
		return logging.INFO
	}
	return lvl
}

// LogError logs err under op, then one line per wrapped cause.
func LogError(l *logging.Logger, op string, err error) {
	l.Errorf("%s failed: %v", op, err)
	for cause := errors.Unwrap(err); cause != nil; cause = errors.Unwrap(cause) {
		l.Errorf("  caused by: %v", cause)
	}
}
