// Package obslog centralizes the logrus setup shared by the CLI and the
// benchmark harness, so every entrypoint logs at the same level and in the
// same format.
package obslog

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Options configures the shared logger.
type Options struct {
	Level string // one of logrus's level names; defaults to "info"
	JSON  bool
}

// New builds a *logrus.Logger per Options, falling back to info level on an
// unrecognized Level string rather than failing startup.
func New(opts Options) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if opts.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}

// SetupStd applies Options to logrus's package-level standard logger, which
// is what the solver packages log through (they call logrus.WithField
// directly rather than carrying a logger reference).
func SetupStd(opts Options) {
	logrus.SetOutput(os.Stderr)

	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
