// Package logging configures the logrus logger shared by the CLI and the
// resolver packages.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options controls logger construction.
type Options struct {
	Level logrus.Level
	JSON  bool
	Out   io.Writer
}

// New returns a logger writing to opts.Out (stderr when nil). Library
// packages only see it as a logrus.FieldLogger.
func New(opts Options) *logrus.Logger {
	l := logrus.New()
	if opts.Out != nil {
		l.SetOutput(opts.Out)
	}

	if opts.JSON {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: opts.Level < logrus.DebugLevel,
		})
	}
	l.SetLevel(opts.Level)

	return l
}

// Setup builds a logger and installs it as the logrus standard logger so
// that packages defaulting to logrus.StandardLogger() follow the same
// settings.
func Setup(opts Options) *logrus.Logger {
	l := New(opts)
	std := logrus.StandardLogger()
	std.SetOutput(l.Out)
	std.SetFormatter(l.Formatter)
	std.SetLevel(l.Level)
	return l
}
