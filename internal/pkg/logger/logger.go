package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger routes application logs through logrus.
type Logger struct {
	entry *logrus.Logger
}

// New creates a Logger writing to stderr at the given level
// (debug, info, warn, error). Unknown levels fall back to info.
func New(level string, verbose bool) *Logger {
	return NewWithWriter(os.Stderr, level, verbose)
}

// NewWithWriter creates a Logger writing to w.
func NewWithWriter(w io.Writer, level string, verbose bool) *Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	l.SetLevel(parseLevel(level))
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return &Logger{entry: l}
}

// NewNop discards everything.
func NewNop() *Logger {
	return NewWithWriter(io.Discard, "error", false)
}

func parseLevel(level string) logrus.Level {
	// trace, fatal and panic are not used here
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warning", "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.entry.WithFields(fields).WithError(err).Error(msg)
}
